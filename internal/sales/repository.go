package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printdesk/printdesk/internal/platform/db"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

var (
	ErrNotFound = httpx.ErrNotFound

	// ErrIdempotencyConflict means the supplied idempotency key was already
	// used for this operation.
	ErrIdempotencyConflict = httpx.ErrDuplicate
)

const (
	DocTypeQuote = "QUO"
	DocTypeOrder = "ORD"
)

const pgUniqueViolation = "23505"

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	CreateCustomer(ctx context.Context, customer Customer) (int64, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context, req ListCustomersRequest) ([]Customer, error)
	UpdateCustomer(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteCustomer(ctx context.Context, id int64) error

	GenerateNumber(ctx context.Context, docType string, date time.Time) (string, error)
	InsertIdempotencyKey(ctx context.Context, key, scope string) error

	CreateQuote(ctx context.Context, quote Quote) (int64, error)
	GetQuote(ctx context.Context, id int64) (*Quote, error)
	ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, error)
	UpdateQuote(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateQuoteStatus(ctx context.Context, id int64, status QuoteStatus) error
	DeleteQuote(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, order Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, error)
	GetOrderItem(ctx context.Context, orderID, itemID int64) (*OrderItem, error)
	UpdateOrderItemStatus(ctx context.Context, itemID int64, status JobStatus) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if r.pool == nil {
		return fn(ctx, r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx})
	})
}

// ============================================================================
// CUSTOMERS
// ============================================================================

const customerColumns = `id, name, email, phone, company, discount_percentage, notes,
	is_active, created_at, updated_at`

func (r *repository) CreateCustomer(ctx context.Context, customer Customer) (int64, error) {
	query := `INSERT INTO customers (name, email, phone, company, discount_percentage, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Company,
		customer.DiscountPercentage, customer.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

func (r *repository) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)
	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (r *repository) ListCustomers(ctx context.Context, req ListCustomersRequest) ([]Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers`, customerColumns)
	var conditions []string
	var args []interface{}
	i := 1
	if req.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)", i, i, i))
		args = append(args, "%"+*req.Search+"%")
		i++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", i))
		args = append(args, *req.IsActive)
		i++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

var customerColumnsAllowed = map[string]bool{
	"name":                true,
	"email":               true,
	"phone":               true,
	"company":             true,
	"discount_percentage": true,
	"notes":               true,
	"is_active":           true,
}

func (r *repository) UpdateCustomer(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "customers", id, updates, customerColumnsAllowed)
}

func (r *repository) DeleteCustomer(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// DOCUMENT NUMBERS & IDEMPOTENCY
// ============================================================================

// GenerateNumber allocates the next document number for one doc type and
// month atomically. The upsert-returning form cannot race under concurrent
// requests.
func (r *repository) GenerateNumber(ctx context.Context, docType string, date time.Time) (string, error) {
	// {TYPE}-{YY}{MM}-{SEQ}
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, docType, period).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("generate %s number: %w", docType, err)
	}
	return fmt.Sprintf("%s-%s-%04d", docType, date.Format("0601"), seq), nil
}

func (r *repository) InsertIdempotencyKey(ctx context.Context, key, scope string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO idempotency_keys (key, scope, created_at) VALUES ($1, $2, NOW())`, key, scope)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: idempotency key already used", ErrIdempotencyConflict)
		}
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}

// ============================================================================
// QUOTES
// ============================================================================

func (r *repository) CreateQuote(ctx context.Context, quote Quote) (int64, error) {
	query := `INSERT INTO quotes (number, customer_id, status, total_price, valid_until, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`
	var quoteID int64
	err := r.db.QueryRow(ctx, query,
		quote.Number, quote.CustomerID, string(quote.Status), quote.TotalPrice,
		quote.ValidUntil, quote.Notes,
	).Scan(&quoteID)
	if err != nil {
		return 0, fmt.Errorf("create quote: %w", err)
	}

	for i, item := range quote.Items {
		itemID, err := r.insertQuoteItem(ctx, quoteID, i+1, item)
		if err != nil {
			return 0, err
		}
		for j, material := range item.Materials {
			if err := r.insertQuoteItemMaterial(ctx, itemID, j+1, material); err != nil {
				return 0, err
			}
		}
	}
	return quoteID, nil
}

func (r *repository) insertQuoteItem(ctx context.Context, quoteID int64, position int, item QuoteItem) (int64, error) {
	query := `INSERT INTO quote_items (
			quote_id, name, description, sku, size, custom_width, custom_height,
			color_type, sides, paper_type, paper_weight, n_up, finishing,
			quantity, unit_price, total_price, saved_price_id, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		quoteID, item.Name, item.Description, item.SKU, item.Size, item.CustomWidth, item.CustomHeight,
		item.ColorType, item.Sides, item.PaperType, item.PaperWeight, item.NUp, item.Finishing,
		item.Quantity, item.UnitPrice, item.TotalPrice, item.SavedPriceID, position,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote item: %w", err)
	}
	return id, nil
}

func (r *repository) insertQuoteItemMaterial(ctx context.Context, itemID int64, position int, material QuoteItemMaterial) error {
	query := `INSERT INTO quote_item_materials (
			quote_item_id, name, quantity, unit, cost, notes, category, saved_price_id, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		itemID, material.Name, material.Quantity, material.Unit, material.Cost,
		material.Notes, material.Category, material.SavedPriceID, position,
	)
	if err != nil {
		return fmt.Errorf("insert quote item material: %w", err)
	}
	return nil
}

func (r *repository) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	query := `SELECT id, number, customer_id, status, total_price, valid_until, notes, created_at, updated_at
		FROM quotes WHERE id = $1`
	quote, err := scanQuote(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}

	items, err := r.listQuoteItems(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	return quote, nil
}

func (r *repository) listQuoteItems(ctx context.Context, quoteID int64) ([]QuoteItem, error) {
	query := `SELECT id, quote_id, name, description, sku, size, custom_width, custom_height,
			color_type, sides, paper_type, paper_weight, n_up, finishing,
			quantity, unit_price, total_price, saved_price_id, position
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()

	var items []QuoteItem
	for rows.Next() {
		item, err := scanQuoteItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		materials, err := r.listQuoteItemMaterials(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Materials = materials
	}
	return items, nil
}

func (r *repository) listQuoteItemMaterials(ctx context.Context, itemID int64) ([]QuoteItemMaterial, error) {
	query := `SELECT id, quote_item_id, name, quantity, unit, cost, notes, category, saved_price_id, position
		FROM quote_item_materials WHERE quote_item_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list quote item materials: %w", err)
	}
	defer rows.Close()

	var materials []QuoteItemMaterial
	for rows.Next() {
		var (
			m          QuoteItemMaterial
			notes      pgtype.Text
			savedPrice pgtype.Int8
		)
		if err := rows.Scan(&m.ID, &m.QuoteItemID, &m.Name, &m.Quantity, &m.Unit, &m.Cost,
			&notes, &m.Category, &savedPrice, &m.Position); err != nil {
			return nil, fmt.Errorf("scan quote item material: %w", err)
		}
		if notes.Valid {
			m.Notes = &notes.String
		}
		if savedPrice.Valid {
			m.SavedPriceID = &savedPrice.Int64
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *repository) ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, error) {
	query := `SELECT id, number, customer_id, status, total_price, valid_until, notes, created_at, updated_at
		FROM quotes`
	var conditions []string
	var args []interface{}
	i := 1
	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", i))
		args = append(args, *req.CustomerID)
		i++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", i))
		args = append(args, string(*req.Status))
		i++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}

var quoteColumnsAllowed = map[string]bool{
	"valid_until": true,
	"notes":       true,
}

func (r *repository) UpdateQuote(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "quotes", id, updates, quoteColumnsAllowed)
}

func (r *repository) UpdateQuoteStatus(ctx context.Context, id int64, status QuoteStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteQuote(ctx context.Context, id int64) error {
	// Items and materials cascade.
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// ORDERS
// ============================================================================

func (r *repository) CreateOrder(ctx context.Context, order Order) (int64, error) {
	query := `INSERT INTO orders (number, quote_id, customer_id, total_price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id`
	var orderID int64
	err := r.db.QueryRow(ctx, query,
		order.Number, order.QuoteID, order.CustomerID, order.TotalPrice, order.Notes,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	for i, item := range order.Items {
		itemID, err := r.insertOrderItem(ctx, orderID, i+1, item)
		if err != nil {
			return 0, err
		}
		for j, material := range item.Materials {
			if err := r.insertItemMaterial(ctx, itemID, j+1, material); err != nil {
				return 0, err
			}
		}
	}
	return orderID, nil
}

func (r *repository) insertOrderItem(ctx context.Context, orderID int64, position int, item OrderItem) (int64, error) {
	query := `INSERT INTO order_items (
			order_id, name, description, sku, size, custom_width, custom_height,
			color_type, sides, paper_type, paper_weight, n_up, finishing,
			quantity, unit_price, total_price, job_status, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		orderID, item.Name, item.Description, item.SKU, item.Size, item.CustomWidth, item.CustomHeight,
		item.ColorType, item.Sides, item.PaperType, item.PaperWeight, item.NUp, item.Finishing,
		item.Quantity, item.UnitPrice, item.TotalPrice, string(item.JobStatus), position,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order item: %w", err)
	}
	return id, nil
}

func (r *repository) insertItemMaterial(ctx context.Context, itemID int64, position int, material ItemMaterial) error {
	query := `INSERT INTO item_materials (
			order_item_id, name, quantity, unit, cost, notes, category, saved_price_id, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		itemID, material.Name, material.Quantity, material.Unit, material.Cost,
		material.Notes, material.Category, material.SavedPriceID, position,
	)
	if err != nil {
		return fmt.Errorf("insert item material: %w", err)
	}
	return nil
}

func (r *repository) GetOrder(ctx context.Context, id int64) (*Order, error) {
	query := `SELECT id, number, quote_id, customer_id, total_price, notes, created_at, updated_at
		FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.listOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *repository) listOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	query := `SELECT id, order_id, name, description, sku, size, custom_width, custom_height,
			color_type, sides, paper_type, paper_weight, n_up, finishing,
			quantity, unit_price, total_price, job_status, position
		FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		materials, err := r.listItemMaterials(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Materials = materials
	}
	return items, nil
}

func (r *repository) listItemMaterials(ctx context.Context, itemID int64) ([]ItemMaterial, error) {
	query := `SELECT id, order_item_id, name, quantity, unit, cost, notes, category, saved_price_id, position
		FROM item_materials WHERE order_item_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item materials: %w", err)
	}
	defer rows.Close()

	var materials []ItemMaterial
	for rows.Next() {
		var (
			m          ItemMaterial
			notes      pgtype.Text
			savedPrice pgtype.Int8
		)
		if err := rows.Scan(&m.ID, &m.OrderItemID, &m.Name, &m.Quantity, &m.Unit, &m.Cost,
			&notes, &m.Category, &savedPrice, &m.Position); err != nil {
			return nil, fmt.Errorf("scan item material: %w", err)
		}
		if notes.Valid {
			m.Notes = &notes.String
		}
		if savedPrice.Valid {
			m.SavedPriceID = &savedPrice.Int64
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *repository) ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, error) {
	query := `SELECT id, number, quote_id, customer_id, total_price, notes, created_at, updated_at
		FROM orders`
	var args []interface{}
	if req.CustomerID != nil {
		query += " WHERE customer_id = $1"
		args = append(args, *req.CustomerID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *repository) GetOrderItem(ctx context.Context, orderID, itemID int64) (*OrderItem, error) {
	query := `SELECT id, order_id, name, description, sku, size, custom_width, custom_height,
			color_type, sides, paper_type, paper_weight, n_up, finishing,
			quantity, unit_price, total_price, job_status, position
		FROM order_items WHERE id = $1 AND order_id = $2`
	item, err := scanOrderItem(r.db.QueryRow(ctx, query, itemID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return item, nil
}

func (r *repository) UpdateOrderItemStatus(ctx context.Context, itemID int64, status JobStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE order_items SET job_status = $1 WHERE id = $2`, string(status), itemID)
	if err != nil {
		return fmt.Errorf("update order item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *repository) applyUpdates(ctx context.Context, table string, id int64, updates map[string]interface{}, allowed map[string]bool) error {
	if len(updates) == 0 {
		return nil
	}
	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for column, value := range updates {
		if !allowed[column] {
			return fmt.Errorf("update %s: column %q not allowed", table, column)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`, table, strings.Join(setClauses, ", "), i)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var (
		customer Customer
		notes    pgtype.Text
	)
	err := row.Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Company,
		&customer.DiscountPercentage, &notes, &customer.IsActive, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		customer.Notes = &notes.String
	}
	return &customer, nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		quote      Quote
		validUntil pgtype.Timestamptz
		notes      pgtype.Text
	)
	err := row.Scan(
		&quote.ID, &quote.Number, &quote.CustomerID, &quote.Status, &quote.TotalPrice,
		&validUntil, &notes, &quote.CreatedAt, &quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if validUntil.Valid {
		quote.ValidUntil = &validUntil.Time
	}
	if notes.Valid {
		quote.Notes = &notes.String
	}
	return &quote, nil
}

func scanQuoteItem(row pgx.Row) (*QuoteItem, error) {
	var (
		item         QuoteItem
		description  pgtype.Text
		sku          pgtype.Text
		customWidth  pgtype.Float8
		customHeight pgtype.Float8
		savedPrice   pgtype.Int8
	)
	err := row.Scan(
		&item.ID, &item.QuoteID, &item.Name, &description, &sku, &item.Size, &customWidth, &customHeight,
		&item.ColorType, &item.Sides, &item.PaperType, &item.PaperWeight, &item.NUp, &item.Finishing,
		&item.Quantity, &item.UnitPrice, &item.TotalPrice, &savedPrice, &item.Position,
	)
	if err != nil {
		return nil, fmt.Errorf("scan quote item: %w", err)
	}
	if description.Valid {
		item.Description = &description.String
	}
	if sku.Valid {
		item.SKU = &sku.String
	}
	if customWidth.Valid {
		item.CustomWidth = &customWidth.Float64
	}
	if customHeight.Valid {
		item.CustomHeight = &customHeight.Float64
	}
	if savedPrice.Valid {
		item.SavedPriceID = &savedPrice.Int64
	}
	return &item, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		order   Order
		quoteID pgtype.Int8
		notes   pgtype.Text
	)
	err := row.Scan(
		&order.ID, &order.Number, &quoteID, &order.CustomerID, &order.TotalPrice,
		&notes, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if quoteID.Valid {
		order.QuoteID = &quoteID.Int64
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	return &order, nil
}

func scanOrderItem(row pgx.Row) (*OrderItem, error) {
	var (
		item         OrderItem
		description  pgtype.Text
		sku          pgtype.Text
		customWidth  pgtype.Float8
		customHeight pgtype.Float8
	)
	err := row.Scan(
		&item.ID, &item.OrderID, &item.Name, &description, &sku, &item.Size, &customWidth, &customHeight,
		&item.ColorType, &item.Sides, &item.PaperType, &item.PaperWeight, &item.NUp, &item.Finishing,
		&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.JobStatus, &item.Position,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order item: %w", err)
	}
	if description.Valid {
		item.Description = &description.String
	}
	if sku.Valid {
		item.SKU = &sku.String
	}
	if customWidth.Valid {
		item.CustomWidth = &customWidth.Float64
	}
	if customHeight.Valid {
		item.CustomHeight = &customHeight.Float64
	}
	return &item, nil
}
