package pricing

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

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/db"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

var ErrNotFound = httpx.ErrNotFound

// Repository provides the reads an estimate needs plus customer override
// maintenance. Estimates run inside WithTx so every catalog row is read from
// one snapshot.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	GetPaperOption(ctx context.Context, id int64) (*catalog.PaperOption, error)
	FindPrintPricing(ctx context.Context, paperSize, colorType string) (*catalog.PrintPricing, error)
	ListFinishingOptionsByIDs(ctx context.Context, ids []int64) ([]catalog.FinishingOption, error)

	GetCustomerDiscount(ctx context.Context, customerID int64) (float64, error)
	ListValidCustomerPrices(ctx context.Context, customerID int64, at time.Time) ([]CustomerPrice, error)
	GetCustomerPrice(ctx context.Context, id int64) (*CustomerPrice, error)
	CreateCustomerPrice(ctx context.Context, price CustomerPrice) (int64, error)
	UpdateCustomerPrice(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteCustomerPrice(ctx context.Context, id int64) error
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

const paperOptionColumns = `id, name, category, weight, size, color, pricing_method,
	price_per_sheet, cost_per_sheet, price_per_sqft, cost_per_sqft,
	width, height, is_roll, roll_length, is_active, created_at, updated_at`

func (r *repository) GetPaperOption(ctx context.Context, id int64) (*catalog.PaperOption, error) {
	query := fmt.Sprintf(`SELECT %s FROM paper_options WHERE id = $1`, paperOptionColumns)
	option, err := scanPaperOptionRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get paper option: %w", err)
	}
	return option, nil
}

func (r *repository) FindPrintPricing(ctx context.Context, paperSize, colorType string) (*catalog.PrintPricing, error) {
	query := `SELECT id, name, paper_size, color_type, pricing_method,
			price_per_side, cost_per_side, price_per_sqft, cost_per_sqft,
			duplex, created_at, updated_at
		FROM print_pricing
		WHERE paper_size = $1 AND color_type = $2
		ORDER BY id
		LIMIT 1`
	row := r.db.QueryRow(ctx, query, paperSize, colorType)

	var pricing catalog.PrintPricing
	err := row.Scan(
		&pricing.ID, &pricing.Name, &pricing.PaperSize, &pricing.ColorType, &pricing.PricingMethod,
		&pricing.PricePerSide, &pricing.CostPerSide, &pricing.PricePerSqft, &pricing.CostPerSqft,
		&pricing.Duplex, &pricing.CreatedAt, &pricing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find print pricing: %w", err)
	}
	return &pricing, nil
}

func (r *repository) ListFinishingOptionsByIDs(ctx context.Context, ids []int64) ([]catalog.FinishingOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, category, base_price, price_per_piece, price_per_sqft,
			minimum_price, is_active, created_at, updated_at
		FROM finishing_options
		WHERE id = ANY($1) AND is_active`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list finishing options: %w", err)
	}
	defer rows.Close()

	var options []catalog.FinishingOption
	for rows.Next() {
		var option catalog.FinishingOption
		if err := rows.Scan(
			&option.ID, &option.Name, &option.Category, &option.BasePrice, &option.PricePerPiece,
			&option.PricePerSqft, &option.MinimumPrice, &option.IsActive, &option.CreatedAt, &option.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan finishing option: %w", err)
		}
		options = append(options, option)
	}
	return options, rows.Err()
}

func (r *repository) GetCustomerDiscount(ctx context.Context, customerID int64) (float64, error) {
	var discount float64
	err := r.db.QueryRow(ctx, `SELECT discount_percentage FROM customers WHERE id = $1`, customerID).Scan(&discount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get customer discount: %w", err)
	}
	return discount, nil
}

const customerPriceColumns = `id, customer_id, saved_price_id, paper_option_id, print_pricing_id,
	finishing_option_id, price, discount_type, discount_value, valid_from, valid_until,
	is_active, created_at, updated_at`

func (r *repository) ListValidCustomerPrices(ctx context.Context, customerID int64, at time.Time) ([]CustomerPrice, error) {
	query := fmt.Sprintf(`SELECT %s FROM customer_prices
		WHERE customer_id = $1
		  AND is_active
		  AND valid_from <= $2
		  AND (valid_until IS NULL OR valid_until >= $2)
		ORDER BY id`, customerPriceColumns)
	rows, err := r.db.Query(ctx, query, customerID, at)
	if err != nil {
		return nil, fmt.Errorf("list customer prices: %w", err)
	}
	defer rows.Close()

	var prices []CustomerPrice
	for rows.Next() {
		price, err := scanCustomerPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, *price)
	}
	return prices, rows.Err()
}

func (r *repository) GetCustomerPrice(ctx context.Context, id int64) (*CustomerPrice, error) {
	query := fmt.Sprintf(`SELECT %s FROM customer_prices WHERE id = $1`, customerPriceColumns)
	price, err := scanCustomerPrice(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer price: %w", err)
	}
	return price, nil
}

func (r *repository) CreateCustomerPrice(ctx context.Context, price CustomerPrice) (int64, error) {
	query := `INSERT INTO customer_prices (
			customer_id, saved_price_id, paper_option_id, print_pricing_id, finishing_option_id,
			price, discount_type, discount_value, valid_from, valid_until, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		price.CustomerID, price.SavedPriceID, price.PaperOptionID, price.PrintPricingID,
		price.FinishingOptionID, price.Price, string(price.DiscountType), price.DiscountValue,
		price.ValidFrom, price.ValidUntil,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer price: %w", err)
	}
	return id, nil
}

var customerPriceColumnsAllowed = map[string]bool{
	"price":          true,
	"discount_type":  true,
	"discount_value": true,
	"valid_from":     true,
	"valid_until":    true,
	"is_active":      true,
}

func (r *repository) UpdateCustomerPrice(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for column, value := range updates {
		if !customerPriceColumnsAllowed[column] {
			return fmt.Errorf("update customer price: column %q not allowed", column)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE customer_prices SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), i)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update customer price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteCustomerPrice(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customer_prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCustomerPrice(row pgx.Row) (*CustomerPrice, error) {
	var (
		price       CustomerPrice
		savedPrice  pgtype.Int8
		paperOption pgtype.Int8
		printRow    pgtype.Int8
		finishing   pgtype.Int8
		validUntil  pgtype.Timestamptz
	)
	err := row.Scan(
		&price.ID, &price.CustomerID, &savedPrice, &paperOption, &printRow, &finishing,
		&price.Price, &price.DiscountType, &price.DiscountValue, &price.ValidFrom, &validUntil,
		&price.IsActive, &price.CreatedAt, &price.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if savedPrice.Valid {
		price.SavedPriceID = &savedPrice.Int64
	}
	if paperOption.Valid {
		price.PaperOptionID = &paperOption.Int64
	}
	if printRow.Valid {
		price.PrintPricingID = &printRow.Int64
	}
	if finishing.Valid {
		price.FinishingOptionID = &finishing.Int64
	}
	if validUntil.Valid {
		price.ValidUntil = &validUntil.Time
	}
	return &price, nil
}

func scanPaperOptionRow(row pgx.Row) (*catalog.PaperOption, error) {
	var (
		option     catalog.PaperOption
		width      pgtype.Float8
		height     pgtype.Float8
		rollLength pgtype.Float8
	)
	err := row.Scan(
		&option.ID, &option.Name, &option.Category, &option.Weight, &option.Size, &option.Color,
		&option.PricingMethod, &option.PricePerSheet, &option.CostPerSheet, &option.PricePerSqft,
		&option.CostPerSqft, &width, &height, &option.IsRoll, &rollLength,
		&option.IsActive, &option.CreatedAt, &option.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if width.Valid {
		option.Width = &width.Float64
	}
	if height.Valid {
		option.Height = &height.Float64
	}
	if rollLength.Valid {
		option.RollLength = &rollLength.Float64
	}
	return &option, nil
}
