package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/printdesk/printdesk/internal/platform/db"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// ErrNotFound aliases the shared sentinel so handlers map it to 404 directly.
var ErrNotFound = httpx.ErrNotFound

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	GetPaperOption(ctx context.Context, id int64) (*PaperOption, error)
	ListPaperOptions(ctx context.Context, req ListPaperOptionsRequest) ([]PaperOption, error)
	CreatePaperOption(ctx context.Context, option PaperOption) (int64, error)
	UpdatePaperOption(ctx context.Context, id int64, updates map[string]interface{}) error
	DeletePaperOption(ctx context.Context, id int64) error

	GetPrintPricing(ctx context.Context, id int64) (*PrintPricing, error)
	FindPrintPricing(ctx context.Context, paperSize, colorType string) (*PrintPricing, error)
	ListPrintPricing(ctx context.Context) ([]PrintPricing, error)
	CreatePrintPricing(ctx context.Context, row PrintPricing) (int64, error)
	DeletePrintPricing(ctx context.Context, id int64) error

	GetFinishingOption(ctx context.Context, id int64) (*FinishingOption, error)
	ListFinishingOptions(ctx context.Context, req ListFinishingOptionsRequest) ([]FinishingOption, error)
	ListFinishingCategories(ctx context.Context) ([]string, error)
	CreateFinishingOption(ctx context.Context, option FinishingOption) (int64, error)
	DeleteFinishingOption(ctx context.Context, id int64) error

	GetSavedPrice(ctx context.Context, id int64) (*SavedPrice, error)
	ListSavedPrices(ctx context.Context, req ListSavedPricesRequest) ([]SavedPrice, error)
	CreateSavedPrice(ctx context.Context, price SavedPrice) (int64, error)
	UpdateSavedPrice(ctx context.Context, id int64, updates map[string]interface{}) error
	ReplaceSavedPriceMaterials(ctx context.Context, savedPriceID int64, materials []SavedPriceMaterial) error
	DeleteSavedPrice(ctx context.Context, id int64) error
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
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		repoTx := &repository{db: tx, pool: r.pool}
		return fn(ctx, repoTx)
	})
}

// ============================================================================
// PAPER OPTIONS
// ============================================================================

const paperOptionColumns = `id, name, category, weight, size, color, pricing_method,
	price_per_sheet, cost_per_sheet, price_per_sqft, cost_per_sqft,
	width, height, is_roll, roll_length, is_active, created_at, updated_at`

func (r *repository) GetPaperOption(ctx context.Context, id int64) (*PaperOption, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM paper_options WHERE id = $1`, paperOptionColumns), id)
	option, err := scanPaperOption(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return option, nil
}

func (r *repository) ListPaperOptions(ctx context.Context, req ListPaperOptionsRequest) ([]PaperOption, error) {
	query := fmt.Sprintf(`SELECT %s FROM paper_options`, paperOptionColumns)
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			query += " AND " + conditions[i]
		}
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []PaperOption
	for rows.Next() {
		option, err := scanPaperOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, *option)
	}
	return options, rows.Err()
}

func (r *repository) CreatePaperOption(ctx context.Context, option PaperOption) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO paper_options (name, category, weight, size, color, pricing_method,
			price_per_sheet, cost_per_sheet, price_per_sqft, cost_per_sqft,
			width, height, is_roll, roll_length, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true, NOW(), NOW())
		RETURNING id
	`,
		option.Name, option.Category, option.Weight, option.Size, option.Color, string(option.PricingMethod),
		option.PricePerSheet, option.CostPerSheet, option.PricePerSqft, option.CostPerSqft,
		nullableFloat(option.Width), nullableFloat(option.Height), option.IsRoll, nullableFloat(option.RollLength),
	).Scan(&id)
	return id, err
}

func (r *repository) UpdatePaperOption(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "paper_options", id, updates, []string{
		"name", "category", "weight", "color", "pricing_method",
		"price_per_sheet", "cost_per_sheet", "price_per_sqft", "cost_per_sqft",
		"width", "height", "roll_length", "is_active",
	})
}

func (r *repository) DeletePaperOption(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM paper_options WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// PRINT PRICING
// ============================================================================

const printPricingColumns = `id, name, paper_size, color_type, pricing_method,
	price_per_side, cost_per_side, price_per_sqft, cost_per_sqft, duplex, created_at, updated_at`

func (r *repository) GetPrintPricing(ctx context.Context, id int64) (*PrintPricing, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM print_pricing WHERE id = $1`, printPricingColumns), id)
	pricing, err := scanPrintPricing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pricing, nil
}

// FindPrintPricing looks up the row for an exact paper size and color type.
// Callers handle the AnyPaperSize fallback themselves.
func (r *repository) FindPrintPricing(ctx context.Context, paperSize, colorType string) (*PrintPricing, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM print_pricing
		WHERE paper_size = $1 AND color_type = $2
		ORDER BY id LIMIT 1
	`, printPricingColumns), paperSize, colorType)
	pricing, err := scanPrintPricing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pricing, nil
}

func (r *repository) ListPrintPricing(ctx context.Context) ([]PrintPricing, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT %s FROM print_pricing ORDER BY paper_size, color_type`, printPricingColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pricings []PrintPricing
	for rows.Next() {
		pricing, err := scanPrintPricing(rows)
		if err != nil {
			return nil, err
		}
		pricings = append(pricings, *pricing)
	}
	return pricings, rows.Err()
}

func (r *repository) CreatePrintPricing(ctx context.Context, row PrintPricing) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO print_pricing (name, paper_size, color_type, pricing_method,
			price_per_side, cost_per_side, price_per_sqft, cost_per_sqft, duplex, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`,
		row.Name, row.PaperSize, row.ColorType, string(row.PricingMethod),
		row.PricePerSide, row.CostPerSide, row.PricePerSqft, row.CostPerSqft, row.Duplex,
	).Scan(&id)
	return id, err
}

func (r *repository) DeletePrintPricing(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM print_pricing WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// FINISHING OPTIONS
// ============================================================================

const finishingColumns = `id, name, category, base_price, price_per_piece, price_per_sqft,
	minimum_price, is_active, created_at, updated_at`

func (r *repository) GetFinishingOption(ctx context.Context, id int64) (*FinishingOption, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM finishing_options WHERE id = $1`, finishingColumns), id)
	option, err := scanFinishingOption(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return option, nil
}

func (r *repository) ListFinishingOptions(ctx context.Context, req ListFinishingOptionsRequest) ([]FinishingOption, error) {
	query := fmt.Sprintf(`SELECT %s FROM finishing_options WHERE is_active = true`, finishingColumns)
	var args []interface{}
	if req.Category != nil {
		query += " AND category = $1"
		args = append(args, *req.Category)
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []FinishingOption
	for rows.Next() {
		option, err := scanFinishingOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, *option)
	}
	return options, rows.Err()
}

func (r *repository) ListFinishingCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM finishing_options WHERE is_active = true ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *repository) CreateFinishingOption(ctx context.Context, option FinishingOption) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO finishing_options (name, category, base_price, price_per_piece, price_per_sqft,
			minimum_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
		RETURNING id
	`, option.Name, option.Category, option.BasePrice, option.PricePerPiece, option.PricePerSqft, option.MinimumPrice).Scan(&id)
	return id, err
}

func (r *repository) DeleteFinishingOption(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM finishing_options WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// SAVED PRICES
// ============================================================================

const savedPriceColumns = `id, name, category, cost_price, price, unit, is_template, created_at, updated_at`

func (r *repository) GetSavedPrice(ctx context.Context, id int64) (*SavedPrice, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM saved_prices WHERE id = $1`, savedPriceColumns), id)
	price, err := scanSavedPrice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	materials, err := r.listMaterials(ctx, id)
	if err != nil {
		return nil, err
	}
	price.Materials = materials
	return price, nil
}

func (r *repository) ListSavedPrices(ctx context.Context, req ListSavedPricesRequest) ([]SavedPrice, error) {
	query := fmt.Sprintf(`SELECT %s FROM saved_prices`, savedPriceColumns)
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}
	if req.TemplatesOnly {
		conditions = append(conditions, "is_template = true")
	}
	if len(conditions) > 0 {
		query += " WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			query += " AND " + conditions[i]
		}
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []SavedPrice
	for rows.Next() {
		price, err := scanSavedPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, *price)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if req.IncludeMaterials {
		for i := range prices {
			materials, err := r.listMaterials(ctx, prices[i].ID)
			if err != nil {
				return nil, err
			}
			prices[i].Materials = materials
		}
	}
	return prices, nil
}

func (r *repository) CreateSavedPrice(ctx context.Context, price SavedPrice) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO saved_prices (name, category, cost_price, price, unit, is_template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, price.Name, price.Category, price.CostPrice, price.Price, price.Unit, price.IsTemplate).Scan(&id)
	if err != nil {
		return 0, err
	}
	if err := r.insertMaterials(ctx, id, price.Materials); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateSavedPrice(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "saved_prices", id, updates, []string{
		"name", "category", "cost_price", "price", "unit",
	})
}

// ReplaceSavedPriceMaterials swaps the whole owned material recipe. The
// materials belong exclusively to the saved price, so replacement is a
// delete-and-insert.
func (r *repository) ReplaceSavedPriceMaterials(ctx context.Context, savedPriceID int64, materials []SavedPriceMaterial) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saved_price_materials WHERE saved_price_id = $1`, savedPriceID); err != nil {
		return err
	}
	return r.insertMaterials(ctx, savedPriceID, materials)
}

func (r *repository) DeleteSavedPrice(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saved_price_materials WHERE saved_price_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_prices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) listMaterials(ctx context.Context, savedPriceID int64) ([]SavedPriceMaterial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, saved_price_id, name, quantity, unit, cost, category, position
		FROM saved_price_materials
		WHERE saved_price_id = $1
		ORDER BY position, id
	`, savedPriceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []SavedPriceMaterial
	for rows.Next() {
		var m SavedPriceMaterial
		if err := rows.Scan(&m.ID, &m.SavedPriceID, &m.Name, &m.Quantity, &m.Unit, &m.Cost, &m.Category, &m.Position); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *repository) insertMaterials(ctx context.Context, savedPriceID int64, materials []SavedPriceMaterial) error {
	for i, m := range materials {
		position := m.Position
		if position == 0 {
			position = i + 1
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO saved_price_materials (saved_price_id, name, quantity, unit, cost, category, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, savedPriceID, m.Name, m.Quantity, m.Unit, m.Cost, m.Category, position)
		if err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *repository) applyUpdates(ctx context.Context, table string, id int64, updates map[string]interface{}, allowed []string) error {
	query := fmt.Sprintf("UPDATE %s SET updated_at = NOW()", table)
	var args []interface{}
	argPos := 1

	for _, column := range allowed {
		if v, ok := updates[column]; ok {
			query += fmt.Sprintf(", %s = $%d", column, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPaperOption(row pgx.Row) (*PaperOption, error) {
	var p PaperOption
	var method string
	var width, height, rollLength pgtype.Float8
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Weight, &p.Size, &p.Color, &method,
		&p.PricePerSheet, &p.CostPerSheet, &p.PricePerSqft, &p.CostPerSqft,
		&width, &height, &p.IsRoll, &rollLength, &p.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PricingMethod = PaperPricingMethod(method)
	if width.Valid {
		val := width.Float64
		p.Width = &val
	}
	if height.Valid {
		val := height.Float64
		p.Height = &val
	}
	if rollLength.Valid {
		val := rollLength.Float64
		p.RollLength = &val
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

func scanPrintPricing(row pgx.Row) (*PrintPricing, error) {
	var p PrintPricing
	var method string
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&p.ID, &p.Name, &p.PaperSize, &p.ColorType, &method,
		&p.PricePerSide, &p.CostPerSide, &p.PricePerSqft, &p.CostPerSqft, &p.Duplex,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PricingMethod = PrintPricingMethod(method)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

func scanFinishingOption(row pgx.Row) (*FinishingOption, error) {
	var f FinishingOption
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&f.ID, &f.Name, &f.Category, &f.BasePrice, &f.PricePerPiece, &f.PricePerSqft,
		&f.MinimumPrice, &f.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		f.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		f.UpdatedAt = updatedAt.Time
	}
	return &f, nil
}

func scanSavedPrice(row pgx.Row) (*SavedPrice, error) {
	var s SavedPrice
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.CostPrice, &s.Price, &s.Unit, &s.IsTemplate,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.Time
	}
	return &s, nil
}

func nullableFloat(v *float64) pgtype.Float8 {
	if v == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *v, Valid: true}
}
