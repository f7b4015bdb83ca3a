package catalog

import "time"

// PaperPricingMethod selects how a paper option is priced.
type PaperPricingMethod string

const (
	PaperPricedPerSheet PaperPricingMethod = "sheet"
	PaperPricedPerSqft  PaperPricingMethod = "sqft"
)

// PrintPricingMethod selects how a print pricing row is priced.
type PrintPricingMethod string

const (
	PrintPricedPerSide PrintPricingMethod = "side"
	PrintPricedPerSqft PrintPricingMethod = "sqft"
)

// AnyPaperSize marks a print pricing row that applies to any paper size.
// It is the fallback when no row matches the requested size exactly.
const AnyPaperSize = "any"

const sqInchesPerSqFoot = 144.0

type PaperOption struct {
	ID            int64              `json:"id" db:"id"`
	Name          string             `json:"name" db:"name"`
	Category      string             `json:"category" db:"category"`
	Weight        string             `json:"weight" db:"weight"`
	Size          string             `json:"size" db:"size"`
	Color         string             `json:"color" db:"color"`
	PricingMethod PaperPricingMethod `json:"pricing_method" db:"pricing_method"`
	PricePerSheet float64            `json:"price_per_sheet" db:"price_per_sheet"`
	CostPerSheet  float64            `json:"cost_per_sheet" db:"cost_per_sheet"`
	PricePerSqft  float64            `json:"price_per_sqft" db:"price_per_sqft"`
	CostPerSqft   float64            `json:"cost_per_sqft" db:"cost_per_sqft"`
	Width         *float64           `json:"width,omitempty" db:"width"`
	Height        *float64           `json:"height,omitempty" db:"height"`
	IsRoll        bool               `json:"is_roll" db:"is_roll"`
	RollLength    *float64           `json:"roll_length,omitempty" db:"roll_length"`
	IsActive      bool               `json:"is_active" db:"is_active"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" db:"updated_at"`
}

// AreaSqft returns the sheet area in square feet. Width and height are in
// inches; roll length is in feet. The second return value is false when the
// geometry needed for sqft pricing is missing.
func (p PaperOption) AreaSqft() (float64, bool) {
	if p.IsRoll {
		if p.Width == nil || p.RollLength == nil {
			return 0, false
		}
		return (*p.Width / 12) * *p.RollLength, true
	}
	if p.Width == nil || p.Height == nil {
		return 0, false
	}
	return (*p.Width * *p.Height) / sqInchesPerSqFoot, true
}

type PrintPricing struct {
	ID            int64              `json:"id" db:"id"`
	Name          string             `json:"name" db:"name"`
	PaperSize     string             `json:"paper_size" db:"paper_size"`
	ColorType     string             `json:"color_type" db:"color_type"`
	PricingMethod PrintPricingMethod `json:"pricing_method" db:"pricing_method"`
	PricePerSide  float64            `json:"per_page_price" db:"price_per_side"`
	CostPerSide   float64            `json:"per_page_cost" db:"cost_per_side"`
	PricePerSqft  float64            `json:"price_per_sqft" db:"price_per_sqft"`
	CostPerSqft   float64            `json:"cost_per_sqft" db:"cost_per_sqft"`
	Duplex        bool               `json:"duplex" db:"duplex"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" db:"updated_at"`
}

type FinishingOption struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	BasePrice     float64   `json:"base_price" db:"base_price"`
	PricePerPiece float64   `json:"price_per_piece" db:"price_per_piece"`
	PricePerSqft  float64   `json:"price_per_sqft" db:"price_per_sqft"`
	MinimumPrice  float64   `json:"minimum_price" db:"minimum_price"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// SavedPrice is a reusable catalog entry. Template entries exclusively own an
// ordered per-unit material recipe that is destroyed with the parent.
type SavedPrice struct {
	ID         int64                `json:"id" db:"id"`
	Name       string               `json:"name" db:"name"`
	Category   string               `json:"category" db:"category"`
	CostPrice  float64              `json:"cost_price" db:"cost_price"`
	Price      float64              `json:"price" db:"price"`
	Unit       string               `json:"unit" db:"unit"`
	IsTemplate bool                 `json:"is_template" db:"is_template"`
	Materials  []SavedPriceMaterial `json:"materials,omitempty" db:"-"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" db:"updated_at"`
}

type SavedPriceMaterial struct {
	ID           int64   `json:"id" db:"id"`
	SavedPriceID int64   `json:"saved_price_id" db:"saved_price_id"`
	Name         string  `json:"name" db:"name"`
	Quantity     float64 `json:"quantity" db:"quantity"`
	Unit         string  `json:"unit" db:"unit"`
	Cost         float64 `json:"cost" db:"cost"`
	Category     string  `json:"category" db:"category"`
	Position     int     `json:"position" db:"position"`
}
