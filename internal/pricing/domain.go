package pricing

import "time"

// Sides is the sidedness of a print job.
type Sides string

const (
	SingleSided Sides = "single"
	DoubleSided Sides = "double"
)

// Count returns the number of printed sides per piece.
func (s Sides) Count() int {
	if s == DoubleSided {
		return 2
	}
	return 1
}

// DiscountType selects how a customer override adjusts its price.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CustomerPrice is a per-customer override for one catalog row, usable only
// while valid. It references at most one catalog row; zero references means a
// fully custom price.
type CustomerPrice struct {
	ID                int64        `json:"id" db:"id"`
	CustomerID        int64        `json:"customer_id" db:"customer_id"`
	SavedPriceID      *int64       `json:"saved_price_id,omitempty" db:"saved_price_id"`
	PaperOptionID     *int64       `json:"paper_option_id,omitempty" db:"paper_option_id"`
	PrintPricingID    *int64       `json:"print_pricing_id,omitempty" db:"print_pricing_id"`
	FinishingOptionID *int64       `json:"finishing_option_id,omitempty" db:"finishing_option_id"`
	Price             float64      `json:"price" db:"price"`
	DiscountType      DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue     float64      `json:"discount_value" db:"discount_value"`
	ValidFrom         time.Time    `json:"valid_from" db:"valid_from"`
	ValidUntil        *time.Time   `json:"valid_until,omitempty" db:"valid_until"`
	IsActive          bool         `json:"is_active" db:"is_active"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// ReferenceCount reports how many catalog rows the override points at.
// The data model allows at most one.
func (cp CustomerPrice) ReferenceCount() int {
	count := 0
	for _, ref := range []*int64{cp.SavedPriceID, cp.PaperOptionID, cp.PrintPricingID, cp.FinishingOptionID} {
		if ref != nil {
			count++
		}
	}
	return count
}

// ValidAt reports whether the override applies at the given instant. The
// window is open-ended when valid_until is absent.
func (cp CustomerPrice) ValidAt(at time.Time) bool {
	if !cp.IsActive {
		return false
	}
	if at.Before(cp.ValidFrom) {
		return false
	}
	if cp.ValidUntil != nil && at.After(*cp.ValidUntil) {
		return false
	}
	return true
}

// EffectivePrice is the override price after applying its own discount.
func (cp CustomerPrice) EffectivePrice() float64 {
	switch cp.DiscountType {
	case DiscountPercentage:
		return cp.Price * (100 - cp.DiscountValue) / 100
	case DiscountFixed:
		price := cp.Price - cp.DiscountValue
		if price < 0 {
			return 0
		}
		return price
	default:
		return cp.Price
	}
}

// Job carries the parameters of one priced line item.
type Job struct {
	Quantity int
	Sides    Sides
	NUp      int
}

// ComponentCost is the per-piece price/cost pair for one component.
type ComponentCost struct {
	UnitPrice float64 `json:"unit_price"`
	UnitCost  float64 `json:"unit_cost"`
}

// FinishingCharge is one finishing option's one-time job charge.
type FinishingCharge struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	EffectivePrice float64 `json:"effective_price"`
	EffectiveCost  float64 `json:"effective_cost"`
}

// FinishingSummary aggregates the finishing charges on a job.
type FinishingSummary struct {
	TotalPrice float64           `json:"total_price"`
	TotalCost  float64           `json:"total_cost"`
	Breakdown  []FinishingCharge `json:"breakdown"`
}

// PriceSummary is the revenue side of an estimate.
type PriceSummary struct {
	UnitPrice         float64 `json:"unit_price"`
	TotalPrice        float64 `json:"total_price"`
	UnitWithFinishing float64 `json:"unit_with_finishing"`
}

// CostSummary is the internal cost side of an estimate. It mirrors the price
// computation but never applies customer discounts.
type CostSummary struct {
	UnitCost        float64 `json:"unit_cost"`
	TotalCost       float64 `json:"total_cost"`
	EstimatedProfit float64 `json:"estimated_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
}

// Estimate is the full pricing breakdown for one line item.
type Estimate struct {
	Paper     ComponentCost    `json:"paper"`
	Printing  ComponentCost    `json:"printing"`
	Finishing FinishingSummary `json:"finishing"`
	Prices    PriceSummary     `json:"prices"`
	Costs     CostSummary      `json:"costs"`
	Quantity  int              `json:"quantity"`
}
