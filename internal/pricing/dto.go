package pricing

import "time"

// EstimateRequest is the preview/cost-estimate body. CustomerID is optional;
// walk-in estimates skip discounts and overrides.
type EstimateRequest struct {
	CustomerID   *int64  `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	PaperID      int64   `json:"paper_id" validate:"required,gt=0"`
	ColorType    string  `json:"color_type" validate:"required,max=50"`
	Sides        Sides   `json:"sides" validate:"required,oneof=single double"`
	Quantity     int     `json:"quantity" validate:"required,gte=1"`
	NUp          int     `json:"n_up" validate:"omitempty,gte=1"`
	FinishingIDs []int64 `json:"finishing_ids" validate:"omitempty,dive,gt=0"`
}

type CreateCustomerPriceRequest struct {
	CustomerID        int64        `json:"customer_id" validate:"required,gt=0"`
	SavedPriceID      *int64       `json:"saved_price_id,omitempty" validate:"omitempty,gt=0"`
	PaperOptionID     *int64       `json:"paper_option_id,omitempty" validate:"omitempty,gt=0"`
	PrintPricingID    *int64       `json:"print_pricing_id,omitempty" validate:"omitempty,gt=0"`
	FinishingOptionID *int64       `json:"finishing_option_id,omitempty" validate:"omitempty,gt=0"`
	Price             float64      `json:"price" validate:"gte=0"`
	DiscountType      DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue     float64      `json:"discount_value" validate:"gte=0"`
	ValidFrom         *time.Time   `json:"valid_from,omitempty"`
	ValidUntil        *time.Time   `json:"valid_until,omitempty"`
}

type UpdateCustomerPriceRequest struct {
	Price         *float64      `json:"price,omitempty" validate:"omitempty,gte=0"`
	DiscountType  *DiscountType `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue *float64      `json:"discount_value,omitempty" validate:"omitempty,gte=0"`
	ValidFrom     *time.Time    `json:"valid_from,omitempty"`
	ValidUntil    *time.Time    `json:"valid_until,omitempty"`
	IsActive      *bool         `json:"is_active,omitempty"`
}
