package sales

import "time"

type CreateCustomerRequest struct {
	Name               string  `json:"name" validate:"required,max=200"`
	Email              string  `json:"email" validate:"omitempty,email,max=200"`
	Phone              string  `json:"phone" validate:"max=50"`
	Company            string  `json:"company" validate:"max=200"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
	Notes              *string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Email              *string  `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Phone              *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company            *string  `json:"company,omitempty" validate:"omitempty,max=200"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes              *string  `json:"notes,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

type ListCustomersRequest struct {
	Search   *string
	IsActive *bool
}

// QuoteItemRequest describes one requested line item. Catalog-priced items
// set PaperID plus the job parameters; template items set SavedPriceID.
// A caller-supplied UnitPrice bypasses computed pricing entirely.
type QuoteItemRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  *string  `json:"description,omitempty"`
	SKU          *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Size         string   `json:"size" validate:"max=50"`
	CustomWidth  *float64 `json:"custom_width,omitempty" validate:"omitempty,gt=0"`
	CustomHeight *float64 `json:"custom_height,omitempty" validate:"omitempty,gt=0"`
	ColorType    string   `json:"color_type" validate:"max=50"`
	Sides        string   `json:"sides" validate:"omitempty,oneof=single double"`
	NUp          int      `json:"n_up" validate:"omitempty,gte=1"`
	PaperID      *int64   `json:"paper_id,omitempty" validate:"omitempty,gt=0"`
	SavedPriceID *int64   `json:"saved_price_id,omitempty" validate:"omitempty,gt=0"`
	FinishingIDs []int64  `json:"finishing_ids,omitempty" validate:"omitempty,dive,gt=0"`
	Quantity     int      `json:"quantity" validate:"required,gte=1"`
	UnitPrice    *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
}

type CreateQuoteRequest struct {
	CustomerID int64              `json:"customer_id" validate:"required,gt=0"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest edits quote metadata. Only drafts accept edits.
type UpdateQuoteRequest struct {
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

type ListQuotesRequest struct {
	CustomerID *int64
	Status     *QuoteStatus
}

type ListOrdersRequest struct {
	CustomerID *int64
}

type UpdateJobStatusRequest struct {
	Status JobStatus `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}
