package sales

import "time"

// QuoteStatus follows draft -> sent -> {accepted, declined, expired}.
// The three right-hand states are terminal.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteStatusSent, QuoteStatusExpired},
	QuoteStatusSent:  {QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired},
}

// CanTransition reports whether the status machine allows moving to next.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist.
func (s QuoteStatus) Terminal() bool {
	return len(quoteTransitions[s]) == 0
}

// ConvertEligible reports whether a quote in this status may be converted to
// an order. Conversion drives the transition to accepted.
func (s QuoteStatus) ConvertEligible() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// JobStatus tracks an order item through production.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:    {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCancelled},
}

func (s JobStatus) CanTransition(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Customer struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	Phone              string    `json:"phone" db:"phone"`
	Company            string    `json:"company" db:"company"`
	DiscountPercentage float64   `json:"discount_percentage" db:"discount_percentage"`
	Notes              *string   `json:"notes,omitempty" db:"notes"`
	IsActive           bool      `json:"is_active" db:"is_active"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DiscountMultiplier is the factor applied to a line-item subtotal.
func (c Customer) DiscountMultiplier() float64 {
	return (100 - c.DiscountPercentage) / 100
}

type Quote struct {
	ID         int64       `json:"id" db:"id"`
	Number     string      `json:"number" db:"number"`
	CustomerID int64       `json:"customer_id" db:"customer_id"`
	Status     QuoteStatus `json:"status" db:"status"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	ValidUntil *time.Time  `json:"valid_until,omitempty" db:"valid_until"`
	Notes      *string     `json:"notes,omitempty" db:"notes"`
	Items      []QuoteItem `json:"items,omitempty" db:"-"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// QuoteItem is one priced unit of work within a quote. It owns its material
// list exclusively; materials never alias catalog rows.
type QuoteItem struct {
	ID           int64               `json:"id" db:"id"`
	QuoteID      int64               `json:"quote_id" db:"quote_id"`
	Name         string              `json:"name" db:"name"`
	Description  *string             `json:"description,omitempty" db:"description"`
	SKU          *string             `json:"sku,omitempty" db:"sku"`
	Size         string              `json:"size" db:"size"`
	CustomWidth  *float64            `json:"custom_width,omitempty" db:"custom_width"`
	CustomHeight *float64            `json:"custom_height,omitempty" db:"custom_height"`
	ColorType    string              `json:"color_type" db:"color_type"`
	Sides        string              `json:"sides" db:"sides"`
	PaperType    string              `json:"paper_type" db:"paper_type"`
	PaperWeight  string              `json:"paper_weight" db:"paper_weight"`
	NUp          int                 `json:"n_up" db:"n_up"`
	Finishing    []string            `json:"finishing" db:"finishing"`
	Quantity     int                 `json:"quantity" db:"quantity"`
	UnitPrice    float64             `json:"unit_price" db:"unit_price"`
	TotalPrice   float64             `json:"total_price" db:"total_price"`
	SavedPriceID *int64              `json:"saved_price_id,omitempty" db:"saved_price_id"`
	Position     int                 `json:"position" db:"position"`
	Materials    []QuoteItemMaterial `json:"materials,omitempty" db:"-"`
}

// QuoteItemMaterial is an independently-owned material-consumption record.
// SavedPriceID is a traceability back-reference only; editing a material never
// mutates the catalog.
type QuoteItemMaterial struct {
	ID           int64   `json:"id" db:"id"`
	QuoteItemID  int64   `json:"quote_item_id" db:"quote_item_id"`
	Name         string  `json:"name" db:"name"`
	Quantity     float64 `json:"quantity" db:"quantity"`
	Unit         string  `json:"unit" db:"unit"`
	Cost         float64 `json:"cost" db:"cost"`
	Notes        *string `json:"notes,omitempty" db:"notes"`
	Category     string  `json:"category" db:"category"`
	SavedPriceID *int64  `json:"saved_price_id,omitempty" db:"saved_price_id"`
	Position     int     `json:"position" db:"position"`
}

type Order struct {
	ID         int64       `json:"id" db:"id"`
	Number     string      `json:"number" db:"number"`
	QuoteID    *int64      `json:"quote_id,omitempty" db:"quote_id"`
	CustomerID int64       `json:"customer_id" db:"customer_id"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	Notes      *string     `json:"notes,omitempty" db:"notes"`
	Items      []OrderItem `json:"items,omitempty" db:"-"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID           int64          `json:"id" db:"id"`
	OrderID      int64          `json:"order_id" db:"order_id"`
	Name         string         `json:"name" db:"name"`
	Description  *string        `json:"description,omitempty" db:"description"`
	SKU          *string        `json:"sku,omitempty" db:"sku"`
	Size         string         `json:"size" db:"size"`
	CustomWidth  *float64       `json:"custom_width,omitempty" db:"custom_width"`
	CustomHeight *float64       `json:"custom_height,omitempty" db:"custom_height"`
	ColorType    string         `json:"color_type" db:"color_type"`
	Sides        string         `json:"sides" db:"sides"`
	PaperType    string         `json:"paper_type" db:"paper_type"`
	PaperWeight  string         `json:"paper_weight" db:"paper_weight"`
	NUp          int            `json:"n_up" db:"n_up"`
	Finishing    []string       `json:"finishing" db:"finishing"`
	Quantity     int            `json:"quantity" db:"quantity"`
	UnitPrice    float64        `json:"unit_price" db:"unit_price"`
	TotalPrice   float64        `json:"total_price" db:"total_price"`
	JobStatus    JobStatus      `json:"job_status" db:"job_status"`
	Position     int            `json:"position" db:"position"`
	Materials    []ItemMaterial `json:"materials,omitempty" db:"-"`
}

type ItemMaterial struct {
	ID           int64   `json:"id" db:"id"`
	OrderItemID  int64   `json:"order_item_id" db:"order_item_id"`
	Name         string  `json:"name" db:"name"`
	Quantity     float64 `json:"quantity" db:"quantity"`
	Unit         string  `json:"unit" db:"unit"`
	Cost         float64 `json:"cost" db:"cost"`
	Notes        *string `json:"notes,omitempty" db:"notes"`
	Category     string  `json:"category" db:"category"`
	SavedPriceID *int64  `json:"saved_price_id,omitempty" db:"saved_price_id"`
	Position     int     `json:"position" db:"position"`
}
