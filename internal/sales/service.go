package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/httpx"
	"github.com/printdesk/printdesk/internal/pricing"
)

var (
	ErrValidation = httpx.ErrValidation

	// ErrInvalidStatus rejects a transition the status machine forbids.
	ErrInvalidStatus = httpx.ErrInvalidStatus

	// ErrConversion wraps any failure inside a quote conversion. Nothing
	// partial persists when it is returned.
	ErrConversion = httpx.ErrConversion
)

// Pricer computes line-item estimates. Implemented by pricing.Service.
type Pricer interface {
	Estimate(ctx context.Context, req pricing.EstimateRequest) (*pricing.Estimate, error)
	ListCustomerPrices(ctx context.Context, customerID int64) ([]pricing.CustomerPrice, error)
}

// TemplateSource resolves saved-price catalog entries for template expansion.
// Implemented by catalog.Repository.
type TemplateSource interface {
	GetSavedPrice(ctx context.Context, id int64) (*catalog.SavedPrice, error)
}

// Service owns customers, quotes, and orders.
type Service struct {
	repo      Repository
	pricer    Pricer
	templates TemplateSource
	validate  *validator.Validate
	now       func() time.Time
}

func NewService(repo Repository, pricer Pricer, templates TemplateSource) *Service {
	return &Service{
		repo:      repo,
		pricer:    pricer,
		templates: templates,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// ============================================================================
// CUSTOMERS
// ============================================================================

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	id, err := s.repo.CreateCustomer(ctx, Customer{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Company:            req.Company,
		DiscountPercentage: req.DiscountPercentage,
		Notes:              req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateCustomer(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, req ListCustomersRequest) ([]Customer, error) {
	return s.repo.ListCustomers(ctx, req)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// ============================================================================
// QUOTES
// ============================================================================

// CreateQuote prices and persists a quote with its items and expanded
// materials in one transaction.
func (s *Service) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var quoteID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		customer, err := repo.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: customer %d", ErrValidation, req.CustomerID)
			}
			return err
		}

		number, err := repo.GenerateNumber(ctx, DocTypeQuote, s.now())
		if err != nil {
			return err
		}

		quote := Quote{
			Number:     number,
			CustomerID: customer.ID,
			Status:     QuoteStatusDraft,
			ValidUntil: req.ValidUntil,
			Notes:      req.Notes,
		}
		for _, itemReq := range req.Items {
			item, err := s.buildQuoteItem(ctx, *customer, itemReq)
			if err != nil {
				return err
			}
			quote.TotalPrice += item.TotalPrice
			quote.Items = append(quote.Items, *item)
		}

		quoteID, err = repo.CreateQuote(ctx, quote)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetQuote(ctx, quoteID)
}

// buildQuoteItem resolves pricing for one requested item. A caller-supplied
// unit price wins; template items price from the saved-price entry (or a
// valid customer override for it); everything else goes through the
// estimate pipeline.
func (s *Service) buildQuoteItem(ctx context.Context, customer Customer, req QuoteItemRequest) (*QuoteItem, error) {
	item := QuoteItem{
		Name:         req.Name,
		Description:  req.Description,
		SKU:          req.SKU,
		Size:         req.Size,
		CustomWidth:  req.CustomWidth,
		CustomHeight: req.CustomHeight,
		ColorType:    req.ColorType,
		Sides:        req.Sides,
		NUp:          req.NUp,
		Finishing:    []string{},
		Quantity:     req.Quantity,
		SavedPriceID: req.SavedPriceID,
	}
	if item.Sides == "" {
		item.Sides = string(pricing.SingleSided)
	}
	if item.NUp == 0 {
		item.NUp = 1
	}
	quantity := float64(req.Quantity)

	switch {
	case req.UnitPrice != nil:
		item.UnitPrice = *req.UnitPrice
		item.TotalPrice = item.UnitPrice * quantity * customer.DiscountMultiplier()
		if req.SavedPriceID != nil {
			if err := s.expandInto(ctx, &item, *req.SavedPriceID, req.Quantity); err != nil {
				return nil, err
			}
		}

	case req.SavedPriceID != nil:
		template, err := s.templates.GetSavedPrice(ctx, *req.SavedPriceID)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return nil, fmt.Errorf("%w: saved price %d", ErrValidation, *req.SavedPriceID)
			}
			return nil, err
		}
		item.UnitPrice = s.savedPriceUnit(ctx, customer.ID, template)
		item.TotalPrice = item.UnitPrice * quantity * customer.DiscountMultiplier()
		item.PaperType = template.Name
		if template.IsTemplate {
			materials, err := ExpandTemplateMaterials(template, req.Quantity)
			if err != nil {
				return nil, err
			}
			item.Materials = materials
		}

	case req.PaperID != nil:
		estimate, err := s.pricer.Estimate(ctx, pricing.EstimateRequest{
			CustomerID:   &customer.ID,
			PaperID:      *req.PaperID,
			ColorType:    req.ColorType,
			Sides:        pricing.Sides(item.Sides),
			Quantity:     req.Quantity,
			NUp:          item.NUp,
			FinishingIDs: req.FinishingIDs,
		})
		if err != nil {
			return nil, err
		}
		item.UnitPrice = estimate.Prices.UnitPrice
		item.TotalPrice = estimate.Prices.TotalPrice
		for _, charge := range estimate.Finishing.Breakdown {
			item.Finishing = append(item.Finishing, charge.Name)
		}

	default:
		return nil, fmt.Errorf("%w: item %q needs a paper option, saved price, or explicit unit price", ErrValidation, req.Name)
	}
	return &item, nil
}

// savedPriceUnit returns the saved-price unit price, replaced by a valid
// customer override when one references this entry.
func (s *Service) savedPriceUnit(ctx context.Context, customerID int64, template *catalog.SavedPrice) float64 {
	overrides, err := s.pricer.ListCustomerPrices(ctx, customerID)
	if err != nil {
		return template.Price
	}
	for i := range overrides {
		if overrides[i].SavedPriceID != nil && *overrides[i].SavedPriceID == template.ID {
			return overrides[i].EffectivePrice()
		}
	}
	return template.Price
}

func (s *Service) expandInto(ctx context.Context, item *QuoteItem, savedPriceID int64, quantity int) error {
	template, err := s.templates.GetSavedPrice(ctx, savedPriceID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("%w: saved price %d", ErrValidation, savedPriceID)
		}
		return err
	}
	if !template.IsTemplate {
		return nil
	}
	materials, err := ExpandTemplateMaterials(template, quantity)
	if err != nil {
		return err
	}
	item.Materials = materials
	return nil
}

func (s *Service) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.GetQuote(ctx, id)
}

func (s *Service) ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, error) {
	return s.repo.ListQuotes(ctx, req)
}

func (s *Service) DeleteQuote(ctx context.Context, id int64) error {
	return s.repo.DeleteQuote(ctx, id)
}

// UpdateQuote edits metadata on a draft quote. Sent and terminal quotes are
// immutable.
func (s *Service) UpdateQuote(ctx context.Context, id int64, req UpdateQuoteRequest) (*Quote, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		quote, err := repo.GetQuote(ctx, id)
		if err != nil {
			return err
		}
		if quote.Status != QuoteStatusDraft {
			return fmt.Errorf("%w: quote is %s", ErrInvalidStatus, quote.Status)
		}
		updates := make(map[string]interface{})
		if req.ValidUntil != nil {
			updates["valid_until"] = *req.ValidUntil
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if len(updates) == 0 {
			return nil
		}
		return repo.UpdateQuote(ctx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetQuote(ctx, id)
}

func (s *Service) SendQuote(ctx context.Context, id int64) (*Quote, error) {
	return s.transitionQuote(ctx, id, QuoteStatusSent)
}

func (s *Service) DeclineQuote(ctx context.Context, id int64) (*Quote, error) {
	return s.transitionQuote(ctx, id, QuoteStatusDeclined)
}

func (s *Service) ExpireQuote(ctx context.Context, id int64) (*Quote, error) {
	return s.transitionQuote(ctx, id, QuoteStatusExpired)
}

func (s *Service) transitionQuote(ctx context.Context, id int64, next QuoteStatus) (*Quote, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		quote, err := repo.GetQuote(ctx, id)
		if err != nil {
			return err
		}
		if !quote.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, quote.Status, next)
		}
		return repo.UpdateQuoteStatus(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetQuote(ctx, id)
}

// ============================================================================
// CONVERSION
// ============================================================================

// ConvertQuote turns an eligible quote into a new order, copying items and
// materials and marking the quote accepted. All steps run in one transaction;
// any failure rolls the whole conversion back. A caller-supplied
// idempotencyKey guards against double-submission; when the caller omits it,
// a fresh one is generated so the conversion is still recorded.
func (s *Service) ConvertQuote(ctx context.Context, quoteID int64, idempotencyKey string) (*Order, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	var orderID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.InsertIdempotencyKey(ctx, idempotencyKey, "quote-convert"); err != nil {
			return err
		}

		quote, err := repo.GetQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		if !quote.Status.ConvertEligible() {
			return fmt.Errorf("%w: quote is %s", ErrInvalidStatus, quote.Status)
		}

		number, err := repo.GenerateNumber(ctx, DocTypeOrder, s.now())
		if err != nil {
			return err
		}

		order := Order{
			Number:     number,
			QuoteID:    &quote.ID,
			CustomerID: quote.CustomerID,
			TotalPrice: quote.TotalPrice,
			Notes:      quote.Notes,
		}
		for _, quoteItem := range quote.Items {
			order.Items = append(order.Items, copyQuoteItem(quoteItem))
		}

		orderID, err = repo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}
		return repo.UpdateQuoteStatus(ctx, quoteID, QuoteStatusAccepted)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrIdempotencyConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return s.repo.GetOrder(ctx, orderID)
}

// copyQuoteItem builds an independent order item from a quote item. The new
// tree never aliases the quote's records.
func copyQuoteItem(quoteItem QuoteItem) OrderItem {
	orderItem := OrderItem{
		Name:         quoteItem.Name,
		Description:  quoteItem.Description,
		SKU:          quoteItem.SKU,
		Size:         quoteItem.Size,
		CustomWidth:  quoteItem.CustomWidth,
		CustomHeight: quoteItem.CustomHeight,
		ColorType:    quoteItem.ColorType,
		Sides:        quoteItem.Sides,
		PaperType:    quoteItem.PaperType,
		PaperWeight:  quoteItem.PaperWeight,
		NUp:          quoteItem.NUp,
		Finishing:    append([]string(nil), quoteItem.Finishing...),
		Quantity:     quoteItem.Quantity,
		UnitPrice:    quoteItem.UnitPrice,
		TotalPrice:   quoteItem.TotalPrice,
		JobStatus:    JobStatusPending,
	}
	for _, material := range quoteItem.Materials {
		orderItem.Materials = append(orderItem.Materials, ItemMaterial{
			Name:         material.Name,
			Quantity:     material.Quantity,
			Unit:         material.Unit,
			Cost:         material.Cost,
			Notes:        material.Notes,
			Category:     material.Category,
			SavedPriceID: material.SavedPriceID,
		})
	}
	return orderItem
}

// ============================================================================
// ORDERS
// ============================================================================

func (s *Service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, error) {
	return s.repo.ListOrders(ctx, req)
}

// UpdateJobStatus advances one order item through production.
func (s *Service) UpdateJobStatus(ctx context.Context, orderID, itemID int64, req UpdateJobStatusRequest) (*OrderItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		item, err := repo.GetOrderItem(ctx, orderID, itemID)
		if err != nil {
			return err
		}
		if !item.JobStatus.CanTransition(req.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, item.JobStatus, req.Status)
		}
		return repo.UpdateOrderItemStatus(ctx, itemID, req.Status)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetOrderItem(ctx, orderID, itemID)
}
