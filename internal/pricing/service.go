package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/observability"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

var ErrValidation = httpx.ErrValidation

// ErrPricingNotFound signals that no print pricing row matched, even after
// the any-size fallback.
var ErrPricingNotFound = httpx.ErrPricingNotFound

// Service computes line-item estimates and maintains customer overrides.
type Service struct {
	repo     Repository
	validate *validator.Validate
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewService(repo Repository, metrics *observability.Metrics) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		metrics:  metrics,
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Estimate prices one line item. All catalog reads happen inside a single
// repeatable-read transaction so a concurrent catalog edit cannot skew one
// computation across two points in time.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	if err := s.validate.Struct(req); err != nil {
		s.observe("invalid")
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.NUp == 0 {
		req.NUp = 1
	}

	var estimate *Estimate
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		inputs, err := s.loadInputs(ctx, repo, req)
		if err != nil {
			return err
		}
		estimate, err = Compute(*inputs, Job{
			Quantity: req.Quantity,
			Sides:    req.Sides,
			NUp:      req.NUp,
		})
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPricingNotFound):
			s.observe("pricing_not_found")
		case errors.Is(err, ErrValidation):
			s.observe("invalid")
		default:
			s.observe("error")
		}
		return nil, err
	}
	s.observe("ok")
	return estimate, nil
}

func (s *Service) loadInputs(ctx context.Context, repo Repository, req EstimateRequest) (*Inputs, error) {
	paper, err := repo.GetPaperOption(ctx, req.PaperID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: paper option %d", ErrValidation, req.PaperID)
		}
		return nil, err
	}

	printRow, err := s.resolvePrintPricing(ctx, repo, paper.Size, req.ColorType)
	if err != nil {
		return nil, err
	}

	finishing, err := repo.ListFinishingOptionsByIDs(ctx, req.FinishingIDs)
	if err != nil {
		return nil, err
	}
	if len(finishing) != len(uniqueIDs(req.FinishingIDs)) {
		return nil, fmt.Errorf("%w: one or more finishing options not found", ErrValidation)
	}

	inputs := &Inputs{
		Paper:     paper,
		Print:     printRow,
		Finishing: finishing,
	}
	if req.CustomerID != nil {
		discount, err := repo.GetCustomerDiscount(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: customer %d", ErrValidation, *req.CustomerID)
			}
			return nil, err
		}
		inputs.DiscountPercentage = discount

		overrides, err := repo.ListValidCustomerPrices(ctx, *req.CustomerID, s.now())
		if err != nil {
			return nil, err
		}
		inputs.Overrides = matchOverrides(overrides, paper, printRow, finishing)
	}
	return inputs, nil
}

// resolvePrintPricing looks up the exact size/color row, then the any-size
// fallback. A missing row after both is a pricing gap, not a caller mistake.
func (s *Service) resolvePrintPricing(ctx context.Context, repo Repository, paperSize, colorType string) (*catalog.PrintPricing, error) {
	row, err := repo.FindPrintPricing(ctx, paperSize, colorType)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	row, err = repo.FindPrintPricing(ctx, catalog.AnyPaperSize, colorType)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: size %q color %q", ErrPricingNotFound, paperSize, colorType)
}

// matchOverrides binds each valid override to the component it references.
// Overrides for rows not part of this estimate are ignored.
func matchOverrides(prices []CustomerPrice, paper *catalog.PaperOption, printRow *catalog.PrintPricing, finishing []catalog.FinishingOption) Overrides {
	overrides := Overrides{Finishing: make(map[int64]*CustomerPrice)}
	finishingIDs := make(map[int64]bool, len(finishing))
	for _, option := range finishing {
		finishingIDs[option.ID] = true
	}
	for i := range prices {
		price := &prices[i]
		switch {
		case price.PaperOptionID != nil && paper != nil && *price.PaperOptionID == paper.ID:
			overrides.Paper = price
		case price.PrintPricingID != nil && printRow != nil && *price.PrintPricingID == printRow.ID:
			overrides.Print = price
		case price.FinishingOptionID != nil && finishingIDs[*price.FinishingOptionID]:
			overrides.Finishing[*price.FinishingOptionID] = price
		}
	}
	return overrides
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var unique []int64
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// ============================================================================
// CUSTOMER PRICES
// ============================================================================

// ListCustomerPrices returns only the currently-valid, active overrides.
func (s *Service) ListCustomerPrices(ctx context.Context, customerID int64) ([]CustomerPrice, error) {
	return s.repo.ListValidCustomerPrices(ctx, customerID, s.now())
}

func (s *Service) CreateCustomerPrice(ctx context.Context, req CreateCustomerPriceRequest) (*CustomerPrice, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	price := CustomerPrice{
		CustomerID:        req.CustomerID,
		SavedPriceID:      req.SavedPriceID,
		PaperOptionID:     req.PaperOptionID,
		PrintPricingID:    req.PrintPricingID,
		FinishingOptionID: req.FinishingOptionID,
		Price:             req.Price,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
	}
	if price.ReferenceCount() > 1 {
		return nil, fmt.Errorf("%w: customer price may reference at most one catalog row", ErrValidation)
	}
	if req.DiscountType == DiscountPercentage && req.DiscountValue > 100 {
		return nil, fmt.Errorf("%w: percentage discount must be within [0,100]", ErrValidation)
	}

	price.ValidFrom = s.now()
	if req.ValidFrom != nil {
		price.ValidFrom = *req.ValidFrom
	}
	price.ValidUntil = req.ValidUntil
	if price.ValidUntil != nil && price.ValidUntil.Before(price.ValidFrom) {
		return nil, fmt.Errorf("%w: valid_until precedes valid_from", ErrValidation)
	}

	id, err := s.repo.CreateCustomerPrice(ctx, price)
	if err != nil {
		return nil, fmt.Errorf("create customer price: %w", err)
	}
	return s.repo.GetCustomerPrice(ctx, id)
}

func (s *Service) UpdateCustomerPrice(ctx context.Context, id int64, req UpdateCustomerPriceRequest) (*CustomerPrice, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.DiscountType != nil && *req.DiscountType == DiscountPercentage && req.DiscountValue != nil && *req.DiscountValue > 100 {
		return nil, fmt.Errorf("%w: percentage discount must be within [0,100]", ErrValidation)
	}

	updates := make(map[string]interface{})
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DiscountType != nil {
		updates["discount_type"] = string(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateCustomerPrice(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetCustomerPrice(ctx, id)
}

func (s *Service) DeleteCustomerPrice(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomerPrice(ctx, id)
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveEstimate(outcome)
	}
}
