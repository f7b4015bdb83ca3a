package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// ErrValidation aliases the shared sentinel so handlers map it to 400 directly.
var ErrValidation = httpx.ErrValidation

// Service exposes catalog maintenance and read operations. Catalog rows are
// the pricing inputs for every quote, so writes validate the §-style
// invariants up front instead of trusting callers.
type Service struct {
	repo     Repository
	cache    *Cache
	validate *validator.Validate
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
	}
}

// ============================================================================
// PAPER OPTIONS
// ============================================================================

func (s *Service) CreatePaperOption(ctx context.Context, req CreatePaperOptionRequest) (*PaperOption, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	option := PaperOption{
		Name:          req.Name,
		Category:      req.Category,
		Weight:        req.Weight,
		Size:          req.Size,
		Color:         req.Color,
		PricingMethod: req.PricingMethod,
		PricePerSheet: req.PricePerSheet,
		CostPerSheet:  req.CostPerSheet,
		PricePerSqft:  req.PricePerSqft,
		CostPerSqft:   req.CostPerSqft,
		Width:         req.Width,
		Height:        req.Height,
		IsRoll:        req.IsRoll,
		RollLength:    req.RollLength,
	}
	if err := validatePaperGeometry(option); err != nil {
		return nil, err
	}

	id, err := s.repo.CreatePaperOption(ctx, option)
	if err != nil {
		return nil, fmt.Errorf("create paper option: %w", err)
	}
	if err := s.cache.Bump(ctx); err != nil {
		return nil, fmt.Errorf("bump catalog cache: %w", err)
	}
	return s.repo.GetPaperOption(ctx, id)
}

func (s *Service) UpdatePaperOption(ctx context.Context, id int64, req UpdatePaperOptionRequest) (*PaperOption, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.repo.GetPaperOption(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get paper option: %w", err)
	}

	updates := make(map[string]interface{})
	merged := *existing
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.PricingMethod != nil {
		updates["pricing_method"] = string(*req.PricingMethod)
		merged.PricingMethod = *req.PricingMethod
	}
	if req.PricePerSheet != nil {
		updates["price_per_sheet"] = *req.PricePerSheet
	}
	if req.CostPerSheet != nil {
		updates["cost_per_sheet"] = *req.CostPerSheet
	}
	if req.PricePerSqft != nil {
		updates["price_per_sqft"] = *req.PricePerSqft
	}
	if req.CostPerSqft != nil {
		updates["cost_per_sqft"] = *req.CostPerSqft
	}
	if req.Width != nil {
		updates["width"] = *req.Width
		merged.Width = req.Width
	}
	if req.Height != nil {
		updates["height"] = *req.Height
		merged.Height = req.Height
	}
	if req.RollLength != nil {
		updates["roll_length"] = *req.RollLength
		merged.RollLength = req.RollLength
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := validatePaperGeometry(merged); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.repo.UpdatePaperOption(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update paper option: %w", err)
		}
		if err := s.cache.Bump(ctx); err != nil {
			return nil, fmt.Errorf("bump catalog cache: %w", err)
		}
	}
	return s.repo.GetPaperOption(ctx, id)
}

func (s *Service) GetPaperOption(ctx context.Context, id int64) (*PaperOption, error) {
	return s.repo.GetPaperOption(ctx, id)
}

func (s *Service) ListPaperOptions(ctx context.Context, req ListPaperOptionsRequest) ([]PaperOption, error) {
	activePart := "all"
	if req.IsActive != nil {
		activePart = fmt.Sprintf("active=%t", *req.IsActive)
	}
	key, err := s.cache.BuildKey(ctx, "catalog", "paper-options", listKeyPart(req.Category), activePart)
	if err != nil {
		return nil, err
	}
	var options []PaperOption
	err = s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListPaperOptions(ctx, req)
	})
	return options, err
}

func (s *Service) DeletePaperOption(ctx context.Context, id int64) error {
	if err := s.repo.DeletePaperOption(ctx, id); err != nil {
		return err
	}
	return s.cache.Bump(ctx)
}

// validatePaperGeometry enforces the sqft invariant: square-foot pricing is
// meaningless without sheet or roll geometry.
func validatePaperGeometry(option PaperOption) error {
	if option.PricingMethod != PaperPricedPerSqft {
		return nil
	}
	if _, ok := option.AreaSqft(); !ok {
		if option.IsRoll {
			return fmt.Errorf("%w: sqft pricing on roll media requires width and roll_length", ErrValidation)
		}
		return fmt.Errorf("%w: sqft pricing requires width and height", ErrValidation)
	}
	return nil
}

// ============================================================================
// PRINT PRICING
// ============================================================================

func (s *Service) CreatePrintPricing(ctx context.Context, req CreatePrintPricingRequest) (*PrintPricing, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.repo.CreatePrintPricing(ctx, PrintPricing{
		Name:          req.Name,
		PaperSize:     req.PaperSize,
		ColorType:     req.ColorType,
		PricingMethod: req.PricingMethod,
		PricePerSide:  req.PricePerSide,
		CostPerSide:   req.CostPerSide,
		PricePerSqft:  req.PricePerSqft,
		CostPerSqft:   req.CostPerSqft,
		Duplex:        req.Duplex,
	})
	if err != nil {
		return nil, fmt.Errorf("create print pricing: %w", err)
	}
	if err := s.cache.Bump(ctx); err != nil {
		return nil, fmt.Errorf("bump catalog cache: %w", err)
	}
	return s.repo.GetPrintPricing(ctx, id)
}

func (s *Service) ListPrintPricing(ctx context.Context) ([]PrintPricing, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "print-pricing")
	if err != nil {
		return nil, err
	}
	var pricings []PrintPricing
	err = s.cache.FetchJSON(ctx, key, &pricings, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListPrintPricing(ctx)
	})
	return pricings, err
}

func (s *Service) DeletePrintPricing(ctx context.Context, id int64) error {
	if err := s.repo.DeletePrintPricing(ctx, id); err != nil {
		return err
	}
	return s.cache.Bump(ctx)
}

// ============================================================================
// FINISHING OPTIONS
// ============================================================================

func (s *Service) CreateFinishingOption(ctx context.Context, req CreateFinishingOptionRequest) (*FinishingOption, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.repo.CreateFinishingOption(ctx, FinishingOption{
		Name:          req.Name,
		Category:      req.Category,
		BasePrice:     req.BasePrice,
		PricePerPiece: req.PricePerPiece,
		PricePerSqft:  req.PricePerSqft,
		MinimumPrice:  req.MinimumPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("create finishing option: %w", err)
	}
	if err := s.cache.Bump(ctx); err != nil {
		return nil, fmt.Errorf("bump catalog cache: %w", err)
	}
	return s.repo.GetFinishingOption(ctx, id)
}

func (s *Service) ListFinishingOptions(ctx context.Context, req ListFinishingOptionsRequest) ([]FinishingOption, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "finishing-options", listKeyPart(req.Category))
	if err != nil {
		return nil, err
	}
	var options []FinishingOption
	err = s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListFinishingOptions(ctx, req)
	})
	return options, err
}

func (s *Service) ListFinishingCategories(ctx context.Context) ([]string, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "finishing-categories")
	if err != nil {
		return nil, err
	}
	var categories []string
	err = s.cache.FetchJSON(ctx, key, &categories, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListFinishingCategories(ctx)
	})
	return categories, err
}

func (s *Service) DeleteFinishingOption(ctx context.Context, id int64) error {
	if err := s.repo.DeleteFinishingOption(ctx, id); err != nil {
		return err
	}
	return s.cache.Bump(ctx)
}

// ============================================================================
// SAVED PRICES
// ============================================================================

func (s *Service) CreateSavedPrice(ctx context.Context, req CreateSavedPriceRequest) (*SavedPrice, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(req.Materials) > 0 && !req.IsTemplate {
		return nil, fmt.Errorf("%w: materials are only allowed on template entries", ErrValidation)
	}

	price := SavedPrice{
		Name:       req.Name,
		Category:   req.Category,
		CostPrice:  req.CostPrice,
		Price:      req.Price,
		Unit:       req.Unit,
		IsTemplate: req.IsTemplate,
	}
	for i, m := range req.Materials {
		price.Materials = append(price.Materials, SavedPriceMaterial{
			Name:     m.Name,
			Quantity: m.Quantity,
			Unit:     m.Unit,
			Cost:     m.Cost,
			Category: m.Category,
			Position: i + 1,
		})
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.CreateSavedPrice(ctx, price)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create saved price: %w", err)
	}
	if err := s.cache.Bump(ctx); err != nil {
		return nil, fmt.Errorf("bump catalog cache: %w", err)
	}
	return s.repo.GetSavedPrice(ctx, id)
}

func (s *Service) UpdateSavedPrice(ctx context.Context, id int64, req UpdateSavedPriceRequest) (*SavedPrice, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.repo.GetSavedPrice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get saved price: %w", err)
	}
	if req.Materials != nil && !existing.IsTemplate {
		return nil, fmt.Errorf("%w: materials are only allowed on template entries", ErrValidation)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if len(updates) > 0 {
			if err := repo.UpdateSavedPrice(ctx, id, updates); err != nil {
				return err
			}
		}
		if req.Materials != nil {
			materials := make([]SavedPriceMaterial, 0, len(*req.Materials))
			for i, m := range *req.Materials {
				materials = append(materials, SavedPriceMaterial{
					Name:     m.Name,
					Quantity: m.Quantity,
					Unit:     m.Unit,
					Cost:     m.Cost,
					Category: m.Category,
					Position: i + 1,
				})
			}
			if err := repo.ReplaceSavedPriceMaterials(ctx, id, materials); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update saved price: %w", err)
	}
	if err := s.cache.Bump(ctx); err != nil {
		return nil, fmt.Errorf("bump catalog cache: %w", err)
	}
	return s.repo.GetSavedPrice(ctx, id)
}

func (s *Service) GetSavedPrice(ctx context.Context, id int64) (*SavedPrice, error) {
	return s.repo.GetSavedPrice(ctx, id)
}

func (s *Service) ListSavedPrices(ctx context.Context, req ListSavedPricesRequest) ([]SavedPrice, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "saved-prices", listKeyPart(req.Category), fmt.Sprintf("materials=%t", req.IncludeMaterials), fmt.Sprintf("templates=%t", req.TemplatesOnly))
	if err != nil {
		return nil, err
	}
	var prices []SavedPrice
	err = s.cache.FetchJSON(ctx, key, &prices, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListSavedPrices(ctx, req)
	})
	return prices, err
}

// ListMaterials returns the material-classified catalog subset: saved prices
// whose category marks them as raw materials rather than sellable work.
func (s *Service) ListMaterials(ctx context.Context, category *string) ([]SavedPrice, error) {
	materialCategory := "material"
	if category != nil {
		materialCategory = *category
	}
	return s.ListSavedPrices(ctx, ListSavedPricesRequest{Category: &materialCategory})
}

func (s *Service) DeleteSavedPrice(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.DeleteSavedPrice(ctx, id)
	})
	if err != nil {
		return err
	}
	return s.cache.Bump(ctx)
}

func listKeyPart(category *string) string {
	if category == nil {
		return "all"
	}
	return *category
}
