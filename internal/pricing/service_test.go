package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/catalog"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	paperOptions     map[int64]*catalog.PaperOption
	printPricings    []catalog.PrintPricing
	finishingOptions map[int64]*catalog.FinishingOption
	discounts        map[int64]float64
	customerPrices   map[int64]*CustomerPrice
	nextID           int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		paperOptions:     make(map[int64]*catalog.PaperOption),
		finishingOptions: make(map[int64]*catalog.FinishingOption),
		discounts:        make(map[int64]float64),
		customerPrices:   make(map[int64]*CustomerPrice),
		nextID:           1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) GetPaperOption(ctx context.Context, id int64) (*catalog.PaperOption, error) {
	option, ok := m.paperOptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *option
	return &clone, nil
}

func (m *mockRepository) FindPrintPricing(ctx context.Context, paperSize, colorType string) (*catalog.PrintPricing, error) {
	for i := range m.printPricings {
		if m.printPricings[i].PaperSize == paperSize && m.printPricings[i].ColorType == colorType {
			clone := m.printPricings[i]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListFinishingOptionsByIDs(ctx context.Context, ids []int64) ([]catalog.FinishingOption, error) {
	var options []catalog.FinishingOption
	seen := make(map[int64]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if option, ok := m.finishingOptions[id]; ok {
			options = append(options, *option)
		}
	}
	return options, nil
}

func (m *mockRepository) GetCustomerDiscount(ctx context.Context, customerID int64) (float64, error) {
	discount, ok := m.discounts[customerID]
	if !ok {
		return 0, ErrNotFound
	}
	return discount, nil
}

func (m *mockRepository) ListValidCustomerPrices(ctx context.Context, customerID int64, at time.Time) ([]CustomerPrice, error) {
	var prices []CustomerPrice
	for _, price := range m.customerPrices {
		if price.CustomerID == customerID && price.ValidAt(at) {
			prices = append(prices, *price)
		}
	}
	return prices, nil
}

func (m *mockRepository) GetCustomerPrice(ctx context.Context, id int64) (*CustomerPrice, error) {
	price, ok := m.customerPrices[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *price
	return &clone, nil
}

func (m *mockRepository) CreateCustomerPrice(ctx context.Context, price CustomerPrice) (int64, error) {
	price.ID = m.nextID
	m.nextID++
	price.IsActive = true
	m.customerPrices[price.ID] = &price
	return price.ID, nil
}

func (m *mockRepository) UpdateCustomerPrice(ctx context.Context, id int64, updates map[string]interface{}) error {
	price, ok := m.customerPrices[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["price"]; ok {
		price.Price = v.(float64)
	}
	if v, ok := updates["is_active"]; ok {
		price.IsActive = v.(bool)
	}
	return nil
}

func (m *mockRepository) DeleteCustomerPrice(ctx context.Context, id int64) error {
	if _, ok := m.customerPrices[id]; !ok {
		return ErrNotFound
	}
	delete(m.customerPrices, id)
	return nil
}

func newTestRepo() *mockRepository {
	repo := newMockRepository()
	repo.paperOptions[1] = sheetPaper(0.05, 0.02)
	repo.printPricings = []catalog.PrintPricing{
		{ID: 10, PaperSize: "13x19", ColorType: "color", PricingMethod: catalog.PrintPricedPerSide, PricePerSide: 0.10, CostPerSide: 0.04},
		{ID: 11, PaperSize: catalog.AnyPaperSize, ColorType: "bw", PricingMethod: catalog.PrintPricedPerSide, PricePerSide: 0.03, CostPerSide: 0.01},
	}
	repo.finishingOptions[20] = &catalog.FinishingOption{ID: 20, Name: "Cutting", BasePrice: 5, PricePerPiece: 0.05, MinimumPrice: 5, IsActive: true}
	repo.discounts[7] = 10
	return repo
}

// ============================================================================
// ESTIMATE TESTS
// ============================================================================

func TestEstimateExactPrintPricingMatch(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	est, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   1,
		ColorType: "color",
		Sides:     DoubleSided,
		Quantity:  100,
		NUp:       1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, est.Prices.UnitPrice, 1e-9)
	assert.InDelta(t, 25.00, est.Prices.TotalPrice, 1e-9)
}

func TestEstimateAnySizeFallback(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	// No bw row for 13x19 exists, only the any-size fallback.
	est, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   1,
		ColorType: "bw",
		Sides:     SingleSided,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.08, est.Prices.UnitPrice, 1e-9)
}

func TestEstimatePricingNotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   1,
		ColorType: "spot-uv",
		Sides:     SingleSided,
		Quantity:  10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPricingNotFound)
}

func TestEstimateUnknownFinishingOption(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:      1,
		ColorType:    "color",
		Sides:        SingleSided,
		Quantity:     10,
		FinishingIDs: []int64{999},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEstimateUnknownPaper(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   999,
		ColorType: "color",
		Sides:     SingleSided,
		Quantity:  10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEstimateAppliesCustomerDiscount(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	customerID := int64(7)
	est, err := svc.Estimate(context.Background(), EstimateRequest{
		CustomerID: &customerID,
		PaperID:    1,
		ColorType:  "color",
		Sides:      DoubleSided,
		Quantity:   100,
	})
	require.NoError(t, err)
	assert.InDelta(t, 22.50, est.Prices.TotalPrice, 1e-9)
}

func TestEstimateAppliesValidOverride(t *testing.T) {
	repo := newTestRepo()
	repo.discounts[8] = 0
	paperID := int64(1)
	repo.customerPrices[1] = &CustomerPrice{
		ID:            1,
		CustomerID:    8,
		PaperOptionID: &paperID,
		Price:         0.04,
		DiscountType:  DiscountPercentage,
		ValidFrom:     time.Now().Add(-time.Hour),
		IsActive:      true,
	}
	svc := NewService(repo, nil)

	customerID := int64(8)
	est, err := svc.Estimate(context.Background(), EstimateRequest{
		CustomerID: &customerID,
		PaperID:    1,
		ColorType:  "color",
		Sides:      DoubleSided,
		Quantity:   100,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.24, est.Prices.UnitPrice, 1e-9)
}

func TestEstimateIgnoresExpiredOverride(t *testing.T) {
	repo := newTestRepo()
	repo.discounts[8] = 0
	paperID := int64(1)
	expired := time.Now().Add(-time.Hour)
	repo.customerPrices[1] = &CustomerPrice{
		ID:            1,
		CustomerID:    8,
		PaperOptionID: &paperID,
		Price:         0.01,
		DiscountType:  DiscountPercentage,
		ValidFrom:     time.Now().Add(-48 * time.Hour),
		ValidUntil:    &expired,
		IsActive:      true,
	}
	svc := NewService(repo, nil)

	customerID := int64(8)
	est, err := svc.Estimate(context.Background(), EstimateRequest{
		CustomerID: &customerID,
		PaperID:    1,
		ColorType:  "color",
		Sides:      DoubleSided,
		Quantity:   100,
	})
	require.NoError(t, err)
	// Expired override means catalog price, never an error.
	assert.InDelta(t, 0.25, est.Prices.UnitPrice, 1e-9)
}

func TestEstimateDefaultsNUp(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	est, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   1,
		ColorType: "color",
		Sides:     SingleSided,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.15, est.Prices.UnitPrice, 1e-9)
}

func TestEstimateRejectsZeroQuantity(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PaperID:   1,
		ColorType: "color",
		Sides:     SingleSided,
		Quantity:  0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

// ============================================================================
// CUSTOMER PRICE TESTS
// ============================================================================

func TestCreateCustomerPriceSingleReference(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	paperID := int64(1)
	price, err := svc.CreateCustomerPrice(context.Background(), CreateCustomerPriceRequest{
		CustomerID:    7,
		PaperOptionID: &paperID,
		Price:         0.04,
		DiscountType:  DiscountPercentage,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, price.ReferenceCount())
	assert.True(t, price.IsActive)
}

func TestCreateCustomerPriceRejectsMultipleReferences(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	paperID, finishingID := int64(1), int64(20)
	_, err := svc.CreateCustomerPrice(context.Background(), CreateCustomerPriceRequest{
		CustomerID:        7,
		PaperOptionID:     &paperID,
		FinishingOptionID: &finishingID,
		Price:             0.04,
		DiscountType:      DiscountPercentage,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCustomerPriceFullyCustomAllowed(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	price, err := svc.CreateCustomerPrice(context.Background(), CreateCustomerPriceRequest{
		CustomerID:   7,
		Price:        99.00,
		DiscountType: DiscountFixed,
	})
	require.NoError(t, err)
	assert.Zero(t, price.ReferenceCount())
}

func TestCreateCustomerPriceRejectsInvertedWindow(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	from := time.Now()
	until := from.Add(-time.Hour)
	_, err := svc.CreateCustomerPrice(context.Background(), CreateCustomerPriceRequest{
		CustomerID:   7,
		Price:        1,
		DiscountType: DiscountPercentage,
		ValidFrom:    &from,
		ValidUntil:   &until,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListCustomerPricesOnlyValid(t *testing.T) {
	repo := newTestRepo()
	expired := time.Now().Add(-time.Hour)
	repo.customerPrices[1] = &CustomerPrice{
		ID: 1, CustomerID: 7, Price: 1, DiscountType: DiscountPercentage,
		ValidFrom: time.Now().Add(-48 * time.Hour), ValidUntil: &expired, IsActive: true,
	}
	repo.customerPrices[2] = &CustomerPrice{
		ID: 2, CustomerID: 7, Price: 2, DiscountType: DiscountPercentage,
		ValidFrom: time.Now().Add(-time.Hour), IsActive: true,
	}
	repo.customerPrices[3] = &CustomerPrice{
		ID: 3, CustomerID: 7, Price: 3, DiscountType: DiscountPercentage,
		ValidFrom: time.Now().Add(-time.Hour), IsActive: false,
	}
	svc := NewService(repo, nil)

	prices, err := svc.ListCustomerPrices(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, int64(2), prices[0].ID)
}
