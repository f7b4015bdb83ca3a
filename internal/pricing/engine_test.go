package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

func sheetPaper(price, cost float64) *catalog.PaperOption {
	return &catalog.PaperOption{
		ID:            1,
		Name:          "Gloss 150gsm",
		Size:          "13x19",
		PricingMethod: catalog.PaperPricedPerSheet,
		PricePerSheet: price,
		CostPerSheet:  cost,
	}
}

func sidePrint(price, cost float64) *catalog.PrintPricing {
	return &catalog.PrintPricing{
		ID:            10,
		Name:          "Digital Color",
		PaperSize:     "13x19",
		ColorType:     "color",
		PricingMethod: catalog.PrintPricedPerSide,
		PricePerSide:  price,
		CostPerSide:   cost,
	}
}

func TestComputeDoubleSidedSheet(t *testing.T) {
	in := Inputs{
		Paper: sheetPaper(0.05, 0.02),
		Print: sidePrint(0.10, 0.04),
	}
	est, err := Compute(in, Job{Quantity: 100, Sides: DoubleSided, NUp: 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.25, est.Prices.UnitPrice, 1e-9)
	assert.InDelta(t, 25.00, est.Prices.TotalPrice, 1e-9)
	assert.InDelta(t, 0.10, est.Costs.UnitCost, 1e-9)
	assert.InDelta(t, 10.00, est.Costs.TotalCost, 1e-9)
}

func TestComputeFlatDiscount(t *testing.T) {
	in := Inputs{
		Paper:              sheetPaper(0.05, 0.02),
		Print:              sidePrint(0.10, 0.04),
		DiscountPercentage: 10,
	}
	est, err := Compute(in, Job{Quantity: 100, Sides: DoubleSided, NUp: 1})
	require.NoError(t, err)

	assert.InDelta(t, 22.50, est.Prices.TotalPrice, 1e-9)
	// Discounts affect revenue, never cost.
	assert.InDelta(t, 10.00, est.Costs.TotalCost, 1e-9)
	assert.InDelta(t, 12.50, est.Costs.EstimatedProfit, 1e-9)
}

func TestComputeDiscountMonotonic(t *testing.T) {
	previous := 1e18
	for discount := 0.0; discount <= 100; discount += 12.5 {
		in := Inputs{
			Paper:              sheetPaper(0.05, 0.02),
			Print:              sidePrint(0.10, 0.04),
			DiscountPercentage: discount,
		}
		est, err := Compute(in, Job{Quantity: 100, Sides: DoubleSided, NUp: 1})
		require.NoError(t, err)
		assert.LessOrEqual(t, est.Prices.TotalPrice, previous)
		previous = est.Prices.TotalPrice
	}
}

func TestComputeSqftPaper(t *testing.T) {
	width, height := 36.0, 24.0
	in := Inputs{
		Paper: &catalog.PaperOption{
			ID:            2,
			PricingMethod: catalog.PaperPricedPerSqft,
			PricePerSqft:  0.50,
			CostPerSqft:   0.20,
			Width:         &width,
			Height:        &height,
		},
	}
	est, err := Compute(in, Job{Quantity: 1, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	// 36*24/144 = 6 sqft.
	assert.InDelta(t, 3.00, est.Prices.UnitPrice, 1e-9)
	assert.InDelta(t, 1.20, est.Costs.UnitCost, 1e-9)
}

func TestComputeRollPaper(t *testing.T) {
	width, rollLength := 24.0, 2.0
	in := Inputs{
		Paper: &catalog.PaperOption{
			ID:            3,
			PricingMethod: catalog.PaperPricedPerSqft,
			PricePerSqft:  1.00,
			IsRoll:        true,
			Width:         &width,
			RollLength:    &rollLength,
		},
	}
	est, err := Compute(in, Job{Quantity: 1, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	// 24in wide, 2ft pulled: 4 sqft.
	assert.InDelta(t, 4.00, est.Prices.UnitPrice, 1e-9)
}

func TestComputeSqftPaperWithoutGeometry(t *testing.T) {
	in := Inputs{
		Paper: &catalog.PaperOption{ID: 4, PricingMethod: catalog.PaperPricedPerSqft, PricePerSqft: 1},
	}
	_, err := Compute(in, Job{Quantity: 1, Sides: SingleSided, NUp: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestComputeNUpDividesSheetCost(t *testing.T) {
	in := Inputs{
		Paper: sheetPaper(0.10, 0.04),
		Print: sidePrint(0.10, 0.04),
	}
	est, err := Compute(in, Job{Quantity: 100, Sides: SingleSided, NUp: 4})
	require.NoError(t, err)

	assert.InDelta(t, 0.05, est.Prices.UnitPrice, 1e-9)
	assert.InDelta(t, 5.00, est.Prices.TotalPrice, 1e-9)
}

func TestComputeFinishingAboveMinimum(t *testing.T) {
	in := Inputs{
		Paper: sheetPaper(0.05, 0.02),
		Finishing: []catalog.FinishingOption{
			{ID: 20, Name: "Cutting", BasePrice: 5.00, PricePerPiece: 0.05, MinimumPrice: 5.00},
		},
	}
	est, err := Compute(in, Job{Quantity: 3, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	require.Len(t, est.Finishing.Breakdown, 1)
	assert.InDelta(t, 5.15, est.Finishing.Breakdown[0].EffectivePrice, 1e-9)
}

func TestComputeFinishingFlooredAtMinimum(t *testing.T) {
	in := Inputs{
		Paper: sheetPaper(0.05, 0.02),
		Finishing: []catalog.FinishingOption{
			{ID: 21, Name: "Folding", BasePrice: 1.00, PricePerPiece: 0.05, MinimumPrice: 5.00},
		},
	}
	est, err := Compute(in, Job{Quantity: 3, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.00, est.Finishing.TotalPrice, 1e-9)
}

func TestComputeFinishingIsOneTimeCharge(t *testing.T) {
	finishing := []catalog.FinishingOption{
		{ID: 22, Name: "Scoring", BasePrice: 10.00},
	}
	small, err := Compute(Inputs{Paper: sheetPaper(0.05, 0.02), Finishing: finishing}, Job{Quantity: 1, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)
	large, err := Compute(Inputs{Paper: sheetPaper(0.05, 0.02), Finishing: finishing}, Job{Quantity: 500, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	// The base charge does not scale with quantity.
	assert.InDelta(t, small.Finishing.TotalPrice, large.Finishing.TotalPrice, 1e-9)
}

func TestComputeAreaBasedFinishing(t *testing.T) {
	width, height := 36.0, 24.0
	in := Inputs{
		Paper: &catalog.PaperOption{
			ID:            5,
			PricingMethod: catalog.PaperPricedPerSqft,
			PricePerSqft:  0.50,
			Width:         &width,
			Height:        &height,
		},
		Finishing: []catalog.FinishingOption{
			{ID: 23, Name: "Lamination", BasePrice: 2.00, PricePerSqft: 0.25},
		},
	}
	est, err := Compute(in, Job{Quantity: 10, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	// 6 sqft per piece, 10 pieces: 60 sqft at 0.25 plus the base.
	assert.InDelta(t, 17.00, est.Finishing.TotalPrice, 1e-9)
}

func TestComputePaperOverrideReplacesCatalogPrice(t *testing.T) {
	override := &CustomerPrice{
		ID:            1,
		CustomerID:    7,
		Price:         0.04,
		DiscountType:  DiscountPercentage,
		DiscountValue: 0,
		ValidFrom:     time.Now().Add(-time.Hour),
		IsActive:      true,
	}
	in := Inputs{
		Paper:     sheetPaper(0.05, 0.02),
		Print:     sidePrint(0.10, 0.04),
		Overrides: Overrides{Paper: override},
	}
	est, err := Compute(in, Job{Quantity: 100, Sides: DoubleSided, NUp: 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.24, est.Prices.UnitPrice, 1e-9)
	// Cost side ignores overrides.
	assert.InDelta(t, 0.10, est.Costs.UnitCost, 1e-9)
}

func TestComputeOverrideOwnDiscountApplies(t *testing.T) {
	override := &CustomerPrice{
		Price:         0.10,
		DiscountType:  DiscountPercentage,
		DiscountValue: 50,
		IsActive:      true,
	}
	in := Inputs{
		Paper:     sheetPaper(0.20, 0.05),
		Overrides: Overrides{Paper: override},
	}
	est, err := Compute(in, Job{Quantity: 10, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.05, est.Prices.UnitPrice, 1e-9)
}

func TestComputeRejectsBadJob(t *testing.T) {
	in := Inputs{Paper: sheetPaper(0.05, 0.02)}

	_, err := Compute(in, Job{Quantity: 0, Sides: SingleSided, NUp: 1})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = Compute(in, Job{Quantity: 1, Sides: SingleSided, NUp: 0})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = Compute(Inputs{}, Job{Quantity: 1, Sides: SingleSided, NUp: 1})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestComputeProfitMargin(t *testing.T) {
	in := Inputs{
		Paper: sheetPaper(0.10, 0.05),
	}
	est, err := Compute(in, Job{Quantity: 100, Sides: SingleSided, NUp: 1})
	require.NoError(t, err)

	assert.InDelta(t, 10.00, est.Prices.TotalPrice, 1e-9)
	assert.InDelta(t, 5.00, est.Costs.TotalCost, 1e-9)
	assert.InDelta(t, 0.5, est.Costs.ProfitMargin, 1e-9)
}

func TestCustomerPriceValidity(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(24 * time.Hour)

	cp := CustomerPrice{IsActive: true, ValidFrom: now.Add(-time.Hour), ValidUntil: &until}
	assert.True(t, cp.ValidAt(now))
	assert.False(t, cp.ValidAt(now.Add(48*time.Hour)))
	assert.False(t, cp.ValidAt(now.Add(-2*time.Hour)))

	cp.IsActive = false
	assert.False(t, cp.ValidAt(now))

	// Open-ended window.
	openEnded := CustomerPrice{IsActive: true, ValidFrom: now.Add(-time.Hour)}
	assert.True(t, openEnded.ValidAt(now.AddDate(10, 0, 0)))
}

func TestCustomerPriceEffectivePrice(t *testing.T) {
	percentage := CustomerPrice{Price: 100, DiscountType: DiscountPercentage, DiscountValue: 25}
	assert.InDelta(t, 75, percentage.EffectivePrice(), 1e-9)

	fixed := CustomerPrice{Price: 100, DiscountType: DiscountFixed, DiscountValue: 30}
	assert.InDelta(t, 70, fixed.EffectivePrice(), 1e-9)

	// Fixed discounts never push the price below zero.
	floor := CustomerPrice{Price: 10, DiscountType: DiscountFixed, DiscountValue: 50}
	assert.Zero(t, floor.EffectivePrice())
}
