package pricing

import (
	"fmt"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// Overrides holds the resolved customer overrides for one computation. A nil
// entry means the catalog price applies.
type Overrides struct {
	Paper     *CustomerPrice
	Print     *CustomerPrice
	Finishing map[int64]*CustomerPrice
}

// Inputs bundles the catalog rows one estimate reads. All rows must come from
// the same snapshot so the computation is internally consistent.
type Inputs struct {
	Paper     *catalog.PaperOption
	Print     *catalog.PrintPricing
	Finishing []catalog.FinishingOption

	// DiscountPercentage is the customer's flat discount in [0,100]. Zero for
	// walk-in pricing.
	DiscountPercentage float64
	Overrides          Overrides
}

// Compute runs the component cost calculation for one line item.
//
// Paper and print contribute a per-piece price divided by n-up; finishing is a
// one-time job charge. Component overrides replace catalog prices before the
// math runs; the flat customer discount multiplies the final subtotal. The
// cost side mirrors the price side without discounts.
func Compute(in Inputs, job Job) (*Estimate, error) {
	if job.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", httpx.ErrValidation)
	}
	if job.NUp < 1 {
		return nil, fmt.Errorf("%w: n-up must be at least 1", httpx.ErrValidation)
	}
	if in.Paper == nil {
		return nil, fmt.Errorf("%w: paper selection required", httpx.ErrValidation)
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be within [0,100]", httpx.ErrValidation)
	}

	paper, err := paperComponent(*in.Paper, in.Overrides.Paper)
	if err != nil {
		return nil, err
	}

	var printing ComponentCost
	if in.Print != nil {
		printing, err = printComponent(*in.Print, *in.Paper, job.Sides, in.Overrides.Print)
		if err != nil {
			return nil, err
		}
	}

	quantity := float64(job.Quantity)
	nUp := float64(job.NUp)

	// n-up divides the physical-sheet cost across the pieces cut from it.
	combinedUnitPrice := (paper.UnitPrice + printing.UnitPrice) / nUp
	combinedUnitCost := (paper.UnitCost + printing.UnitCost) / nUp

	finishing := FinishingSummary{Breakdown: []FinishingCharge{}}
	for _, option := range in.Finishing {
		charge := finishingCharge(option, *in.Paper, job, in.Overrides.Finishing[option.ID])
		finishing.TotalPrice += charge.EffectivePrice
		finishing.TotalCost += charge.EffectiveCost
		finishing.Breakdown = append(finishing.Breakdown, charge)
	}

	subtotal := combinedUnitPrice*quantity + finishing.TotalPrice
	multiplier := (100 - in.DiscountPercentage) / 100
	totalPrice := subtotal * multiplier
	totalCost := combinedUnitCost*quantity + finishing.TotalCost

	estimate := &Estimate{
		Paper:     paper,
		Printing:  printing,
		Finishing: finishing,
		Prices: PriceSummary{
			UnitPrice:         combinedUnitPrice,
			TotalPrice:        totalPrice,
			UnitWithFinishing: subtotal / quantity,
		},
		Costs: CostSummary{
			UnitCost:        combinedUnitCost,
			TotalCost:       totalCost,
			EstimatedProfit: totalPrice - totalCost,
		},
		Quantity: job.Quantity,
	}
	if totalPrice != 0 {
		estimate.Costs.ProfitMargin = estimate.Costs.EstimatedProfit / totalPrice
	}
	return estimate, nil
}

func paperComponent(paper catalog.PaperOption, override *CustomerPrice) (ComponentCost, error) {
	switch paper.PricingMethod {
	case catalog.PaperPricedPerSheet:
		price := paper.PricePerSheet
		if override != nil {
			price = override.EffectivePrice()
		}
		return ComponentCost{UnitPrice: price, UnitCost: paper.CostPerSheet}, nil
	case catalog.PaperPricedPerSqft:
		area, ok := paper.AreaSqft()
		if !ok {
			return ComponentCost{}, fmt.Errorf("%w: paper option %d lacks geometry for sqft pricing", httpx.ErrValidation, paper.ID)
		}
		rate := paper.PricePerSqft
		if override != nil {
			rate = override.EffectivePrice()
		}
		return ComponentCost{UnitPrice: area * rate, UnitCost: area * paper.CostPerSqft}, nil
	default:
		return ComponentCost{}, fmt.Errorf("%w: unknown paper pricing method %q", httpx.ErrValidation, paper.PricingMethod)
	}
}

func printComponent(pricing catalog.PrintPricing, paper catalog.PaperOption, sides Sides, override *CustomerPrice) (ComponentCost, error) {
	numSides := float64(sides.Count())
	switch pricing.PricingMethod {
	case catalog.PrintPricedPerSide:
		price := pricing.PricePerSide
		if override != nil {
			price = override.EffectivePrice()
		}
		return ComponentCost{
			UnitPrice: price * numSides,
			UnitCost:  pricing.CostPerSide * numSides,
		}, nil
	case catalog.PrintPricedPerSqft:
		area, ok := paper.AreaSqft()
		if !ok {
			return ComponentCost{}, fmt.Errorf("%w: paper option %d lacks geometry for area print pricing", httpx.ErrValidation, paper.ID)
		}
		rate := pricing.PricePerSqft
		if override != nil {
			rate = override.EffectivePrice()
		}
		return ComponentCost{UnitPrice: area * rate, UnitCost: area * pricing.CostPerSqft}, nil
	default:
		return ComponentCost{}, fmt.Errorf("%w: unknown print pricing method %q", httpx.ErrValidation, pricing.PricingMethod)
	}
}

// finishingCharge computes one option's one-time job charge. Piece-based
// options scale with quantity; area-based options scale with the total
// finished area. Both are floored at the option's minimum.
func finishingCharge(option catalog.FinishingOption, paper catalog.PaperOption, job Job, override *CustomerPrice) FinishingCharge {
	basePrice := option.BasePrice
	if override != nil {
		basePrice = override.EffectivePrice()
	}

	quantity := float64(job.Quantity)
	variablePrice := option.PricePerPiece * quantity
	variableCost := option.PricePerPiece * quantity
	if option.PricePerPiece == 0 && option.PricePerSqft > 0 {
		if area, ok := paper.AreaSqft(); ok {
			totalArea := area / float64(job.NUp) * quantity
			variablePrice = option.PricePerSqft * totalArea
			variableCost = variablePrice
		}
	}

	effectivePrice := basePrice + variablePrice
	if effectivePrice < option.MinimumPrice {
		effectivePrice = option.MinimumPrice
	}
	effectiveCost := option.BasePrice + variableCost
	if effectiveCost < option.MinimumPrice {
		effectiveCost = option.MinimumPrice
	}

	return FinishingCharge{
		ID:             option.ID,
		Name:           option.Name,
		EffectivePrice: effectivePrice,
		EffectiveCost:  effectiveCost,
	}
}
