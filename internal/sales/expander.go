package sales

import (
	"fmt"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// ExpandTemplateMaterials instantiates independent material-consumption
// records from a template's per-unit recipe, scaled by the line-item
// quantity. Re-running with the same quantity yields the same scaled
// quantities; record identities are assigned on insert.
func ExpandTemplateMaterials(template *catalog.SavedPrice, itemQuantity int) ([]QuoteItemMaterial, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: template required", httpx.ErrValidation)
	}
	if !template.IsTemplate {
		return nil, fmt.Errorf("%w: saved price %d is not a template", httpx.ErrValidation, template.ID)
	}
	if itemQuantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", httpx.ErrValidation)
	}

	materials := make([]QuoteItemMaterial, 0, len(template.Materials))
	for i, recipe := range template.Materials {
		materials = append(materials, QuoteItemMaterial{
			Name:         recipe.Name,
			Quantity:     recipe.Quantity * float64(itemQuantity),
			Unit:         recipe.Unit,
			Cost:         recipe.Cost,
			Category:     recipe.Category,
			SavedPriceID: &template.ID,
			Position:     i + 1,
		})
	}
	return materials, nil
}
