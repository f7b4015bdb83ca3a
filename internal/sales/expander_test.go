package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/platform/httpx"
)

func bannerTemplate() *catalog.SavedPrice {
	return &catalog.SavedPrice{
		ID:         42,
		Name:       "Banner w/ Grommets",
		Category:   "wide-format",
		Price:      45,
		IsTemplate: true,
		Materials: []catalog.SavedPriceMaterial{
			{Name: "Vinyl", Quantity: 2, Unit: "sheets", Cost: 1.5, Category: "media"},
			{Name: "Grommet", Quantity: 4, Unit: "pc", Cost: 0.1, Category: "hardware"},
		},
	}
}

func TestExpandTemplateMaterialsScalesByQuantity(t *testing.T) {
	materials, err := ExpandTemplateMaterials(bannerTemplate(), 25)
	require.NoError(t, err)
	require.Len(t, materials, 2)

	// 2 sheets per unit, 25 units.
	assert.InDelta(t, 50.0, materials[0].Quantity, 1e-9)
	assert.InDelta(t, 100.0, materials[1].Quantity, 1e-9)
	assert.Equal(t, "sheets", materials[0].Unit)
	assert.Equal(t, "media", materials[0].Category)
	require.NotNil(t, materials[0].SavedPriceID)
	assert.Equal(t, int64(42), *materials[0].SavedPriceID)
	assert.Equal(t, 1, materials[0].Position)
	assert.Equal(t, 2, materials[1].Position)
}

func TestExpandTemplateMaterialsIdempotentContent(t *testing.T) {
	first, err := ExpandTemplateMaterials(bannerTemplate(), 10)
	require.NoError(t, err)
	second, err := ExpandTemplateMaterials(bannerTemplate(), 10)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.InDelta(t, first[i].Quantity, second[i].Quantity, 1e-9)
	}
}

func TestExpandTemplateMaterialsRejectsNonTemplate(t *testing.T) {
	plain := &catalog.SavedPrice{ID: 7, Name: "Plain entry"}
	_, err := ExpandTemplateMaterials(plain, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestExpandTemplateMaterialsRejectsZeroQuantity(t *testing.T) {
	_, err := ExpandTemplateMaterials(bannerTemplate(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
