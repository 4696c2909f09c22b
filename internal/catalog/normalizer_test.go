package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAliasProbing(t *testing.T) {
	row, err := Normalize(map[string]string{
		"product name":   "Naruto Figure",
		"selling price":  "29.99",
		"category":       "Anime Figure",
		"stock quantity": "10",
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, "Naruto Figure", row.Name)
	assert.Equal(t, "Anime Figure", row.Category)
	assert.Equal(t, "anime-figures", row.CategorySlug)
	require.NotNil(t, row.Price)
	assert.Equal(t, 29.99, *row.Price)
	require.NotNil(t, row.StockQuantity)
	assert.Equal(t, 10, *row.StockQuantity)
}

func TestNormalizeFirstAliasWins(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":     "Primary",
		"title":    "Secondary",
		"price":    "5",
		"category": "posters",
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Primary", row.Name)
}

func TestNormalizeMissingRequired(t *testing.T) {
	_, err := Normalize(map[string]string{
		"name":     "No Price",
		"category": "posters",
	}, 4)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 4, verr.Row)
	assert.Equal(t, []string{"price"}, verr.Missing)
	assert.Equal(t, "Missing required fields: price", verr.Error())
}

func TestNormalizeZeroPriceIsPresent(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":     "Freebie",
		"price":    "0",
		"category": "stickers",
	}, 2)
	require.NoError(t, err)
	require.NotNil(t, row.Price)
	assert.Equal(t, 0.0, *row.Price)
}

func TestNormalizeCurrencyAndInvalidNumbers(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":           "Figure",
		"price":          "$1,299.50",
		"category":       "figures",
		"original price": "not-a-number",
		"rating":         "4.5",
	}, 2)
	require.NoError(t, err)
	require.NotNil(t, row.Price)
	assert.Equal(t, 1299.50, *row.Price)
	assert.Nil(t, row.OriginalPrice)
	require.NotNil(t, row.Rating)
	assert.Equal(t, 4.5, *row.Rating)
}

func TestNormalizeBooleans(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":     "Figure",
		"price":    "10",
		"category": "figures",
		"is new":   "YES",
		"on sale":  "0",
		"in stock": "maybe",
	}, 2)
	require.NoError(t, err)
	require.NotNil(t, row.IsNew)
	assert.True(t, *row.IsNew)
	require.NotNil(t, row.IsOnSale)
	assert.False(t, *row.IsOnSale)
	assert.Nil(t, row.InStock)
}

func TestNormalizeDerivesInStock(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":     "Figure",
		"price":    "10",
		"category": "figures",
		"stock":    "0",
	}, 2)
	require.NoError(t, err)
	require.NotNil(t, row.InStock)
	assert.False(t, *row.InStock)

	row, err = Normalize(map[string]string{
		"name":     "Figure",
		"price":    "10",
		"category": "figures",
		"stock":    "3",
		"in stock": "no",
	}, 2)
	require.NoError(t, err)
	require.NotNil(t, row.InStock)
	assert.False(t, *row.InStock, "explicit in_stock overrides derivation")
}

func TestNormalizeImagesList(t *testing.T) {
	row, err := Normalize(map[string]string{
		"name":     "Figure",
		"price":    "10",
		"category": "figures",
		"images":   "a.jpg, b.jpg , ,c.jpg",
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, row.Images)
}
