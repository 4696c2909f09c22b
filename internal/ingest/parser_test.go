package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/models"
)

func TestParseCSVEmbeddedComma(t *testing.T) {
	rows, err := ParseCSV([]byte("name,price\n\"Smith, John\",10\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 2, rows[0].Num)
	assert.Equal(t, "Smith, John", rows[0].Fields["name"])
	assert.Equal(t, "10", rows[0].Fields["price"])
}

func TestParseCSVQuotedNewline(t *testing.T) {
	rows, err := ParseCSV([]byte("name,description\nFigure,\"line one\nline two\"\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "line one\nline two", rows[0].Fields["description"])
}

func TestParseCSVHeaderNormalization(t *testing.T) {
	rows, err := ParseCSV([]byte("Name *,PRICE,Stock Quantity\nFigure,10,5\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Figure", rows[0].Fields["name"])
	assert.Equal(t, "10", rows[0].Fields["price"])
	assert.Equal(t, "5", rows[0].Fields["stock quantity"])
}

func TestParseCSVShortRecordPads(t *testing.T) {
	rows, err := ParseCSV([]byte("name,price,category\nFigure,10\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Fields["category"])
}

func TestParseCSVRowNumbersIncludeHeader(t *testing.T) {
	rows, err := ParseCSV([]byte("name\nfirst\nsecond\nthird\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Num)
	assert.Equal(t, 4, rows[2].Num)
}

func TestFormatFromFilename(t *testing.T) {
	f, err := FormatFromFilename("catalog.CSV")
	require.NoError(t, err)
	assert.Equal(t, models.ImportFormatCSV, f)

	f, err = FormatFromFilename("catalog.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.ImportFormatXLSX, f)

	_, err = FormatFromFilename("catalog.pdf")
	assert.Error(t, err)
}

func TestTemplateCSVRoundTrip(t *testing.T) {
	data, err := TemplateCSV()
	require.NoError(t, err)

	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 1, "template ships one example row")

	assert.Equal(t, "Naruto Uzumaki Figure", rows[0].Fields["name"])
	assert.Equal(t, "29.99", rows[0].Fields["price"])
	assert.Equal(t, "Anime Figures", rows[0].Fields["category"])
}

func TestTemplateXLSXRoundTrip(t *testing.T) {
	data, err := TemplateXLSX()
	require.NoError(t, err)

	rows, err := ParseXLSX(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 2, rows[0].Num)
	assert.Equal(t, "Naruto Uzumaki Figure", rows[0].Fields["name"])
	assert.Equal(t, "Anime Figures", rows[0].Fields["category"])
}
