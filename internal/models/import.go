package models

// ImportFormat represents the file format for bulk catalog ingestion
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportRowError reports a failed row. Row is 1-based and includes the
// header offset, so the first data row is row 2.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult is the summary returned by every bulk ingestion run,
// including partial failures.
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportTemplate defines the downloadable import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// ProductImportColumns returns the column definitions for product import
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "name", Description: "Product name", Required: true, Type: "string", Example: "Naruto Uzumaki Figure"},
		{Name: "price", Description: "Sale price", Required: true, Type: "number", Example: "29.99"},
		{Name: "category", Description: "Category name", Required: true, Type: "string", Example: "Anime Figures"},
		{Name: "id", Description: "Existing product id (update/upsert)", Required: false, Type: "string", Example: ""},
		{Name: "original_price", Description: "Pre-discount price", Required: false, Type: "number", Example: "39.99"},
		{Name: "image", Description: "Main image: filename, drive link or URL", Required: false, Type: "string", Example: "naruto.jpg"},
		{Name: "images", Description: "Additional images, comma separated", Required: false, Type: "string", Example: ""},
		{Name: "description", Description: "Product description", Required: false, Type: "string", Example: ""},
		{Name: "stock_quantity", Description: "Units in stock", Required: false, Type: "number", Example: "25"},
		{Name: "in_stock", Description: "Override stock flag (true/false/yes/no/1/0)", Required: false, Type: "boolean", Example: ""},
		{Name: "is_new", Description: "New arrival badge", Required: false, Type: "boolean", Example: "yes"},
		{Name: "is_on_sale", Description: "Sale badge", Required: false, Type: "boolean", Example: ""},
		{Name: "discount", Description: "Discount percent", Required: false, Type: "number", Example: "25"},
		{Name: "rating", Description: "Average rating 0-5", Required: false, Type: "number", Example: "4.5"},
		{Name: "reviews", Description: "Review count", Required: false, Type: "number", Example: "12"},
	}
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "2.0",
		Columns: ProductImportColumns(),
	}
}
