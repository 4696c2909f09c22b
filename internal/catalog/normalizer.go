// Package catalog maps heterogeneous spreadsheet rows onto the one
// canonical product schema. Column headers arrive in any of the
// historical generations (camelCase, PascalCase, snake_case, human
// readable); the parser lowercases them, so the alias tables below are
// probed in lowercase, in order, first present non-empty value wins.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldAliases lists the accepted source keys per canonical field.
// Order matters: earlier generations win over looser fallbacks.
var fieldAliases = map[string][]string{
	"id":             {"id", "_id", "product id", "product_id", "productid", "sku"},
	"name":           {"name", "product name", "product_name", "productname", "title", "item name", "item_name"},
	"price":          {"price", "sale price", "sale_price", "saleprice", "selling price", "selling_price", "current price", "current_price"},
	"original_price": {"original price", "original_price", "originalprice", "mrp", "compare price", "compare_price", "compareprice", "old price", "old_price"},
	"image":          {"image", "image url", "image_url", "imageurl", "main image", "main_image", "mainimage", "photo", "picture"},
	"images":         {"images", "additional images", "additional_images", "additionalimages", "gallery", "image urls", "image_urls", "more images", "more_images"},
	"category":       {"category", "product category", "product_category", "productcategory"},
	"description":    {"description", "desc", "details", "product description", "product_description", "productdescription"},
	"stock_quantity": {"stock quantity", "stock_quantity", "stockquantity", "stock", "quantity", "qty", "units"},
	"in_stock":       {"in stock", "in_stock", "instock", "available", "availability"},
	"is_new":         {"is new", "is_new", "isnew", "new arrival", "new_arrival", "newarrival", "new"},
	"is_on_sale":     {"is on sale", "is_on_sale", "isonsale", "on sale", "on_sale", "onsale", "sale"},
	"discount":       {"discount", "discount percent", "discount_percent", "discountpercent", "discount %"},
	"rating":         {"rating", "ratings", "stars", "average rating", "average_rating", "averagerating", "avg rating", "avg_rating"},
	"reviews":        {"reviews", "review count", "review_count", "reviewcount", "num reviews", "num_reviews", "numreviews"},
}

// NormalizedRow is the canonical, ephemeral representation of one
// ingestion row. Pointer fields distinguish "absent or unparsable"
// from "explicitly zero".
type NormalizedRow struct {
	Row           int
	ID            string
	Name          string
	Category      string
	CategorySlug  string
	Description   string
	Image         string
	Images        []string
	Price         *float64
	OriginalPrice *float64
	Rating        *float64
	StockQuantity *int
	Discount      *int
	Reviews       *int
	InStock       *bool
	IsNew         *bool
	IsOnSale      *bool
}

// ValidationError reports a row missing required fields. Row is the
// 1-based file position including the header offset.
type ValidationError struct {
	Row     int
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Normalize maps one raw row onto the canonical schema. rowNum is the
// 1-based file position of the row (data rows start at 2, after the
// header). Failing rows return a *ValidationError and are expected to
// be skipped, not to abort the batch.
func Normalize(fields map[string]string, rowNum int) (*NormalizedRow, error) {
	pick := func(canonical string) string {
		for _, key := range fieldAliases[canonical] {
			if v, ok := fields[key]; ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	var missing []string
	name := pick("name")
	if name == "" {
		missing = append(missing, "name")
	}
	category := pick("category")
	if category == "" {
		missing = append(missing, "category")
	}
	rawPrice := pick("price")
	if rawPrice == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Row: rowNum, Missing: missing}
	}

	row := &NormalizedRow{
		Row:           rowNum,
		ID:            pick("id"),
		Name:          name,
		Category:      category,
		CategorySlug:  CategorySlug(category),
		Description:   pick("description"),
		Image:         pick("image"),
		Images:        splitList(pick("images")),
		Price:         parseFloat(rawPrice),
		OriginalPrice: parseFloat(pick("original_price")),
		Rating:        parseFloat(pick("rating")),
		StockQuantity: parseInt(pick("stock_quantity")),
		Discount:      parseInt(pick("discount")),
		Reviews:       parseInt(pick("reviews")),
		InStock:       parseBool(pick("in_stock")),
		IsNew:         parseBool(pick("is_new")),
		IsOnSale:      parseBool(pick("is_on_sale")),
	}

	// in_stock derives from stock unless explicitly supplied.
	if row.InStock == nil && row.StockQuantity != nil {
		derived := *row.StockQuantity > 0
		row.InStock = &derived
	}
	return row, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseFloat coerces a numeric cell, tolerating currency symbols and
// thousand separators. Unparsable values yield nil, never zero, so
// "absent" stays distinguishable from "explicitly zero".
func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", "₹", "", "€", "", ",", "", " ", "").Replace(value)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(value string) *int {
	f := parseFloat(value)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func parseBool(value string) *bool {
	if value == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		t := true
		return &t
	case "false", "0", "no", "n":
		f := false
		return &f
	}
	return nil
}
