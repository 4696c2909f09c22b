package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/images"
	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// Mode selects how rows reconcile against existing products.
type Mode string

const (
	ModeAdd    Mode = "add"
	ModeUpdate Mode = "update"
	ModeUpsert Mode = "upsert"
)

// ParseMode validates a mode string, defaulting to upsert when empty.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdd, ModeUpdate, ModeUpsert:
		return Mode(s), nil
	case "":
		return ModeUpsert, nil
	default:
		return "", fmt.Errorf("invalid mode %q (use add, update or upsert)", s)
	}
}

// Engine applies uploaded catalog rows to the product store. It is the
// only bulk write path into the catalog.
type Engine struct {
	products *store.ProductStore
	uploader images.Uploader
	logger   *logrus.Logger
	log      *logrus.Entry
}

func NewEngine(products *store.ProductStore, uploader images.Uploader, logger *logrus.Logger) *Engine {
	return &Engine{
		products: products,
		uploader: uploader,
		logger:   logger,
		log:      logger.WithField("component", "ingest"),
	}
}

// Reconcile normalizes each row, resolves its image references and
// applies it under the given mode. Row failures are accumulated, never
// fatal; the summary always comes back even under partial failure.
func (e *Engine) Reconcile(ctx context.Context, rows []RawRow, mode Mode, urlMap map[string]string) *models.ImportResult {
	pipeline := images.NewPipeline(urlMap, e.uploader, e.logger)
	result := &models.ImportResult{Errors: []models.ImportRowError{}}

	for _, raw := range rows {
		row, err := catalog.Normalize(raw.Fields, raw.Num)
		if err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: raw.Num, Error: err.Error()})
			continue
		}

		row.Image = pipeline.Resolve(ctx, row.Image)
		row.Images = pipeline.ResolveAll(ctx, row.Images)
		if row.Image == "" && len(row.Images) > 0 {
			row.Image = row.Images[0]
		}

		if err := e.applyRow(ctx, row, mode, result); err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: raw.Num, Error: err.Error()})
		}
	}

	e.log.WithFields(logrus.Fields{
		"mode":    string(mode),
		"rows":    len(rows),
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
	}).Info("Catalog reconciliation finished")
	return result
}

// applyRow resolves the row's identity and performs the mode-specific
// write. Ambiguous name matches resolve to the first record found.
func (e *Engine) applyRow(ctx context.Context, row *catalog.NormalizedRow, mode Mode, result *models.ImportResult) error {
	existing, byID, err := e.resolve(ctx, row)
	if err != nil {
		return err
	}

	switch mode {
	case ModeAdd:
		if existing != nil {
			result.Skipped++
			return nil
		}
		return e.create(ctx, row, result)

	case ModeUpdate:
		if existing != nil {
			return e.update(ctx, existing.ID, row, result)
		}
		// An explicit id with no match is creation intent, not a miss.
		if byID {
			return e.create(ctx, row, result)
		}
		result.Skipped++
		return nil

	default: // upsert
		if existing != nil {
			return e.update(ctx, existing.ID, row, result)
		}
		return e.create(ctx, row, result)
	}
}

// resolve finds the existing product for a row: by id when supplied,
// else by exact name, else by case-insensitive name. byID reports that
// the row carried an explicit id.
func (e *Engine) resolve(ctx context.Context, row *catalog.NormalizedRow) (existing *models.Product, byID bool, err error) {
	if row.ID != "" {
		p, err := e.products.GetByID(ctx, row.ID)
		return p, true, err
	}
	if row.Name == "" {
		return nil, false, nil
	}
	p, err := e.products.GetByName(ctx, row.Name)
	if err != nil {
		return nil, false, err
	}
	if p == nil {
		p, err = e.products.GetByNameFold(ctx, row.Name)
	}
	return p, false, err
}

func (e *Engine) create(ctx context.Context, row *catalog.NormalizedRow, result *models.ImportResult) error {
	product := &models.Product{ID: row.ID}
	applyRowFields(product, row)
	if _, err := e.products.Create(ctx, product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			result.Skipped++
			return nil
		}
		return err
	}
	result.Created++
	return nil
}

func (e *Engine) update(ctx context.Context, id string, row *catalog.NormalizedRow, result *models.ImportResult) error {
	updated, err := e.products.Update(ctx, id, func(p *models.Product) {
		applyRowFields(p, row)
	})
	if err != nil {
		return err
	}
	if updated == nil {
		result.Skipped++
		return nil
	}
	result.Updated++
	return nil
}

// applyRowFields copies the row onto the product, touching only fields
// the row actually supplied.
func applyRowFields(p *models.Product, row *catalog.NormalizedRow) {
	p.Name = row.Name
	p.Category = row.Category
	p.CategorySlug = row.CategorySlug
	if row.Description != "" {
		p.Description = row.Description
	}
	if row.Image != "" {
		p.Image = row.Image
	}
	if len(row.Images) > 0 {
		p.Images = row.Images
	}
	if row.Price != nil {
		p.Price = *row.Price
	}
	if row.OriginalPrice != nil {
		p.OriginalPrice = *row.OriginalPrice
	}
	if row.Rating != nil {
		p.Rating = *row.Rating
	}
	if row.StockQuantity != nil {
		p.StockQuantity = *row.StockQuantity
	}
	if row.Discount != nil {
		p.Discount = *row.Discount
	}
	if row.Reviews != nil {
		p.Reviews = *row.Reviews
	}
	if row.InStock != nil {
		p.InStock = *row.InStock
	} else if row.StockQuantity != nil {
		p.InStock = *row.StockQuantity > 0
	}
	if row.IsNew != nil {
		p.IsNew = *row.IsNew
	}
	if row.IsOnSale != nil {
		p.IsOnSale = *row.IsOnSale
	}
}
