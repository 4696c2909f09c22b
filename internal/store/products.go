package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

const productCacheTTL = 5 * time.Minute

// ProductStore is the catalog repository. Reads of single products go
// through an optional Redis cache; every mutation invalidates it.
type ProductStore struct {
	dual  *DualStore[models.Product, *models.Product]
	redis *redis.Client
}

// NewProductStore creates the product store. redisClient may be nil,
// in which case caching is disabled.
func NewProductStore(manager *database.Manager, logger *logrus.Logger, redisClient *redis.Client, seed []*models.Product) *ProductStore {
	return &ProductStore{
		dual:  NewDualStore[models.Product]("products", manager, logger, cloneProduct, seed),
		redis: redisClient,
	}
}

func cloneProduct(p *models.Product) *models.Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	return &c
}

func productCacheKey(id string) string {
	return "storefront:product:" + id
}

func (s *ProductStore) invalidate(ctx context.Context, id string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, productCacheKey(id)).Err()
}

// GetAll returns every product.
func (s *ProductStore) GetAll(ctx context.Context) ([]*models.Product, error) {
	return s.dual.GetAll(ctx)
}

// GetByID returns the product or nil, serving from cache when warm.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, productCacheKey(id)).Result(); err == nil {
			var p models.Product
			if err := json.Unmarshal([]byte(val), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.dual.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redis.Set(ctx, productCacheKey(id), data, productCacheTTL)
		}
	}
	return p, nil
}

// GetByName returns the product with an exact name match, or nil.
func (s *ProductStore) GetByName(ctx context.Context, name string) (*models.Product, error) {
	return s.dual.FindFirst(ctx,
		bson.M{"name": name},
		func(p *models.Product) bool { return p.Name == name })
}

// GetByNameFold returns the first case-insensitive name match, or nil.
func (s *ProductStore) GetByNameFold(ctx context.Context, name string) (*models.Product, error) {
	return s.dual.FindFirst(ctx,
		bson.M{"name": primitive.Regex{Pattern: "^" + escapeRegex(name) + "$", Options: "i"}},
		func(p *models.Product) bool { return strings.EqualFold(p.Name, name) })
}

// GetByCategorySlug returns all products in the category.
func (s *ProductStore) GetByCategorySlug(ctx context.Context, slug string) ([]*models.Product, error) {
	all, err := s.dual.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Product, 0, len(all))
	for _, p := range all {
		if p.CategorySlug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create inserts a product, assigning id, derived fields and
// timestamps. An explicitly set id is honored.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	applyProductInvariants(p)

	created, err := s.dual.Add(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return created, nil
}

// Update applies mutate to the product and re-derives the invariant
// fields. Returns nil when the product does not exist.
func (s *ProductStore) Update(ctx context.Context, id string, mutate func(*models.Product)) (*models.Product, error) {
	updated, err := s.dual.Update(ctx, id, func(p *models.Product) {
		mutate(p)
		p.UpdatedAt = time.Now().UTC()
		applyProductInvariants(p)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Remove deletes the product, reporting whether it existed.
func (s *ProductStore) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.dual.Remove(ctx, id)
	if removed {
		s.invalidate(ctx, id)
	}
	return removed, err
}

// RemoveAll deletes every product and returns the count.
func (s *ProductStore) RemoveAll(ctx context.Context) (int64, error) {
	n, err := s.dual.RemoveWhere(ctx, bson.M{}, func(*models.Product) bool { return true })
	return n, err
}

// RemoveInvalid deletes products with empty name, price <= 0 or
// stock <= 0, and returns the count.
func (s *ProductStore) RemoveInvalid(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": ""},
		bson.M{"price": bson.M{"$lte": 0}},
		bson.M{"stock_quantity": bson.M{"$lte": 0}},
	}}
	return s.dual.RemoveWhere(ctx, filter, func(p *models.Product) bool { return p.Invalid() })
}

// Count returns the number of products.
func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	return s.dual.Count(ctx)
}

// applyProductInvariants re-derives category_slug and keeps the images
// slice consistent with the main image.
func applyProductInvariants(p *models.Product) {
	if p.Category != "" {
		p.CategorySlug = catalog.CategorySlug(p.Category)
	}
	if p.Image != "" && !containsString(p.Images, p.Image) {
		p.Images = append([]string{p.Image}, p.Images...)
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// escapeRegex quotes regex metacharacters in a literal name so it can
// be embedded in a case-insensitive anchor match.
func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SeedProducts returns the baseline catalog inserted into the mirror
// so a degraded process still renders a storefront.
func SeedProducts() []*models.Product {
	now := time.Now().UTC()
	mk := func(name string, price, original float64, category string, stock int) *models.Product {
		return &models.Product{
			ID:            uuid.NewString(),
			Name:          name,
			Price:         price,
			OriginalPrice: original,
			Category:      category,
			CategorySlug:  catalog.CategorySlug(category),
			Description:   fmt.Sprintf("%s from the %s collection.", name, category),
			StockQuantity: stock,
			InStock:       stock > 0,
			Rating:        4.5,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return []*models.Product{
		mk("Naruto Uzumaki Figure", 29.99, 39.99, "Anime Figures", 25),
		mk("Attack on Titan Poster Set", 14.99, 19.99, "Posters", 60),
		mk("Totoro Plushie", 24.99, 0, "Plushies", 40),
		mk("One Piece Strawhat Keychain", 7.99, 9.99, "Keychains", 120),
	}
}
