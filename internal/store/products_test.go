package store

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// degradedManager has no URI outside production, so every store
// operation runs against the in-process mirror.
func degradedManager() *database.Manager {
	return database.NewManager("", "test", false, testLogger())
}

func newTestProducts(seed []*models.Product) *ProductStore {
	return NewProductStore(degradedManager(), testLogger(), nil, seed)
}

func TestProductCreateDerivesFields(t *testing.T) {
	s := newTestProducts(nil)

	created, err := s.Create(context.Background(), &models.Product{
		Name:          "Naruto Figure",
		Price:         29.99,
		Category:      "Anime Figure",
		Image:         "/uploads/naruto.jpg",
		StockQuantity: 5,
		InStock:       true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "anime-figures", created.CategorySlug)
	assert.Equal(t, []string{"/uploads/naruto.jpg"}, created.Images)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestProductCreateHonorsExplicitID(t *testing.T) {
	s := newTestProducts(nil)

	created, err := s.Create(context.Background(), &models.Product{
		ID: "prod-1", Name: "X", Price: 1, Category: "posters",
	})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", created.ID)

	_, err = s.Create(context.Background(), &models.Product{
		ID: "prod-1", Name: "Y", Price: 1, Category: "posters",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProductGetByName(t *testing.T) {
	s := newTestProducts(nil)
	ctx := context.Background()

	_, err := s.Create(ctx, &models.Product{Name: "Totoro Plushie", Price: 24.99, Category: "plushies"})
	require.NoError(t, err)

	exact, err := s.GetByName(ctx, "Totoro Plushie")
	require.NoError(t, err)
	require.NotNil(t, exact)

	miss, err := s.GetByName(ctx, "totoro plushie")
	require.NoError(t, err)
	assert.Nil(t, miss, "exact match is case sensitive")

	fold, err := s.GetByNameFold(ctx, "TOTORO PLUSHIE")
	require.NoError(t, err)
	require.NotNil(t, fold)
	assert.Equal(t, exact.ID, fold.ID)
}

func TestProductUpdateNotFound(t *testing.T) {
	s := newTestProducts(nil)

	updated, err := s.Update(context.Background(), "missing", func(p *models.Product) { p.Price = 1 })
	require.NoError(t, err)
	assert.Nil(t, updated, "not-found is a nil result, not an error")
}

func TestProductRemoveInvalid(t *testing.T) {
	s := newTestProducts(nil)
	ctx := context.Background()

	_, err := s.Create(ctx, &models.Product{Name: "Valid", Price: 10, Category: "posters", StockQuantity: 3})
	require.NoError(t, err)
	_, err = s.Create(ctx, &models.Product{Name: "Zero Stock", Price: 10, Category: "posters", StockQuantity: 0})
	require.NoError(t, err)

	n, err := s.RemoveInvalid(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductShapeMatchesAcrossBackends(t *testing.T) {
	// Degraded-mode reads return the same record type the database
	// path decodes into, so key sets are identical by construction.
	s := newTestProducts(SeedProducts())

	list, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)

	got, err := s.GetByID(context.Background(), list[0].ID)
	require.NoError(t, err)
	assert.IsType(t, &models.Product{}, got)
	assert.Equal(t, list[0], got)
}

func TestProductRecordsAreIsolatedFromMirror(t *testing.T) {
	s := newTestProducts(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, &models.Product{
		Name: "Figure", Price: 10, Category: "figures", Images: []string{"/uploads/a.jpg"},
	})
	require.NoError(t, err)

	list, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	held := list[0]

	_, err = s.Update(ctx, created.ID, func(p *models.Product) {
		p.Price = 99
		p.Images[0] = "/uploads/b.jpg"
	})
	require.NoError(t, err)

	// The record handed out earlier is a snapshot, not a live view of
	// the mirror's storage.
	assert.Equal(t, 10.0, held.Price)
	assert.Equal(t, "/uploads/a.jpg", held.Images[0])

	// And mutating a returned record never leaks into the store.
	held.Name = "scribbled"
	fresh, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Figure", fresh.Name)
}

func TestProductConcurrentReadsAndUpdates(t *testing.T) {
	s := newTestProducts(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, &models.Product{Name: "Figure", Price: 10, Category: "figures"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := s.Update(ctx, created.ID, func(p *models.Product) { p.Price++ })
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			list, err := s.GetAll(ctx)
			assert.NoError(t, err)
			for _, p := range list {
				_ = p.Price
			}
		}
	}()
	wg.Wait()

	final, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 210.0, final.Price)
}

func TestProductGetAllEmptyIsNotNil(t *testing.T) {
	s := newTestProducts(nil)
	list, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
