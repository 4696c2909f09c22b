package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/internal/models"
)

// fakeColl scripts the database surface so the matched-zero and error
// branches can be driven without a live server.
type fakeColl struct {
	findErr        error
	findDocs       []models.Product
	findOneDoc     *models.Product
	findOneErr     error
	insertErr      error
	inserted       []interface{}
	replaceMatched int64
	replaceErr     error
	replaced       interface{}
	deleteCount    int64
	deleteErr      error
	countN         int64
	countErr       error
}

type fakeCursor struct {
	docs []models.Product
	idx  int
}

func (c *fakeCursor) Next(context.Context) bool {
	c.idx++
	return c.idx <= len(c.docs)
}

func (c *fakeCursor) Decode(val interface{}) error {
	*(val.(*models.Product)) = c.docs[c.idx-1]
	return nil
}

func (c *fakeCursor) Err() error                  { return nil }
func (c *fakeCursor) Close(context.Context) error { return nil }

type fakeResult struct {
	doc *models.Product
	err error
}

func (r fakeResult) Decode(val interface{}) error {
	if r.err != nil {
		return r.err
	}
	*(val.(*models.Product)) = *r.doc
	return nil
}

func (f *fakeColl) Find(context.Context, interface{}) (cursor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &fakeCursor{docs: f.findDocs}, nil
}

func (f *fakeColl) FindOne(context.Context, interface{}) decodeResult {
	return fakeResult{doc: f.findOneDoc, err: f.findOneErr}
}

func (f *fakeColl) InsertOne(_ context.Context, doc interface{}) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, doc)
	return nil
}

func (f *fakeColl) ReplaceOne(_ context.Context, _, doc interface{}) (int64, error) {
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	f.replaced = doc
	return f.replaceMatched, nil
}

func (f *fakeColl) DeleteOne(context.Context, interface{}) (int64, error) {
	return f.deleteCount, f.deleteErr
}

func (f *fakeColl) DeleteMany(context.Context, interface{}) (int64, error) {
	return f.deleteCount, f.deleteErr
}

func (f *fakeColl) CountDocuments(context.Context, interface{}) (int64, error) {
	return f.countN, f.countErr
}

func newFakeBackedStore(f *fakeColl) *DualStore[models.Product, *models.Product] {
	s := NewDualStore[models.Product]("products", degradedManager(), testLogger(), cloneProduct, nil)
	s.acquire = func(context.Context) (collection, error) { return f, nil }
	return s
}

func TestUpdateSelfHealsMirrorOnZeroMatch(t *testing.T) {
	// The document is readable but the replace matches nothing, as
	// happens when the record was created while degraded. The write
	// must land in the mirror so it is not lost.
	f := &fakeColl{
		findOneDoc:     &models.Product{ID: "p1", Name: "Figure", Price: 10},
		replaceMatched: 0,
	}
	s := newFakeBackedStore(f)

	updated, err := s.Update(context.Background(), "p1", func(p *models.Product) { p.Price = 25 })
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 25.0, updated.Price)

	healed, ok := s.mirror.Get("p1")
	require.True(t, ok, "zero matched documents mirrors the effect")
	assert.Equal(t, 25.0, healed.Price)
}

func TestUpdateSkipsMirrorWhenDatabaseMatched(t *testing.T) {
	f := &fakeColl{
		findOneDoc:     &models.Product{ID: "p1", Name: "Figure", Price: 10},
		replaceMatched: 1,
	}
	s := newFakeBackedStore(f)

	updated, err := s.Update(context.Background(), "p1", func(p *models.Product) { p.Price = 25 })
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)
	assert.NotNil(t, f.replaced)

	_, ok := s.mirror.Get("p1")
	assert.False(t, ok, "matched writes stay database-only")
}

func TestGetByIDFallsBackToMirrorOnMiss(t *testing.T) {
	f := &fakeColl{findOneErr: mongo.ErrNoDocuments}
	s := newFakeBackedStore(f)
	s.mirror.Put(&models.Product{ID: "p1", Name: "MirrorOnly"})

	got, err := s.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MirrorOnly", got.Name)
}

func TestGetAllDegradesToMirrorOnError(t *testing.T) {
	f := &fakeColl{findErr: errors.New("connection reset")}
	s := newFakeBackedStore(f)
	s.mirror.Put(&models.Product{ID: "p1", Name: "MirrorOnly"})

	list, err := s.GetAll(context.Background())
	require.NoError(t, err, "database errors degrade, never surface")
	require.Len(t, list, 1)
	assert.Equal(t, "MirrorOnly", list[0].Name)
}

func TestAddDegradesToMirrorOnError(t *testing.T) {
	f := &fakeColl{insertErr: errors.New("connection reset")}
	s := newFakeBackedStore(f)

	rec := &models.Product{ID: "p1", Name: "Figure"}
	created, err := s.Add(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec, created)

	_, ok := s.mirror.Get("p1")
	assert.True(t, ok)
}

func TestAddSurfacesDuplicateKey(t *testing.T) {
	f := &fakeColl{insertErr: mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}}
	s := newFakeBackedStore(f)

	_, err := s.Add(context.Background(), &models.Product{ID: "p1", Name: "Figure"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRemoveFallsBackWhenZeroDeleted(t *testing.T) {
	f := &fakeColl{deleteCount: 0}
	s := newFakeBackedStore(f)
	s.mirror.Put(&models.Product{ID: "p1", Name: "MirrorOnly"})

	removed, err := s.Remove(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok := s.mirror.Get("p1")
	assert.False(t, ok)
}

func TestRemoveNotFoundAnywhere(t *testing.T) {
	f := &fakeColl{deleteCount: 0}
	s := newFakeBackedStore(f)

	removed, err := s.Remove(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCountDegradesToMirrorOnError(t *testing.T) {
	f := &fakeColl{countErr: errors.New("connection reset")}
	s := newFakeBackedStore(f)
	s.mirror.Put(&models.Product{ID: "p1"})

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
