// Package store implements the dual-mode entity repositories: every
// operation runs against MongoDB when the connection manager yields a
// handle and against the in-process mirror otherwise. Both paths
// return identical record shapes, so callers never know which backend
// served them.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/internal/database"
	"storefront-backend/internal/memstore"
)

// Record is the minimal surface the dual store needs from an entity.
type Record interface {
	RecordID() string
	SetRecordID(string)
}

// ErrDuplicate is returned when an insert collides on id or a unique
// field.
var ErrDuplicate = errors.New("record already exists")

// collection is the narrow database surface the dual store uses.
// *mongo.Collection is adapted below; tests substitute fakes to drive
// the matched-zero and error branches.
type collection interface {
	Find(ctx context.Context, filter interface{}) (cursor, error)
	FindOne(ctx context.Context, filter interface{}) decodeResult
	InsertOne(ctx context.Context, doc interface{}) error
	ReplaceOne(ctx context.Context, filter, doc interface{}) (matched int64, err error)
	DeleteOne(ctx context.Context, filter interface{}) (deleted int64, err error)
	DeleteMany(ctx context.Context, filter interface{}) (deleted int64, err error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type cursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

type decodeResult interface {
	Decode(val interface{}) error
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c mongoCollection) Find(ctx context.Context, filter interface{}) (cursor, error) {
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (c mongoCollection) FindOne(ctx context.Context, filter interface{}) decodeResult {
	return c.coll.FindOne(ctx, filter)
}

func (c mongoCollection) InsertOne(ctx context.Context, doc interface{}) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c mongoCollection) ReplaceOne(ctx context.Context, filter, doc interface{}) (int64, error) {
	res, err := c.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c mongoCollection) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c mongoCollection) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c mongoCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

// DualStore is the generic database-or-memory repository. The mirror
// arena is authoritative in degraded mode and self-heals whenever a
// database write matches zero documents, which happens when a record
// was created while degraded and the database came back later.
//
// Records stored in the mirror are never written after insertion and
// never handed out directly: every read and write crosses the arena
// boundary through clone, so concurrent requests cannot share mutable
// state through a returned record.
type DualStore[T any, PT interface {
	*T
	Record
}] struct {
	name    string
	mirror  *memstore.Arena[PT]
	clone   func(PT) PT
	logger  *logrus.Entry
	acquire func(ctx context.Context) (collection, error)
}

// NewDualStore creates a store over the named collection. clone must
// deep-copy a record's mutable fields. Seed records populate the
// mirror only, so a degraded process still serves data.
func NewDualStore[T any, PT interface {
	*T
	Record
}](name string, manager *database.Manager, logger *logrus.Logger, clone func(PT) PT, seed []PT) *DualStore[T, PT] {
	s := &DualStore[T, PT]{
		name:   name,
		mirror: memstore.New(func(rec PT) string { return rec.RecordID() }),
		clone:  clone,
		logger: logger.WithField("store", name),
	}
	s.acquire = func(ctx context.Context) (collection, error) {
		handle, err := manager.Acquire(ctx)
		if err != nil || handle == nil {
			return nil, err
		}
		return mongoCollection{coll: handle.Collection(name)}, nil
	}
	for _, rec := range seed {
		s.mirror.Put(s.clone(rec))
	}
	return s
}

// degrade logs a database failure and signals the caller to fall back
// to the mirror for this invocation only.
func (s *DualStore[T, PT]) degrade(op string, err error) {
	s.logger.WithError(err).WithField("op", op).Warn("Database operation failed, using in-memory mirror")
}

func (s *DualStore[T, PT]) mirrorList() []PT {
	items := s.mirror.List()
	out := make([]PT, len(items))
	for i, rec := range items {
		out[i] = s.clone(rec)
	}
	return out
}

func (s *DualStore[T, PT]) mirrorGet(id string) PT {
	rec, ok := s.mirror.Get(id)
	if !ok {
		return nil
	}
	return s.clone(rec)
}

func (s *DualStore[T, PT]) mirrorFind(pred func(PT) bool) PT {
	rec, ok := s.mirror.Find(pred)
	if !ok {
		return nil
	}
	return s.clone(rec)
}

// GetAll returns every record.
func (s *DualStore[T, PT]) GetAll(ctx context.Context) ([]PT, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return s.mirrorList(), nil
	}

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		s.degrade("getAll", err)
		return s.mirrorList(), nil
	}
	defer cur.Close(ctx)

	var out []PT
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			s.degrade("getAll", err)
			return s.mirrorList(), nil
		}
		out = append(out, PT(&doc))
	}
	if err := cur.Err(); err != nil {
		s.degrade("getAll", err)
		return s.mirrorList(), nil
	}
	if out == nil {
		out = []PT{}
	}
	return out, nil
}

// GetByID returns the record or nil when not found. A database miss
// falls through to the mirror, so records created while degraded stay
// reachable.
func (s *DualStore[T, PT]) GetByID(ctx context.Context, id string) (PT, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return s.mirrorGet(id), nil
	}

	var doc T
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	switch {
	case err == nil:
		return PT(&doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return s.mirrorGet(id), nil
	default:
		s.degrade("getById", err)
		return s.mirrorGet(id), nil
	}
}

// FindFirst returns the first record matching the filter (database
// path) or the predicate (mirror path), or nil. Ambiguous matches
// resolve to the first document found.
func (s *DualStore[T, PT]) FindFirst(ctx context.Context, filter bson.M, pred func(PT) bool) (PT, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return s.mirrorFind(pred), nil
	}

	var doc T
	err = coll.FindOne(ctx, filter).Decode(&doc)
	switch {
	case err == nil:
		return PT(&doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return s.mirrorFind(pred), nil
	default:
		s.degrade("findFirst", err)
		return s.mirrorFind(pred), nil
	}
}

// Add inserts a new record.
func (s *DualStore[T, PT]) Add(ctx context.Context, rec PT) (PT, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		if !s.mirror.Insert(s.clone(rec)) {
			return nil, fmt.Errorf("%w: id %s", ErrDuplicate, rec.RecordID())
		}
		return rec, nil
	}

	if err := coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: id %s", ErrDuplicate, rec.RecordID())
		}
		s.degrade("add", err)
		if !s.mirror.Insert(s.clone(rec)) {
			return nil, fmt.Errorf("%w: id %s", ErrDuplicate, rec.RecordID())
		}
	}
	return rec, nil
}

// Update loads the record, applies mutate, and writes the whole
// document back. Returns nil when the record exists in neither
// backend. Whole-document writeback keeps nested arrays (carousel
// slides) from being partially patched.
func (s *DualStore[T, PT]) Update(ctx context.Context, id string, mutate func(PT)) (PT, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return s.mirrorUpdate(id, mutate), nil
	}

	var doc T
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Record may live only in the mirror (created while degraded).
		return s.mirrorUpdate(id, mutate), nil
	case err != nil:
		s.degrade("update", err)
		return s.mirrorUpdate(id, mutate), nil
	}

	rec := PT(&doc)
	mutate(rec)

	matched, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, rec)
	if err != nil {
		s.degrade("update", err)
		s.mirror.Put(s.clone(rec))
		return rec, nil
	}
	if matched == 0 {
		s.mirror.Put(s.clone(rec))
	}
	return rec, nil
}

// mirrorUpdate mutates a clone and replaces the stored record with it,
// so a record already handed to another request is never written.
func (s *DualStore[T, PT]) mirrorUpdate(id string, mutate func(PT)) PT {
	rec, ok := s.mirror.Get(id)
	if !ok {
		return nil
	}
	next := s.clone(rec)
	mutate(next)
	s.mirror.Put(next)
	return next
}

// Remove deletes the record, reporting whether either backend held it.
func (s *DualStore[T, PT]) Remove(ctx context.Context, id string) (bool, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	if coll == nil {
		return s.mirror.Delete(id), nil
	}

	deleted, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		s.degrade("remove", err)
		return s.mirror.Delete(id), nil
	}
	if deleted == 0 {
		return s.mirror.Delete(id), nil
	}
	return true, nil
}

// RemoveWhere bulk-deletes records matching the filter (database) or
// predicate (mirror) and returns the count removed.
func (s *DualStore[T, PT]) RemoveWhere(ctx context.Context, filter bson.M, pred func(PT) bool) (int64, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	if coll == nil {
		return int64(s.mirror.DeleteWhere(pred)), nil
	}

	deleted, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		s.degrade("removeWhere", err)
		return int64(s.mirror.DeleteWhere(pred)), nil
	}
	if deleted == 0 {
		return int64(s.mirror.DeleteWhere(pred)), nil
	}
	return deleted, nil
}

// Count returns the number of records.
func (s *DualStore[T, PT]) Count(ctx context.Context) (int64, error) {
	coll, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	if coll == nil {
		return int64(s.mirror.Len()), nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		s.degrade("count", err)
		return int64(s.mirror.Len()), nil
	}
	return n, nil
}
