package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups the per-entity repositories behind a single unit of work.
// Repositories obtained from the Store passed to a Transaction callback share
// that transaction.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db  *gorm.DB
	now func() time.Time
}

// StoreOption customises a GORMStore.
type StoreOption func(*GORMStore)

// WithClock overrides the clock used to stamp created/updated times.
func WithClock(now func() time.Time) StoreOption {
	return func(s *GORMStore) {
		s.now = now
	}
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB, opts ...StoreOption) *GORMStore {
	s := &GORMStore{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GORMStore) Users() UserRepository {
	return &GORMUserRepository{db: s.db, w: s.writer()}
}

func (s *GORMStore) Categories() CategoryRepository {
	return &GORMCategoryRepository{db: s.db, w: s.writer()}
}

func (s *GORMStore) Products() ProductRepository {
	return &GORMProductRepository{db: s.db, w: s.writer()}
}

// Transaction runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (s *GORMStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx, now: s.now})
	})
}

func (s *GORMStore) writer() writer {
	return writer{db: s.db, now: s.now}
}

// stamped is implemented by models embedding models.Timestamps.
type stamped interface {
	MarkCreated(now time.Time)
	MarkUpdated(now time.Time)
}

// writer is the single write path for every table: it stamps audit columns
// in UTC and never cascades into associations.
type writer struct {
	db  *gorm.DB
	now func() time.Time
}

func (w writer) insert(ctx context.Context, v stamped) error {
	v.MarkCreated(w.now().UTC())
	return translate(w.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (w writer) save(ctx context.Context, v stamped) error {
	v.MarkUpdated(w.now().UTC())
	return translate(w.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error)
}
