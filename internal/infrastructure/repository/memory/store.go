// Package memory keeps every repository in process memory. It enforces the
// same unique and reference constraints as the PostgreSQL schema and backs
// single-binary demos (DB_DRIVER=memory) and the service tests.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
)

type txKey struct{}

// Store holds all tables. A transaction takes the store lock for its whole
// duration, so transactions are serialisable and a failed one is undone by
// restoring the snapshot taken when it began.
type Store struct {
	mu sync.Mutex

	staff       map[uuid.UUID]entity.Staff
	customers   map[uuid.UUID]entity.Customer
	categories  map[uuid.UUID]entity.Category
	shipments   map[uuid.UUID]entity.Shipment
	receipts    map[uuid.UUID]entity.Receipt
	items       map[uuid.UUID]entity.ReceiptItem
	sequences   map[string]int64
	idempotency map[string]entity.IdempotencyKey
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		staff:       map[uuid.UUID]entity.Staff{},
		customers:   map[uuid.UUID]entity.Customer{},
		categories:  map[uuid.UUID]entity.Category{},
		shipments:   map[uuid.UUID]entity.Shipment{},
		receipts:    map[uuid.UUID]entity.Receipt{},
		items:       map[uuid.UUID]entity.ReceiptItem{},
		sequences:   map[string]int64{},
		idempotency: map[string]entity.IdempotencyKey{},
	}
}

type snapshot struct {
	staff       map[uuid.UUID]entity.Staff
	customers   map[uuid.UUID]entity.Customer
	categories  map[uuid.UUID]entity.Category
	shipments   map[uuid.UUID]entity.Shipment
	receipts    map[uuid.UUID]entity.Receipt
	items       map[uuid.UUID]entity.ReceiptItem
	sequences   map[string]int64
	idempotency map[string]entity.IdempotencyKey
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		staff:       maps.Clone(s.staff),
		customers:   maps.Clone(s.customers),
		categories:  maps.Clone(s.categories),
		shipments:   maps.Clone(s.shipments),
		receipts:    maps.Clone(s.receipts),
		items:       maps.Clone(s.items),
		sequences:   maps.Clone(s.sequences),
		idempotency: maps.Clone(s.idempotency),
	}
}

func (s *Store) restore(snap snapshot) {
	s.staff = snap.staff
	s.customers = snap.customers
	s.categories = snap.categories
	s.shipments = snap.shipments
	s.receipts = snap.receipts
	s.items = snap.items
	s.sequences = snap.sequences
	s.idempotency = snap.idempotency
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock guards a single operation. Inside a transaction the lock is already held.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type transactor struct {
	s *Store
}

// NewTransactor returns the store's Transactor
func NewTransactor(s *Store) domainRepo.Transactor {
	return &transactor{s: s}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, t.s)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func contains(field, search string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(search))
}
