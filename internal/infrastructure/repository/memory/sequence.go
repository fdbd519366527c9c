package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
)

type sequenceRepository struct {
	s *Store
}

// NewSequenceRepository creates a document sequence repository backed by s
func NewSequenceRepository(s *Store) domainRepo.SequenceRepository {
	return &sequenceRepository{s: s}
}

func (r *sequenceRepository) Codes(ctx context.Context, kind identifier.Kind, prefix string) ([]string, error) {
	defer r.s.lock(ctx)()

	var codes []string
	add := func(code string) {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}

	switch kind {
	case identifier.KindStaff:
		for _, st := range r.s.staff {
			add(st.EmployeeID)
		}
	case identifier.KindCustomer:
		for _, c := range r.s.customers {
			if c.CustomerCode != nil {
				add(*c.CustomerCode)
			}
		}
	case identifier.KindReceipt:
		for _, rc := range r.s.receipts {
			add(rc.ReceiptNumber)
		}
	default:
		return nil, fmt.Errorf("sequence: unknown identifier kind %q", kind)
	}
	return codes, nil
}

func (r *sequenceRepository) Advance(ctx context.Context, key string, floor int64) (int64, error) {
	defer r.s.lock(ctx)()

	value := max(r.s.sequences[key], floor) + 1
	r.s.sequences[key] = value
	return value, nil
}

type idempotencyRepository struct {
	s *Store
}

// NewIdempotencyRepository creates an idempotency repository backed by s
func NewIdempotencyRepository(s *Store) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{s: s}
}

func idempotencyID(key string, staffID uuid.UUID) string {
	return staffID.String() + ":" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	defer r.s.lock(ctx)()

	ikey, ok := r.s.idempotency[idempotencyID(key, staffID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	defer r.s.lock(ctx)()

	id := idempotencyID(ikey.Key, ikey.StaffID)
	if existing, ok := r.s.idempotency[id]; ok {
		ikey.ID = existing.ID
		ikey.CreatedAt = existing.CreatedAt
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	r.s.idempotency[id] = *ikey
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	defer r.s.lock(ctx)()

	for id, ikey := range r.s.idempotency {
		if ikey.IsExpired() {
			delete(r.s.idempotency, id)
		}
	}
	return nil
}
