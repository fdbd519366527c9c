package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"gorm.io/gorm"
)

// advanceSQL bumps a scope counter in one statement. The row lock taken by
// the upsert is held until commit, so concurrent allocations for one scope
// queue behind each other and a rollback hands the number back.
const advanceSQL = `INSERT INTO document_sequences (scope, last_value, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (scope) DO UPDATE
SET last_value = GREATEST(document_sequences.last_value, ?) + 1,
    updated_at = EXCLUDED.updated_at
RETURNING last_value`

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new document sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Codes(ctx context.Context, kind identifier.Kind, prefix string) ([]string, error) {
	var (
		model  any
		column string
	)
	switch kind {
	case identifier.KindStaff:
		model, column = &entity.Staff{}, "employee_id"
	case identifier.KindCustomer:
		model, column = &entity.Customer{}, "customer_code"
	case identifier.KindReceipt:
		model, column = &entity.Receipt{}, "receipt_number"
	default:
		return nil, fmt.Errorf("sequence: unknown identifier kind %q", kind)
	}

	var codes []string
	err := conn(ctx, r.db).Unscoped().Model(model).
		Where(column+" LIKE ?", prefix+"%").
		Pluck(column, &codes).Error
	return codes, err
}

func (r *sequenceRepository) Advance(ctx context.Context, key string, floor int64) (int64, error) {
	now := time.Now()
	var value int64
	err := conn(ctx, r.db).Raw(advanceSQL, key, floor+1, now, now, floor).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("sequence: advance %s: %w", key, err)
	}
	return value, nil
}
