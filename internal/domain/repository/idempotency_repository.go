package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and staff ID
	GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error)
	// Save stores the response for key, replacing an expired entry
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys
	DeleteExpired(ctx context.Context) error
}
