package repository

import (
	"context"

	"github.com/sangkips/logistics-api/internal/domain/identifier"
)

// SequenceRepository backs identifier allocation. Both methods must be
// called with a transactional context so a rolled back allocation returns
// its number.
type SequenceRepository interface {
	// Codes lists every stored code of kind that starts with prefix,
	// soft-deleted records included.
	Codes(ctx context.Context, kind identifier.Kind, prefix string) ([]string, error)
	// Advance sets the counter stored under key to max(counter, floor)+1 and
	// returns the new value. The counter row stays locked until the
	// transaction ends.
	Advance(ctx context.Context, key string, floor int64) (int64, error)
}
