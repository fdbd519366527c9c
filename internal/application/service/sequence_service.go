package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DefaultSequenceAttempts is used when a non-positive attempt count is configured.
const DefaultSequenceAttempts = 5

// SequenceService allocates human-readable codes. Allocation happens inside
// the transaction that persists the owning record, so the number is only
// taken if that record commits.
type SequenceService struct {
	sequenceRepo repository.SequenceRepository
	transactor   repository.Transactor
	maxAttempts  int
	log          logrus.FieldLogger
}

// NewSequenceService creates a new sequence service
func NewSequenceService(
	sequenceRepo repository.SequenceRepository,
	transactor repository.Transactor,
	maxAttempts int,
	log logrus.FieldLogger,
) *SequenceService {
	if maxAttempts < 1 {
		maxAttempts = DefaultSequenceAttempts
	}
	return &SequenceService{
		sequenceRepo: sequenceRepo,
		transactor:   transactor,
		maxAttempts:  maxAttempts,
		log:          log,
	}
}

// Next reserves the next code of scope. ctx must carry a transaction.
func (s *SequenceService) Next(ctx context.Context, scope identifier.Scope) (string, error) {
	codes, err := s.sequenceRepo.Codes(ctx, scope.Kind, scope.Prefix())
	if err != nil {
		return "", fmt.Errorf("scan %s codes: %w", scope, err)
	}

	n, err := s.sequenceRepo.Advance(ctx, scope.Key(), scope.Highest(codes))
	if err != nil {
		return "", err
	}
	return scope.Format(n), nil
}

// Within opens a transaction, reserves the next code of scope and hands it
// to fn, which persists the record carrying it. When fn fails with a
// duplicate key on that code the whole transaction is retried with a fresh
// code. Any other error aborts immediately.
func (s *SequenceService) Within(ctx context.Context, scope identifier.Scope, fn func(ctx context.Context, code string) error) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		var code string
		err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			var err error
			if code, err = s.Next(txCtx, scope); err != nil {
				return err
			}
			return fn(txCtx, code)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}

		taken, lookupErr := s.taken(ctx, scope, code)
		if lookupErr != nil {
			return lookupErr
		}
		if !taken {
			// the collision was on another unique column of the record
			return apperror.NewConflictError("A record with the same unique value already exists")
		}

		s.log.WithFields(logrus.Fields{
			"scope":   scope.Key(),
			"code":    code,
			"attempt": attempt,
		}).Warn("generated identifier already taken, retrying")
	}

	logger.LogError(s.log, "SequenceService", "Within", "identifier allocation exhausted retries",
		logrus.Fields{"scope": scope.Key(), "attempts": s.maxAttempts}, apperror.ErrSequenceExhausted)
	return apperror.ErrSequenceExhausted
}

func (s *SequenceService) taken(ctx context.Context, scope identifier.Scope, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	codes, err := s.sequenceRepo.Codes(ctx, scope.Kind, code)
	if err != nil {
		return false, err
	}
	for _, c := range codes {
		if c == code {
			return true, nil
		}
	}
	return false, nil
}
