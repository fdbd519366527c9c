package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	// GetByLogin matches either the username or the email address
	GetByLogin(ctx context.Context, login string) (*entity.Staff, error)
	GetByUsername(ctx context.Context, username string) (*entity.Staff, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error)
	CountActive(ctx context.Context) (int64, error)
}
