package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return translate(conn(ctx, r.db).Create(staff).Error)
}

func (r *staffRepository) first(ctx context.Context, query string, args ...any) (*entity.Staff, error) {
	var staff entity.Staff
	err := conn(ctx, r.db).Where(query, args...).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*entity.Staff, error) {
	return r.first(ctx, "username = ? OR LOWER(email) = LOWER(?)", login, login)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *staffRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Staff, error) {
	return r.first(ctx, "employee_id = ?", employeeID)
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return translate(conn(ctx, r.db).Save(staff).Error)
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Staff{}, "id = ?", id).Error
}

func (r *staffRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error) {
	var staff []entity.Staff
	var total int64

	query := conn(ctx, r.db).Model(&entity.Staff{})
	if search != "" {
		query = query.Where("username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR employee_id ILIKE ?",
			like(search), like(search), like(search), like(search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("employee_id ASC").
		Find(&staff).Error

	return staff, total, err
}

func (r *staffRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&entity.Staff{}).Where("is_active_staff = ?", true).Count(&n).Error
	return n, err
}
