package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/sangkips/logistics-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DefaultStaffPassword is assigned when a staff member is created without one.
const DefaultStaffPassword = "changeme123"

// StaffService handles staff-related operations
type StaffService struct {
	staffRepo repository.StaffRepository
	sequences *SequenceService
	log       logrus.FieldLogger
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository, sequences *SequenceService, log logrus.FieldLogger) *StaffService {
	return &StaffService{staffRepo: staffRepo, sequences: sequences, log: log}
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Password   string
	Role       enum.StaffRole
	Department string
	Phone      string
	EmployeeID string
	IsActive   *bool
}

// CreateStaff creates a staff member. An explicit employee ID is stored as
// given; otherwise the next EMP code is allocated.
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	role := input.Role
	if role == "" {
		role = enum.StaffRoleOperator
	}
	if !role.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "role", Message: "is not a valid staff role"}})
	}

	existing, err := s.staffRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	password := input.Password
	if password == "" {
		password = DefaultStaffPassword
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		Username:      input.Username,
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Password:      hashed,
		Role:          role,
		Department:    input.Department,
		Phone:         input.Phone,
		IsActiveStaff: true,
	}
	if input.IsActive != nil {
		staff.IsActiveStaff = *input.IsActive
	}

	if employeeID := strings.TrimSpace(input.EmployeeID); employeeID != "" {
		staff.EmployeeID = employeeID
		if err := s.staffRepo.Create(ctx, staff); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return nil, apperror.NewConflictError("Employee ID or username already in use")
			}
			return nil, err
		}
		return staff, nil
	}

	err = s.sequences.Within(ctx, identifier.Staff(), func(ctx context.Context, code string) error {
		staff.ID = uuid.Nil
		staff.EmployeeID = code
		return s.staffRepo.Create(ctx, staff)
	})
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// EnsureAdmin creates the first admin account when no staff member holds
// username yet. Missing credentials skip seeding.
func (s *StaffService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	existing, err := s.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin, err := s.CreateStaff(ctx, &CreateStaffInput{
		Username:  username,
		Email:     email,
		FirstName: "Admin",
		Password:  password,
		Role:      enum.StaffRoleAdmin,
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"username": admin.Username, "employee_id": admin.EmployeeID}).Info("admin account created")
	return nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

// ListStaff lists staff members
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(staff, pag), nil
}

// UpdateStaffInput represents the update staff input. The employee ID is
// not updatable.
type UpdateStaffInput struct {
	ID         uuid.UUID
	Email      *string
	FirstName  *string
	LastName   *string
	Password   *string
	Role       *enum.StaffRole
	Department *string
	Phone      *string
	IsActive   *bool
}

// UpdateStaff updates a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, input *UpdateStaffInput) (*entity.Staff, error) {
	if input.Role != nil && !input.Role.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "role", Message: "is not a valid staff role"}})
	}

	staff, err := s.GetStaff(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		staff.Email = *input.Email
	}
	if input.FirstName != nil {
		staff.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		staff.LastName = *input.LastName
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		staff.Password = hashed
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.Department != nil {
		staff.Department = *input.Department
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.IsActive != nil {
		staff.IsActiveStaff = *input.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff soft-deletes a staff member. The employee ID stays reserved.
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}
