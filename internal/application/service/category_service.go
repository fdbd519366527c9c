package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/pricing"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CategoryService handles goods category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ReceiptItemRepository
	transactor   repository.Transactor
	log          logrus.FieldLogger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ReceiptItemRepository,
	transactor repository.Transactor,
	log logrus.FieldLogger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		transactor:   transactor,
		log:          log,
	}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name        string
	UnitPrice   decimal.Decimal
	Description string
	IsActive    *bool
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if fe := pricing.CheckMoney("unit_price", input.UnitPrice); fe != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{*fe})
	}

	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		Name:        input.Name,
		UnitPrice:   input.UnitPrice,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, conflict(err, "Category with this name already exists")
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories, optionally only the active ones
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Name        *string
	UnitPrice   *decimal.Decimal
	Description *string
	IsActive    *bool
}

// UpdateCategory updates a category. Items already priced from it keep
// their snapshot.
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	if input.UnitPrice != nil {
		if fe := pricing.CheckMoney("unit_price", *input.UnitPrice); fe != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{*fe})
		}
	}

	category, err := s.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Name = *input.Name
	}
	if input.UnitPrice != nil {
		category.UnitPrice = *input.UnitPrice
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, conflict(err, "Category with this name already exists")
	}
	return category, nil
}

// DeleteCategory removes a category. Items referencing it lose the link but
// keep their unit and total prices.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		detached, err := s.itemRepo.DetachCategory(ctx, id)
		if err != nil {
			return err
		}
		if err := s.categoryRepo.Delete(ctx, id); err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"category_id": id, "detached_items": detached}).Info("category deleted")
		return nil
	})
}

// conflict turns a unique violation into a 409 carrying message
func conflict(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return apperror.NewConflictError(message)
	}
	return err
}
