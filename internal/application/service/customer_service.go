package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	sequences    *SequenceService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, sequences *SequenceService) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, sequences: sequences}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	CompanyName         string
	ContactPerson       string
	Phone               string
	Email               string
	Address             string
	CompanyRegistration string
	IsActive            *bool
}

// CreateCustomer creates a new customer. A customer with a company name is
// given the next CUST code; one without gets a placeholder until a name is set.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		CompanyName:         input.CompanyName,
		ContactPerson:       input.ContactPerson,
		Phone:               input.Phone,
		Email:               input.Email,
		Address:             input.Address,
		CompanyRegistration: input.CompanyRegistration,
		IsActive:            true,
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if customer.CompanyName == "" {
		placeholder := identifier.Placeholder()
		customer.CustomerCode = &placeholder
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	err := s.sequences.Within(ctx, identifier.Customer(), func(ctx context.Context, code string) error {
		customer.ID = uuid.Nil
		customer.CustomerCode = &code
		return s.customerRepo.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateOrGetCustomer returns the customer with the given company name,
// creating it when none exists. created reports which happened.
func (s *CustomerService) CreateOrGetCustomer(ctx context.Context, input *CreateCustomerInput) (customer *entity.Customer, created bool, err error) {
	if input.CompanyName == "" {
		return nil, false, apperror.NewValidationError([]apperror.FieldError{{Field: "company_name", Message: "is required"}})
	}

	existing, err := s.customerRepo.GetByCompanyName(ctx, input.CompanyName)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	customer, err = s.CreateCustomer(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID                  uuid.UUID
	CompanyName         *string
	ContactPerson       *string
	Phone               *string
	Email               *string
	Address             *string
	CompanyRegistration *string
	IsActive            *bool
}

// UpdateCustomer updates a customer. An issued code is never changed; a
// customer still on a placeholder receives a real code once it has a
// company name.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		customer.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		customer.ContactPerson = *input.ContactPerson
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.CompanyRegistration != nil {
		customer.CompanyRegistration = *input.CompanyRegistration
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if customer.HasIssuedCode() || customer.CompanyName == "" {
		if customer.CustomerCode == nil {
			placeholder := identifier.Placeholder()
			customer.CustomerCode = &placeholder
		}
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	previous := customer.CustomerCode
	err = s.sequences.Within(ctx, identifier.Customer(), func(ctx context.Context, code string) error {
		customer.CustomerCode = &code
		return s.customerRepo.Update(ctx, customer)
	})
	if err != nil {
		customer.CustomerCode = previous
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Its code stays reserved.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
