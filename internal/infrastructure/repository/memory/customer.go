package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	s *Store
}

// NewCustomerRepository creates a customer repository backed by s
func NewCustomerRepository(s *Store) domainRepo.CustomerRepository {
	return &customerRepository{s: s}
}

func (r *customerRepository) unique(customer *entity.Customer) error {
	if customer.CustomerCode == nil {
		return nil
	}
	for id, other := range r.s.customers {
		if id != customer.ID && other.CustomerCode != nil && *other.CustomerCode == *customer.CustomerCode {
			return domainRepo.ErrDuplicateKey
		}
	}
	return nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	defer r.s.lock(ctx)()

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if _, ok := r.s.customers[customer.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.unique(customer); err != nil {
		return err
	}
	stamp(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.customers[id]
	if !ok || c.DeletedAt.Valid {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.Customer, error) {
	defer r.s.lock(ctx)()

	var found *entity.Customer
	for _, c := range r.s.customers {
		if c.DeletedAt.Valid || !strings.EqualFold(c.CompanyName, companyName) {
			continue
		}
		if found == nil || c.CreatedAt.Before(found.CreatedAt) {
			found = &c
		}
	}
	return found, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	defer r.s.lock(ctx)()

	if err := r.unique(customer); err != nil {
		return err
	}
	stamp(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	if c, ok := r.s.customers[id]; ok && !c.DeletedAt.Valid {
		c.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		r.s.customers[id] = c
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	defer r.s.lock(ctx)()

	var out []entity.Customer
	for _, c := range r.s.customers {
		if c.DeletedAt.Valid {
			continue
		}
		if search != "" && !contains(c.CompanyName, search) && !contains(c.Code(), search) &&
			!contains(c.ContactPerson, search) && !contains(c.Phone, search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyName != out[j].CompanyName {
			return out[i].CompanyName < out[j].CompanyName
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return pagination.Slice(out, params), int64(len(out)), nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for _, c := range r.s.customers {
		if !c.DeletedAt.Valid {
			n++
		}
	}
	return n, nil
}
