package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

type categoryRepository struct {
	s *Store
}

// NewCategoryRepository creates a goods category repository backed by s
func NewCategoryRepository(s *Store) domainRepo.CategoryRepository {
	return &categoryRepository{s: s}
}

func (r *categoryRepository) unique(category *entity.Category) error {
	for id, other := range r.s.categories {
		if id != category.ID && other.Name == category.Name {
			return domainRepo.ErrDuplicateKey
		}
	}
	return nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	defer r.s.lock(ctx)()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if _, ok := r.s.categories[category.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.unique(category); err != nil {
		return err
	}
	stamp(&category.CreatedAt, &category.UpdatedAt)
	r.s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	defer r.s.lock(ctx)()

	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	defer r.s.lock(ctx)()

	if err := r.unique(category); err != nil {
		return err
	}
	stamp(&category.CreatedAt, &category.UpdatedAt)
	r.s.categories[category.ID] = *category
	return nil
}

// Delete removes the category and clears every item reference to it,
// mirroring ON DELETE SET NULL.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.categories[id]; !ok {
		return nil
	}
	for itemID, item := range r.s.items {
		if item.CategoryID != nil && *item.CategoryID == id {
			item.CategoryID = nil
			r.s.items[itemID] = item
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Category, int64, error) {
	defer r.s.lock(ctx)()

	var out []entity.Category
	for _, c := range r.s.categories {
		if search != "" && !contains(c.Name, search) {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return pagination.Slice(out, params), int64(len(out)), nil
}

type shipmentRepository struct {
	s *Store
}

// NewShipmentRepository creates a shipment repository backed by s
func NewShipmentRepository(s *Store) domainRepo.ShipmentRepository {
	return &shipmentRepository{s: s}
}

func (r *shipmentRepository) check(shipment *entity.Shipment) error {
	if _, ok := r.s.customers[shipment.CustomerID]; !ok {
		return domainRepo.ErrMissingReference
	}
	for id, other := range r.s.shipments {
		if id != shipment.ID && other.TrackingNumber == shipment.TrackingNumber {
			return domainRepo.ErrDuplicateKey
		}
	}
	return nil
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	defer r.s.lock(ctx)()

	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	if _, ok := r.s.shipments[shipment.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.check(shipment); err != nil {
		return err
	}
	stamp(&shipment.CreatedAt, &shipment.UpdatedAt)
	stored := *shipment
	stored.Customer = nil
	r.s.shipments[shipment.ID] = stored
	return nil
}

func (r *shipmentRepository) withCustomer(sh entity.Shipment) *entity.Shipment {
	if c, ok := r.s.customers[sh.CustomerID]; ok && !c.DeletedAt.Valid {
		sh.Customer = &c
	}
	return &sh
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	defer r.s.lock(ctx)()

	sh, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	return r.withCustomer(sh), nil
}

func (r *shipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error) {
	defer r.s.lock(ctx)()

	for _, sh := range r.s.shipments {
		if sh.TrackingNumber == trackingNumber {
			return &sh, nil
		}
	}
	return nil, nil
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	defer r.s.lock(ctx)()

	if err := r.check(shipment); err != nil {
		return err
	}
	stamp(&shipment.CreatedAt, &shipment.UpdatedAt)
	stored := *shipment
	stored.Customer = nil
	r.s.shipments[shipment.ID] = stored
	return nil
}

// Delete removes the shipment and clears every item reference to it.
func (r *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.shipments[id]; !ok {
		return nil
	}
	for itemID, item := range r.s.items {
		if item.ShipmentID != nil && *item.ShipmentID == id {
			item.ShipmentID = nil
			r.s.items[itemID] = item
		}
	}
	delete(r.s.shipments, id)
	return nil
}

func (r *shipmentRepository) List(ctx context.Context, filter *domainRepo.ShipmentFilter) ([]entity.Shipment, int64, error) {
	defer r.s.lock(ctx)()

	var out []entity.Shipment
	for _, sh := range r.s.shipments {
		if filter.Search != "" && !contains(sh.TrackingNumber, filter.Search) &&
			!contains(sh.Origin, filter.Search) && !contains(sh.Destination, filter.Search) {
			continue
		}
		if filter.Status != nil && sh.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && sh.CustomerID != *filter.CustomerID {
			continue
		}
		out = append(out, *r.withCustomer(sh))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return pagination.Slice(out, filter.Pagination), int64(len(out)), nil
}

func (r *shipmentRepository) CountByStatus(ctx context.Context) (map[enum.ShipmentStatus]int64, error) {
	defer r.s.lock(ctx)()

	counts := make(map[enum.ShipmentStatus]int64, len(enum.ShipmentStatuses))
	for _, s := range enum.ShipmentStatuses {
		counts[s] = 0
	}
	for _, sh := range r.s.shipments {
		counts[sh.Status]++
	}
	return counts, nil
}
