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

type staffRepository struct {
	s *Store
}

// NewStaffRepository creates a staff repository backed by s
func NewStaffRepository(s *Store) domainRepo.StaffRepository {
	return &staffRepository{s: s}
}

func (r *staffRepository) unique(staff *entity.Staff) error {
	for id, other := range r.s.staff {
		if id == staff.ID {
			continue
		}
		if other.Username == staff.Username || other.EmployeeID == staff.EmployeeID {
			return domainRepo.ErrDuplicateKey
		}
	}
	return nil
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	defer r.s.lock(ctx)()

	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	if _, ok := r.s.staff[staff.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.unique(staff); err != nil {
		return err
	}
	stamp(&staff.CreatedAt, &staff.UpdatedAt)
	r.s.staff[staff.ID] = *staff
	return nil
}

func (r *staffRepository) find(ctx context.Context, match func(entity.Staff) bool) (*entity.Staff, error) {
	defer r.s.lock(ctx)()

	for _, st := range r.s.staff {
		if !st.DeletedAt.Valid && match(st) {
			return &st, nil
		}
	}
	return nil, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	return r.find(ctx, func(st entity.Staff) bool { return st.ID == id })
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*entity.Staff, error) {
	return r.find(ctx, func(st entity.Staff) bool {
		return st.Username == login || (st.Email != "" && strings.EqualFold(st.Email, login))
	})
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	return r.find(ctx, func(st entity.Staff) bool { return st.Username == username })
}

func (r *staffRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Staff, error) {
	return r.find(ctx, func(st entity.Staff) bool { return st.EmployeeID == employeeID })
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	defer r.s.lock(ctx)()

	if err := r.unique(staff); err != nil {
		return err
	}
	stamp(&staff.CreatedAt, &staff.UpdatedAt)
	r.s.staff[staff.ID] = *staff
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	if st, ok := r.s.staff[id]; ok && !st.DeletedAt.Valid {
		st.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		r.s.staff[id] = st
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Staff, int64, error) {
	defer r.s.lock(ctx)()

	var out []entity.Staff
	for _, st := range r.s.staff {
		if st.DeletedAt.Valid {
			continue
		}
		if search != "" && !contains(st.Username, search) && !contains(st.FirstName, search) &&
			!contains(st.LastName, search) && !contains(st.EmployeeID, search) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })

	return pagination.Slice(out, params), int64(len(out)), nil
}

func (r *staffRepository) CountActive(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for _, st := range r.s.staff {
		if !st.DeletedAt.Valid && st.IsActiveStaff {
			n++
		}
	}
	return n, nil
}
