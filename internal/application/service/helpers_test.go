package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/infrastructure/repository/memory"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var may1 = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store      *memory.Store
	transactor repository.Transactor
	staffRepo  repository.StaffRepository
	customers  repository.CustomerRepository
	categories repository.CategoryRepository
	shipments  repository.ShipmentRepository
	receipts   repository.ReceiptRepository
	items      repository.ReceiptItemRepository
	seqRepo    repository.SequenceRepository

	sequences   *SequenceService
	receiptSvc  *ReceiptService
	customerSvc *CustomerService
	staffSvc    *StaffService
	categorySvc *CategoryService
	shipmentSvc *ShipmentService
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithSequences(t, nil, DefaultSequenceAttempts)
}

// newFixtureWithSequences lets a test replace the sequence repository.
func newFixtureWithSequences(t *testing.T, wrap func(repository.SequenceRepository) repository.SequenceRepository, attempts int) *fixture {
	t.Helper()
	log := quietLogger()

	f := &fixture{store: memory.NewStore()}
	f.transactor = memory.NewTransactor(f.store)
	f.staffRepo = memory.NewStaffRepository(f.store)
	f.customers = memory.NewCustomerRepository(f.store)
	f.categories = memory.NewCategoryRepository(f.store)
	f.shipments = memory.NewShipmentRepository(f.store)
	f.receipts = memory.NewReceiptRepository(f.store)
	f.items = memory.NewReceiptItemRepository(f.store)
	f.seqRepo = memory.NewSequenceRepository(f.store)
	if wrap != nil {
		f.seqRepo = wrap(f.seqRepo)
	}

	f.sequences = NewSequenceService(f.seqRepo, f.transactor, attempts, log)
	f.receiptSvc = NewReceiptService(f.receipts, f.items, f.customers, f.categories, f.shipments,
		f.sequences, f.transactor, time.UTC, log).WithClock(func() time.Time { return may1 })
	f.customerSvc = NewCustomerService(f.customers, f.sequences)
	f.staffSvc = NewStaffService(f.staffRepo, f.sequences, log)
	f.categorySvc = NewCategoryService(f.categories, f.items, f.transactor, log)
	f.shipmentSvc = NewShipmentService(f.shipments, f.customers, f.items, f.transactor, log)
	return f
}

func (f *fixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := f.customerSvc.CreateCustomer(context.Background(), &CreateCustomerInput{CompanyName: name})
	if err != nil {
		t.Fatalf("create customer %q: %v", name, err)
	}
	return c
}

func (f *fixture) category(t *testing.T, name, price string) *entity.Category {
	t.Helper()
	c, err := f.categorySvc.CreateCategory(context.Background(), &CreateCategoryInput{Name: name, UnitPrice: dec(price)})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func statusOf(err error) int {
	if err == nil {
		return 0
	}
	return apperror.GetAppError(err).Code
}

func fieldsOf(err error) []string {
	var fields []string
	for _, fe := range apperror.GetAppError(err).Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func (f *fixture) assertTotal(t *testing.T, receiptID uuid.UUID, want string) {
	t.Helper()
	r, err := f.receiptSvc.GetReceipt(context.Background(), receiptID)
	if err != nil {
		t.Fatal(err)
	}
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.TotalPrice)
	}
	if !r.TotalAmount.Equal(dec(want)) {
		t.Errorf("got total %s, want %s", r.TotalAmount, want)
	}
	if !r.TotalAmount.Equal(sum) {
		t.Errorf("total %s does not match items sum %s", r.TotalAmount, sum)
	}
}

// itemsOnAnyReceipt lists the items of every stored receipt.
func (f *fixture) itemsOnAnyReceipt(t *testing.T) []entity.ReceiptItem {
	t.Helper()
	ctx := context.Background()
	list, _, err := f.receipts.List(ctx, &repository.ReceiptFilter{Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100}})
	if err != nil {
		t.Fatal(err)
	}
	var out []entity.ReceiptItem
	for _, r := range list {
		items, err := f.items.ListByReceipt(ctx, r.ID)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, items...)
	}
	return out
}

func pad3(n int) string {
	return fmt.Sprintf("%03d", n)
}

func enumPaid() enum.PaymentStatus {
	return enum.PaymentStatusPaid
}
