package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

func TestCreateCustomerCodes(t *testing.T) {
	f := newFixture(t)

	first := f.customer(t, "Acme")
	second := f.customer(t, "Beta")

	if first.Code() != "CUST001" || second.Code() != "CUST002" {
		t.Errorf("got %s and %s, want CUST001 and CUST002", first.Code(), second.Code())
	}
	if !first.IsActive {
		t.Error("new customers should be active")
	}
}

func TestCustomerPlaceholders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.customerSvc.CreateCustomer(ctx, &CreateCustomerInput{ContactPerson: "Jane"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.customerSvc.CreateCustomer(ctx, &CreateCustomerInput{ContactPerson: "John"})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []string{a.Code(), b.Code()} {
		if !identifier.IsPlaceholder(c) {
			t.Errorf("got %s, want a placeholder", c)
		}
	}
	if a.Code() == b.Code() {
		t.Error("placeholders collided")
	}
	if a.HasIssuedCode() {
		t.Error("placeholder counted as an issued code")
	}

	// placeholders do not consume numbers
	named := f.customer(t, "Acme")
	if named.Code() != "CUST001" {
		t.Errorf("got %s, want CUST001", named.Code())
	}

	name := "Jane Imports"
	upgraded, err := f.customerSvc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: a.ID, CompanyName: &name})
	if err != nil {
		t.Fatal(err)
	}
	if upgraded.Code() != "CUST002" {
		t.Errorf("got %s, want CUST002", upgraded.Code())
	}
}

func TestIssuedCustomerCodeIsStable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	tests := []struct {
		name  string
		input UpdateCustomerInput
	}{
		{"rename", UpdateCustomerInput{CompanyName: strPtr("Acme Holdings")}},
		{"clear name", UpdateCustomerInput{CompanyName: strPtr("")}},
		{"contact only", UpdateCustomerInput{Phone: strPtr("+254700000000")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.ID = acme.ID
			got, err := f.customerSvc.UpdateCustomer(ctx, &in)
			if err != nil {
				t.Fatal(err)
			}
			if got.Code() != "CUST001" {
				t.Errorf("got %s, want CUST001", got.Code())
			}
		})
	}
}

func TestCreateOrGetCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, isNew, err := f.customerSvc.CreateOrGetCustomer(ctx, &CreateCustomerInput{CompanyName: "Acme"})
	if err != nil || !isNew {
		t.Fatalf("got created=%v err=%v, want a new customer", isNew, err)
	}

	again, isNew, err := f.customerSvc.CreateOrGetCustomer(ctx, &CreateCustomerInput{CompanyName: "ACME"})
	if err != nil {
		t.Fatal(err)
	}
	if isNew || again.ID != created.ID {
		t.Errorf("got new=%v id=%s, want existing %s", isNew, again.ID, created.ID)
	}

	_, _, err = f.customerSvc.CreateOrGetCustomer(ctx, &CreateCustomerInput{})
	if statusOf(err) != http.StatusUnprocessableEntity {
		t.Errorf("got status %d, want 422", statusOf(err))
	}
}

func TestDeletedCustomerCodeIsNotReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	if err := f.customerSvc.DeleteCustomer(ctx, acme.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.customerSvc.GetCustomer(ctx, acme.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("got %v, want not found", err)
	}

	next := f.customer(t, "Beta")
	if next.Code() != "CUST002" {
		t.Errorf("got %s, want CUST002", next.Code())
	}
}

func TestListCustomersSearch(t *testing.T) {
	f := newFixture(t)
	f.customer(t, "Acme Freight")
	f.customer(t, "Beta Logistics")
	f.customer(t, "Acme Cargo")

	got, err := f.customerSvc.ListCustomers(context.Background(), pagination.DefaultPagination(), "acme")
	if err != nil {
		t.Fatal(err)
	}
	if got.Pagination.Total != 2 {
		t.Fatalf("got %d customers, want 2", got.Pagination.Total)
	}
	if got.Items[0].CompanyName != "Acme Cargo" {
		t.Errorf("got %s first, want Acme Cargo", got.Items[0].CompanyName)
	}
}

func strPtr(s string) *string {
	return &s
}
