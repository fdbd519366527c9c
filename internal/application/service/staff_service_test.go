package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/pkg/utils"
)

func TestCreateStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	staff, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "jdoe", Email: "jdoe@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if staff.EmployeeID != "EMP001" {
		t.Errorf("got %s, want EMP001", staff.EmployeeID)
	}
	if staff.Role != enum.StaffRoleOperator {
		t.Errorf("got role %s, want operator", staff.Role)
	}
	if !utils.CheckPassword(staff.Password, DefaultStaffPassword) {
		t.Error("default password was not set")
	}
}

func TestCreateStaffRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "taken", EmployeeID: "EMP010"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input CreateStaffInput
		want  int
	}{
		{"unknown role", CreateStaffInput{Username: "a", Role: "janitor"}, http.StatusUnprocessableEntity},
		{"username in use", CreateStaffInput{Username: "taken"}, http.StatusConflict},
		{"employee id in use", CreateStaffInput{Username: "b", EmployeeID: "EMP010"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.staffSvc.CreateStaff(ctx, &tt.input)
			if got := statusOf(err); got != tt.want {
				t.Errorf("got status %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateStaffKeepsEmployeeID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	staff, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "jdoe"})
	if err != nil {
		t.Fatal(err)
	}

	manager := enum.StaffRoleManager
	updated, err := f.staffSvc.UpdateStaff(ctx, &UpdateStaffInput{
		ID:        staff.ID,
		FirstName: strPtr("Jane"),
		Role:      &manager,
		Password:  strPtr("s3cret!!"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.EmployeeID != "EMP001" {
		t.Errorf("got %s, want EMP001", updated.EmployeeID)
	}
	if updated.Role != manager || updated.FirstName != "Jane" {
		t.Errorf("got %+v", updated)
	}
	if !utils.CheckPassword(updated.Password, "s3cret!!") {
		t.Error("password was not rehashed")
	}
}

func TestDeletedStaffEmployeeIDIsNotReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	staff, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "jdoe"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.staffSvc.DeleteStaff(ctx, staff.ID); err != nil {
		t.Fatal(err)
	}

	next, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "asmith"})
	if err != nil {
		t.Fatal(err)
	}
	if next.EmployeeID != "EMP002" {
		t.Errorf("got %s, want EMP002", next.EmployeeID)
	}
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		if err := f.staffSvc.EnsureAdmin(ctx, "admin", "adminpass", "admin@example.com"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := f.staffRepo.CountActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d staff, want 1", n)
	}
	admin, _ := f.staffRepo.GetByUsername(ctx, "admin")
	if admin == nil || admin.Role != enum.StaffRoleAdmin {
		t.Errorf("got %+v, want an admin", admin)
	}
}
