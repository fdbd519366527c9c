package enum

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"role clerk", StaffRoleClerk.IsValid(), true},
		{"role unknown", StaffRole("driver").IsValid(), false},
		{"shipment in transit", ShipmentStatusInTransit.IsValid(), true},
		{"shipment empty", ShipmentStatus("").IsValid(), false},
		{"payment partial", PaymentStatusPartial.IsValid(), true},
		{"payment refunded", PaymentStatus("refunded").IsValid(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestCanManageStaff(t *testing.T) {
	for _, r := range StaffRoles {
		want := r == StaffRoleAdmin || r == StaffRoleManager
		if got := r.CanManageStaff(); got != want {
			t.Errorf("%s: got %v, want %v", r, got, want)
		}
	}
}
