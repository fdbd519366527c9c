package request

// CreateStaffRequest represents a staff creation request. EmployeeID is
// generated when omitted.
type CreateStaffRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=150"`
	Email      string `json:"email" binding:"omitempty,email"`
	FirstName  string `json:"first_name" binding:"max=150"`
	LastName   string `json:"last_name" binding:"max=150"`
	Password   string `json:"password" binding:"omitempty,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=admin manager operator clerk"`
	Department string `json:"department" binding:"max=100"`
	Phone      string `json:"phone" binding:"max=20"`
	EmployeeID string `json:"employee_id" binding:"max=20"`
	IsActive   *bool  `json:"is_active_staff"`
}

// UpdateStaffRequest represents a staff update request
type UpdateStaffRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	FirstName  *string `json:"first_name" binding:"omitempty,max=150"`
	LastName   *string `json:"last_name" binding:"omitempty,max=150"`
	Password   *string `json:"password" binding:"omitempty,min=8"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin manager operator clerk"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	IsActive   *bool   `json:"is_active_staff"`
}
