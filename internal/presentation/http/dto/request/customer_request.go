package request

// CreateCustomerRequest represents a customer creation request. A customer
// without a company name is stored under a temporary code.
type CreateCustomerRequest struct {
	CompanyName         string `json:"company_name" binding:"max=200"`
	ContactPerson       string `json:"contact_person" binding:"max=100"`
	Phone               string `json:"phone" binding:"max=20"`
	Email               string `json:"email" binding:"omitempty,email"`
	Address             string `json:"address"`
	CompanyRegistration string `json:"company_registration" binding:"max=100"`
	IsActive            *bool  `json:"is_active"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	CompanyName         *string `json:"company_name" binding:"omitempty,max=200"`
	ContactPerson       *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone               *string `json:"phone" binding:"omitempty,max=20"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Address             *string `json:"address"`
	CompanyRegistration *string `json:"company_registration" binding:"omitempty,max=100"`
	IsActive            *bool   `json:"is_active"`
}
