package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"gorm.io/gorm"
)

// Customer is a shipper billed through receipts
type Customer struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName         string         `gorm:"size:200;index" json:"company_name"`
	CustomerCode        *string        `gorm:"size:50;uniqueIndex" json:"customer_code"`
	ContactPerson       string         `gorm:"size:100" json:"contact_person"`
	Phone               string         `gorm:"size:20" json:"phone"`
	Email               string         `gorm:"size:255" json:"email"`
	Address             string         `gorm:"type:text" json:"address"`
	CompanyRegistration string         `gorm:"size:100" json:"company_registration"`
	IsActive            bool           `gorm:"not null" json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// HasIssuedCode reports whether the customer holds a generated CUST code
// rather than nothing or a placeholder.
func (c *Customer) HasIssuedCode() bool {
	return c.CustomerCode != nil && *c.CustomerCode != "" && !identifier.IsPlaceholder(*c.CustomerCode)
}

// Code returns the customer code or "" when none is set
func (c *Customer) Code() string {
	if c.CustomerCode == nil {
		return ""
	}
	return *c.CustomerCode
}
