package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Staff is a back-office employee who can sign in
type Staff struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username      string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email         string         `gorm:"size:255;index" json:"email"`
	FirstName     string         `gorm:"size:150" json:"first_name"`
	LastName      string         `gorm:"size:150" json:"last_name"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Role          enum.StaffRole `gorm:"size:20;not null" json:"role"`
	Department    string         `gorm:"size:100" json:"department"`
	Phone         string         `gorm:"size:20" json:"phone"`
	EmployeeID    string         `gorm:"size:20;uniqueIndex;not null" json:"employee_id"`
	IsActiveStaff bool           `gorm:"not null" json:"is_active_staff"`
	LastLoginAt   *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Staff) TableName() string {
	return "staff"
}

// FullName joins first and last name, falling back to the username
func (s *Staff) FullName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	}
	return s.Username
}
