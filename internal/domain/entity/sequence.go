package entity

import "time"

// DocumentSequence is the persisted counter behind one identifier scope.
// LastValue is the highest number handed out; it only grows.
type DocumentSequence struct {
	Scope     string    `gorm:"primaryKey;size:64"`
	LastValue int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}
