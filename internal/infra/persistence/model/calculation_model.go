package model

import (
	"time"

	"github.com/google/uuid"
)

// CalculationModel mirrors the 'calculations' table. UserID references users.id (UUID).
type CalculationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	A         float64   `gorm:"not null"`
	B         float64   `gorm:"not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	Result    float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CalculationModel) TableName() string {
	return "calculations"
}
