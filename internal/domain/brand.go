package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is a consumer-facing product label. The company link is nullable and
// set lazily when matching succeeds.
type Brand struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null;index" json:"name"`
	CompanyID *uuid.UUID `gorm:"column:company_id;type:uuid;index" json:"company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Brand) TableName() string {
	return "brands"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
