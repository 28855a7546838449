package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog entry keyed by canonical GTIN. Rows are created on
// first successful external fetch or pre-seeded; the sync path updates them.
type Product struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	GTIN              string         `gorm:"column:gtin;type:varchar(14);not null;uniqueIndex" json:"gtin"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	BrandID           *uuid.UUID     `gorm:"column:brand_id;type:uuid;index" json:"brand_id"`
	Brand             *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category          *string        `gorm:"column:category" json:"category"`
	ImageURL          *string        `gorm:"column:image_url" json:"image_url"`
	CompanyOverrideID *uuid.UUID     `gorm:"column:company_override_id;type:uuid" json:"company_override_id"`
	CompanyOverride   *Company       `gorm:"foreignKey:CompanyOverrideID" json:"company_override,omitempty"`
	SourceSystem      *string        `gorm:"column:source_system" json:"source_system"`
	SourceProductID   *string        `gorm:"column:source_product_id" json:"source_product_id"`
	SourcePayload     datatypes.JSON `gorm:"column:source_payload;type:jsonb" json:"source_payload,omitempty"`
	LastSyncedAt      *time.Time     `gorm:"column:last_synced_at" json:"last_synced_at"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
