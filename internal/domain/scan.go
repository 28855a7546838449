package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scan is a usage event recorded per resolved barcode. Recording is
// best-effort; nothing in the request path depends on these rows.
type Scan struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	GTIN        string     `gorm:"column:gtin;type:varchar(14);not null;index" json:"gtin"`
	CompanyID   *uuid.UUID `gorm:"column:company_id;type:uuid;index" json:"company_id"`
	UserID      *string    `gorm:"column:user_id" json:"user_id"`
	AppPlatform *string    `gorm:"column:app_platform" json:"app_platform"`
	CountryCode *string    `gorm:"column:country_code;type:char(2)" json:"country_code"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (Scan) TableName() string {
	return "scans"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (s *Scan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
