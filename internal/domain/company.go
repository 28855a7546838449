package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemocracyStatus is the traffic-light rating assigned after review.
type DemocracyStatus string

const (
	StatusGreen  DemocracyStatus = "green"
	StatusYellow DemocracyStatus = "yellow"
	StatusRed    DemocracyStatus = "red"
)

// Company is the authoritative organization record behind brands.
type Company struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OfficialName      string          `gorm:"column:official_name;not null" json:"official_name"`
	DisplayName       *string         `gorm:"column:display_name" json:"display_name"`
	CountryCode       *string         `gorm:"column:country_code;type:char(2)" json:"country_code"`
	Sector            *string         `gorm:"column:sector" json:"sector"`
	SizeBracket       *string         `gorm:"column:size_bracket" json:"size_bracket"`
	WebsiteURL        *string         `gorm:"column:website_url" json:"website_url"`
	DemocracyStatus   DemocracyStatus `gorm:"column:democracy_status;type:varchar(10);not null;default:yellow" json:"democracy_status"`
	DemocracyScore    *float64        `gorm:"column:democracy_score" json:"democracy_score"`
	StatusReasonShort *string         `gorm:"column:status_reason_short" json:"status_reason_short"`
	LastReviewAt      *time.Time      `gorm:"column:last_review_at" json:"last_review_at"`
	Brands            []Brand         `gorm:"foreignKey:CompanyID" json:"brands,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (Company) TableName() string {
	return "companies"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DisplayOrOfficialName falls back to the official name when no display name is set.
func (c *Company) DisplayOrOfficialName() string {
	if c.DisplayName != nil && *c.DisplayName != "" {
		return *c.DisplayName
	}
	return c.OfficialName
}

// CompanySummary is the denormalized reputation projection returned to
// clients. It is rebuilt whole whenever the brand index is refreshed and is
// never mutated field by field.
type CompanySummary struct {
	ID                uuid.UUID       `json:"id"`
	DisplayName       string          `json:"displayName"`
	OfficialName      string          `json:"officialName"`
	DemocracyStatus   DemocracyStatus `json:"democracyStatus"`
	DemocracyScore    *float64        `json:"democracyScore"`
	StatusReasonShort *string         `json:"statusReasonShort"`
	LastReviewAt      *time.Time      `json:"lastReviewAt"`
}

// SummarizeCompany projects the authoritative record into the client shape.
func SummarizeCompany(c *Company) CompanySummary {
	return CompanySummary{
		ID:                c.ID,
		DisplayName:       c.DisplayOrOfficialName(),
		OfficialName:      c.OfficialName,
		DemocracyStatus:   c.DemocracyStatus,
		DemocracyScore:    c.DemocracyScore,
		StatusReasonShort: c.StatusReasonShort,
		LastReviewAt:      c.LastReviewAt,
	}
}
