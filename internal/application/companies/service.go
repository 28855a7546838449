package companies

import (
	"context"
	"errors"
	"strings"
	"time"

	"pushtohold-backend/internal/domain"
	"pushtohold-backend/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCompanyNotFound is returned when no company exists for the id.
var ErrCompanyNotFound = errors.New("company not found")

// Service provides read access to company records.
type Service struct {
	DB *gorm.DB
}

// Query holds the list filters.
type Query struct {
	Page     int
	PageSize int
	Status   string
	Country  string
	Sector   string
	Search   string
}

// ListItem is the projection returned by List.
type ListItem struct {
	ID              uuid.UUID              `json:"id"`
	OfficialName    string                 `json:"official_name"`
	DisplayName     *string                `json:"display_name"`
	CountryCode     *string                `json:"country_code"`
	Sector          *string                `json:"sector"`
	DemocracyStatus domain.DemocracyStatus `json:"democracy_status"`
	DemocracyScore  *float64               `json:"democracy_score"`
	LastReviewAt    *time.Time             `json:"last_review_at"`
}

// List returns companies matching the filters, paginated and ordered by
// display name.
func (s *Service) List(ctx context.Context, q Query) (*pagination.Result, error) {
	page, pageSize := pagination.Clamp(q.Page, q.PageSize)

	tx := s.DB.WithContext(ctx).Model(&domain.Company{})
	if q.Status != "" {
		tx = tx.Where("democracy_status = ?", q.Status)
	}
	if q.Country != "" {
		tx = tx.Where("country_code = ?", strings.ToUpper(q.Country))
	}
	if q.Sector != "" {
		tx = tx.Where("LOWER(sector) LIKE ?", "%"+strings.ToLower(q.Sector)+"%")
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(display_name) LIKE ? OR LOWER(official_name) LIKE ?", needle, needle)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []ListItem
	if err := tx.
		Select("id, official_name, display_name, country_code, sector, democracy_status, democracy_score, last_review_at").
		Order("display_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []ListItem{}
	}

	result := pagination.New(items, total, page, pageSize)
	return &result, nil
}

// BrandRef is the brand projection on the detail view.
type BrandRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Detail is the full company view.
type Detail struct {
	domain.CompanySummary
	CountryCode *string    `json:"countryCode"`
	Sector      *string    `json:"sector"`
	SizeBracket *string    `json:"sizeBracket"`
	WebsiteURL  *string    `json:"websiteUrl"`
	Brands      []BrandRef `json:"brands"`
}

// Get returns one company with its brands.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	var company domain.Company
	err := s.DB.WithContext(ctx).Preload("Brands").First(&company, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}

	brands := make([]BrandRef, 0, len(company.Brands))
	for _, b := range company.Brands {
		brands = append(brands, BrandRef{ID: b.ID, Name: b.Name})
	}

	return &Detail{
		CompanySummary: domain.SummarizeCompany(&company),
		CountryCode:    company.CountryCode,
		Sector:         company.Sector,
		SizeBracket:    company.SizeBracket,
		WebsiteURL:     company.WebsiteURL,
		Brands:         brands,
	}, nil
}
