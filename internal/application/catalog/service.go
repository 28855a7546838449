package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pushtohold-backend/internal/domain"
	"pushtohold-backend/internal/infrastructure/cache"
	"pushtohold-backend/internal/pkg/gtin"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrProductNotFound means no local or external record resolves the GTIN.
var ErrProductNotFound = errors.New("product not found")

// ErrStoreUnavailable means the local store failed on the critical path.
var ErrStoreUnavailable = errors.New("product store unavailable")

const sourceOpenFoodFacts = "openfoodfacts"

// ScanContext carries optional caller metadata recorded with each scan.
type ScanContext struct {
	UserID      *string
	Platform    *string
	CountryCode *string
}

// ScanBrand is the brand slice of a scan result.
type ScanBrand struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ScanProduct is the product slice of a scan result.
type ScanProduct struct {
	Name     string     `json:"name"`
	ImageURL *string    `json:"imageUrl"`
	Category *string    `json:"category"`
	Brand    *ScanBrand `json:"brand"`
}

// ScanResult is the assembled response for a resolved barcode. This is what
// gets cached under scan:{gtin}.
type ScanResult struct {
	GTIN    string                 `json:"gtin"`
	Product ScanProduct            `json:"product"`
	Company *domain.CompanySummary `json:"company"`
}

// Service orchestrates the resolution pipeline: cache, local store, external
// catalogs, brand matching, result assembly and async scan recording.
type Service struct {
	DB    *gorm.DB
	Cache cache.Store
	Facts *OpenFactsClient
	Index *BrandIndex
}

// Resolve turns a raw scanned barcode into product and company information.
//
// Flow: normalize → cache → local store → external catalogs → assemble,
// cache, record. Returns ErrProductNotFound when nothing resolves anywhere
// and ErrStoreUnavailable when the local store fails on the critical path.
func (s *Service) Resolve(ctx context.Context, raw string, sc ScanContext) (*ScanResult, error) {
	start := time.Now()
	normalized := gtin.Normalize(raw)
	cacheKey := "scan:" + normalized

	if b, ok := s.Cache.Get(ctx, cacheKey); ok {
		var cached ScanResult
		if err := json.Unmarshal(b, &cached); err == nil {
			log.Debug().Str("gtin", normalized).Int64("ms", time.Since(start).Milliseconds()).Msg("Cache hit")
			s.recordScanAsync(normalized, companyIDOf(&cached), sc)
			return &cached, nil
		}
	}

	product, err := s.findLocalProduct(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = s.fetchAndStoreExternal(ctx, normalized)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// Override wins over the brand-derived company; with neither, company is null.
	company := effectiveCompany(product)

	result := assembleResult(product, company)

	if b, err := json.Marshal(result); err == nil {
		s.Cache.Set(ctx, cacheKey, b, cache.ScanTTL)
	}

	s.recordScanAsync(normalized, companyIDOf(result), sc)

	log.Info().Str("gtin", normalized).Str("name", result.Product.Name).Int64("ms", time.Since(start).Milliseconds()).Msg("Scan completed")
	return result, nil
}

// RefreshIndex rebuilds the brand index (admin hook).
func (s *Service) RefreshIndex(ctx context.Context) error {
	return s.Index.Rebuild(ctx)
}

// findLocalProduct loads the product with its brand, companies and override.
// A miss is (nil, nil); a store failure is ErrStoreUnavailable.
func (s *Service) findLocalProduct(ctx context.Context, normalized string) (*domain.Product, error) {
	var product domain.Product
	err := s.DB.WithContext(ctx).
		Preload("Brand").
		Preload("Brand.Company").
		Preload("CompanyOverride").
		Where("gtin = ?", normalized).
		First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &product, nil
}

// fetchAndStoreExternal resolves the GTIN against the external catalogs and
// persists a new product row on success. Returns (nil, nil) when the external
// sources produce nothing.
func (s *Service) fetchAndStoreExternal(ctx context.Context, normalized string) (*domain.Product, error) {
	external := s.Facts.FetchProduct(ctx, normalized)
	if external == nil {
		return nil, nil
	}

	var brand *domain.Brand
	if brandName := ExtractBrandName(external); brandName != "" {
		var err error
		brand, err = s.Index.FindOrCreateBrand(ctx, brandName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if brand.CompanyID != nil {
			log.Info().Str("brand", brandName).Msg("Matched external brand to company")
		}
	}

	now := time.Now()
	product := &domain.Product{
		GTIN:         normalized,
		Name:         external.ProductName,
		SourceSystem: ptr(sourceOpenFoodFacts),
		LastSyncedAt: &now,
	}
	if external.Code != "" {
		product.SourceProductID = &external.Code
	}
	if brand != nil {
		product.BrandID = &brand.ID
		product.Brand = brand
	}
	if category := ExtractCategory(external); category != "" {
		product.Category = &category
	}
	if img := firstNonEmpty(external.ImageFrontURL, external.ImageURL); img != "" {
		product.ImageURL = &img
	}
	if payload, err := json.Marshal(external); err == nil {
		product.SourcePayload = datatypes.JSON(payload)
	}

	if err := s.DB.WithContext(ctx).Omit("Brand").Create(product).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	log.Info().Str("gtin", normalized).Str("name", product.Name).Msg("Stored new product from external catalog")
	return product, nil
}

// effectiveCompany applies the override-wins invariant.
func effectiveCompany(p *domain.Product) *domain.Company {
	if p.CompanyOverride != nil {
		return p.CompanyOverride
	}
	if p.Brand != nil {
		return p.Brand.Company
	}
	return nil
}

func assembleResult(p *domain.Product, company *domain.Company) *ScanResult {
	name := p.Name
	if name == "" {
		name = "Product " + p.GTIN
	}
	result := &ScanResult{
		GTIN: p.GTIN,
		Product: ScanProduct{
			Name:     name,
			ImageURL: p.ImageURL,
			Category: p.Category,
		},
	}
	if p.Brand != nil {
		result.Product.Brand = &ScanBrand{ID: p.Brand.ID, Name: p.Brand.Name}
	}
	if company != nil {
		summary := domain.SummarizeCompany(company)
		result.Company = &summary
	}
	return result
}

func companyIDOf(r *ScanResult) *uuid.UUID {
	if r.Company == nil {
		return nil
	}
	id := r.Company.ID
	return &id
}

// recordScanAsync fires the usage-recording write without awaiting it. The
// caller path never observes its outcome; failures are logged and dropped.
func (s *Service) recordScanAsync(normalized string, companyID *uuid.UUID, sc ScanContext) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scan := &domain.Scan{
			GTIN:        normalized,
			CompanyID:   companyID,
			UserID:      sc.UserID,
			AppPlatform: sc.Platform,
			CountryCode: sc.CountryCode,
		}
		if err := s.DB.WithContext(ctx).Create(scan).Error; err != nil {
			log.Debug().Err(err).Str("gtin", normalized).Msg("Scan recording failed")
		}
	}()
}

func ptr(s string) *string {
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
