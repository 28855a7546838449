package catalog

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"pushtohold-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// indexSnapshot is an immutable brand → company mapping plus the company
// summary projection built in the same pass. A rebuild constructs a fresh
// snapshot off to the side and publishes it in one atomic swap; a published
// snapshot is never mutated.
type indexSnapshot struct {
	brands    map[string]uuid.UUID
	order     []string // insertion order of brand keys, for deterministic containment scans
	companies map[uuid.UUID]domain.CompanySummary
}

func newIndexSnapshot() *indexSnapshot {
	return &indexSnapshot{
		brands:    make(map[string]uuid.UUID),
		companies: make(map[uuid.UUID]domain.CompanySummary),
	}
}

// insert registers a brand key unless it is already present. Authoritative
// entries are inserted first, so aliases can only fill gaps.
func (s *indexSnapshot) insert(key string, companyID uuid.UUID) {
	if key == "" {
		return
	}
	if _, exists := s.brands[key]; exists {
		return
	}
	s.brands[key] = companyID
	s.order = append(s.order, key)
}

func (s *indexSnapshot) insertCompany(c *domain.Company) {
	if _, exists := s.companies[c.ID]; exists {
		return
	}
	s.companies[c.ID] = domain.SummarizeCompany(c)
}

// BrandIndex is the in-memory brand-to-company index. Lookups read whatever
// snapshot is currently published and never block on a rebuild.
type BrandIndex struct {
	DB   *gorm.DB
	snap atomic.Pointer[indexSnapshot]
}

// NewBrandIndex creates an index serving an empty snapshot until the first
// successful Rebuild.
func NewBrandIndex(db *gorm.DB) *BrandIndex {
	idx := &BrandIndex{DB: db}
	idx.snap.Store(newIndexSnapshot())
	return idx
}

// Rebuild loads all company-linked brands, merges the static alias table and
// publishes the result atomically. On failure the previous snapshot keeps
// serving traffic.
func (idx *BrandIndex) Rebuild(ctx context.Context) error {
	start := time.Now()

	var brands []domain.Brand
	if err := idx.DB.WithContext(ctx).
		Where("company_id IS NOT NULL").
		Preload("Company").
		Find(&brands).Error; err != nil {
		log.Error().Err(err).Msg("Brand index rebuild failed, keeping previous snapshot")
		return err
	}

	next := newIndexSnapshot()
	for i := range brands {
		b := &brands[i]
		if b.CompanyID == nil || b.Company == nil {
			continue
		}
		next.insert(NormalizeBrandName(b.Name), *b.CompanyID)
		next.insertCompany(b.Company)
	}

	idx.mergeAliases(ctx, next)

	idx.snap.Store(next)
	log.Info().
		Int("brands", len(next.brands)).
		Int64("ms", time.Since(start).Milliseconds()).
		Msg("Brand index rebuilt")
	return nil
}

// mergeAliases resolves each alias table entry against the company table and
// registers its brand variants. Alias resolution is best-effort: a failed
// company lookup skips that entry, it never aborts the build.
func (idx *BrandIndex) mergeAliases(ctx context.Context, next *indexSnapshot) {
	for _, alias := range brandAliases {
		frag := "%" + strings.ToLower(alias.companyFragment) + "%"
		var companies []domain.Company
		if err := idx.DB.WithContext(ctx).
			Where("LOWER(display_name) LIKE ? OR LOWER(official_name) LIKE ?", frag, frag).
			Find(&companies).Error; err != nil {
			log.Warn().Err(err).Str("company", alias.companyFragment).Msg("Alias resolution failed")
			continue
		}
		for i := range companies {
			c := &companies[i]
			for _, name := range alias.brandNames {
				next.insert(NormalizeBrandName(name), c.ID)
			}
			next.insertCompany(c)
		}
	}
}

// Lookup resolves a brand name to a company id: exact match first, then the
// fuzzy heuristics (prefix/suffix containment, then token match).
func (idx *BrandIndex) Lookup(brandName string) (uuid.UUID, bool) {
	snap := idx.snap.Load()
	normalized := NormalizeBrandName(brandName)
	if normalized == "" {
		return uuid.Nil, false
	}
	if id, ok := snap.brands[normalized]; ok {
		return id, true
	}
	return snap.fuzzyMatch(normalized)
}

// fuzzyMatch walks the index keys in insertion order and returns the first
// key that contains the query as a prefix or vice versa (e.g. "coca" matches
// "cocacola"). Failing that, the first query token of length >= 4 with an
// exact entry wins (e.g. "dr oetker ristorante" matches "dr oetker" via
// "oetker").
func (s *indexSnapshot) fuzzyMatch(normalized string) (uuid.UUID, bool) {
	for _, key := range s.order {
		if strings.HasPrefix(key, normalized) || strings.HasPrefix(normalized, key) {
			return s.brands[key], true
		}
	}
	for _, word := range strings.Fields(normalized) {
		if utf8.RuneCountInString(word) < 4 {
			continue
		}
		if id, ok := s.brands[word]; ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// Company reads the summary projection built alongside the index.
func (idx *BrandIndex) Company(id uuid.UUID) (domain.CompanySummary, bool) {
	summary, ok := idx.snap.Load().companies[id]
	return summary, ok
}

// FindOrCreateBrand returns the existing brand row for the name
// (case-insensitive), or creates one linked to whatever company the index
// matches, leaving the link null when nothing matches. Newly created
// mappings enter the index on the next rebuild.
func (idx *BrandIndex) FindOrCreateBrand(ctx context.Context, brandName string) (*domain.Brand, error) {
	var existing domain.Brand
	err := idx.DB.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", brandName).
		Preload("Company").
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	brand := &domain.Brand{Name: brandName}
	if companyID, ok := idx.Lookup(brandName); ok {
		brand.CompanyID = &companyID
	}
	if err := idx.DB.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	if brand.CompanyID != nil {
		if err := idx.DB.WithContext(ctx).Preload("Company").First(brand, "id = ?", brand.ID).Error; err != nil {
			return nil, err
		}
		log.Info().Str("brand", brandName).Str("company_id", brand.CompanyID.String()).Msg("Created brand with company link")
	} else {
		log.Info().Str("brand", brandName).Msg("Created brand without company link")
	}
	return brand, nil
}

// NormalizeBrandName lowercases and strips everything except letters
// (including German umlauts and ß), digits and whitespace, then collapses
// whitespace runs.
func NormalizeBrandName(name string) string {
	lowered := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'ä', r == 'ö', r == 'ü', r == 'ß':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
