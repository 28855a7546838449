package companies

import (
	"context"
	"testing"

	"pushtohold-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Company{}, &domain.Brand{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, official string, display *string, status domain.DemocracyStatus, country string) *domain.Company {
	c := &domain.Company{
		OfficialName:    official,
		DisplayName:     display,
		DemocracyStatus: status,
	}
	if country != "" {
		c.CountryCode = &country
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func strp(s string) *string { return &s }

func TestList_Filters(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	seed(t, db, "BioFair GmbH", strp("BioFair"), domain.StatusGreen, "DE")
	seed(t, db, "MegaCorp Deutschland AG", strp("MegaCorp"), domain.StatusYellow, "DE")
	seed(t, db, "Austria Snacks GmbH", nil, domain.StatusGreen, "AT")

	result, err := svc.List(context.Background(), Query{Status: "green"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Meta.Total)

	result, err = svc.List(context.Background(), Query{Country: "at"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.Total)

	result, err = svc.List(context.Background(), Query{Search: "megacorp"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.Total)
	items := result.Items.([]ListItem)
	assert.Equal(t, "MegaCorp Deutschland AG", items[0].OfficialName)
}

func TestList_Pagination(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	for _, name := range []string{"Alpha AG", "Beta AG", "Gamma AG"} {
		seed(t, db, name, strp(name), domain.StatusYellow, "DE")
	}

	result, err := svc.List(context.Background(), Query{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.Total)
	assert.EqualValues(t, 2, result.Meta.TotalPages)
	items := result.Items.([]ListItem)
	require.Len(t, items, 1)
	assert.Equal(t, "Gamma AG", items[0].OfficialName)
}

func TestGet_WithBrands(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}
	company := seed(t, db, "BioFair GmbH", strp("BioFair"), domain.StatusGreen, "DE")
	require.NoError(t, db.Create(&domain.Brand{Name: "BioFair", CompanyID: &company.ID}).Error)

	detail, err := svc.Get(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, "BioFair", detail.DisplayName)
	assert.Equal(t, "BioFair GmbH", detail.OfficialName)
	require.Len(t, detail.Brands, 1)
}

func TestGet_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := &Service{DB: db}

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}
