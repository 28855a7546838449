package companies

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	companysvc "pushtohold-backend/internal/application/companies"
	"pushtohold-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompaniesTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Company{}, &domain.Brand{}))

	h := &Handlers{Service: &companysvc.Service{DB: db}}
	app := fiber.New()
	group := app.Group("/api/v1/companies")
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	return app, db
}

func seedCompanies(t *testing.T, db *gorm.DB) *domain.Company {
	green := "BioFair"
	countryDE := "DE"
	c1 := &domain.Company{OfficialName: "BioFair GmbH", DisplayName: &green, CountryCode: &countryDE, DemocracyStatus: domain.StatusGreen}
	require.NoError(t, db.Create(c1).Error)
	c2 := &domain.Company{OfficialName: "Konflikt Industries GmbH", CountryCode: &countryDE, DemocracyStatus: domain.StatusRed}
	require.NoError(t, db.Create(c2).Error)
	return c1
}

func TestListCompanies(t *testing.T) {
	app, db := setupCompaniesTest(t)
	seedCompanies(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/companies/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Status   string                   `json:"status"`
		Data     []map[string]interface{} `json:"data"`
		Metadata map[string]interface{}   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 2)
	assert.EqualValues(t, 2, body.Metadata["total"])
}

func TestListCompanies_StatusFilter(t *testing.T) {
	app, db := setupCompaniesTest(t)
	seedCompanies(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/companies/?status=red", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Konflikt Industries GmbH", body.Data[0]["official_name"])
}

func TestGetCompany(t *testing.T) {
	app, db := setupCompaniesTest(t)
	company := seedCompanies(t, db)
	brand := &domain.Brand{Name: "BioFair", CompanyID: &company.ID}
	require.NoError(t, db.Create(brand).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/companies/"+company.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var body struct {
		Data companysvc.Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, "BioFair", body.Data.DisplayName)
	require.Len(t, body.Data.Brands, 1)
	assert.Equal(t, "BioFair", body.Data.Brands[0].Name)
}

func TestGetCompany_NotFound(t *testing.T) {
	app, db := setupCompaniesTest(t)
	seedCompanies(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/companies/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCompany_BadID(t *testing.T) {
	app, _ := setupCompaniesTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/companies/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
