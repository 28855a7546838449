package scan

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	catalogsvc "pushtohold-backend/internal/application/catalog"
	"pushtohold-backend/internal/domain"
	"pushtohold-backend/internal/infrastructure/cache"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupScanTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Company{}, &domain.Brand{}, &domain.Product{}, &domain.Scan{}))

	index := catalogsvc.NewBrandIndex(db)
	require.NoError(t, index.Rebuild(context.Background()))

	facts := catalogsvc.NewOpenFactsClient([]string{"https://facts.example/product"}, "test-agent/1.0")
	httpmock.ActivateNonDefault(facts.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder("GET", `=~^https://facts\.example/`,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status": 0,
		}))

	h := &Handlers{Service: &catalogsvc.Service{
		DB:    db,
		Cache: cache.NewMemoryStore(),
		Facts: facts,
		Index: index,
	}}
	app := fiber.New()
	app.Get("/api/v1/scan/:gtin", h.Scan)
	return app, db
}

func seedProduct(t *testing.T, db *gorm.DB) *domain.Company {
	company := &domain.Company{OfficialName: "BioFair GmbH", DemocracyStatus: domain.StatusGreen}
	require.NoError(t, db.Create(company).Error)
	brand := &domain.Brand{Name: "BioFair", CompanyID: &company.ID}
	require.NoError(t, db.Create(brand).Error)
	product := &domain.Product{GTIN: "4001234567890", Name: "BioFair Müsli", BrandID: &brand.ID}
	require.NoError(t, db.Create(product).Error)
	return company
}

func TestScan_Success(t *testing.T) {
	app, db := setupScanTest(t)
	seedProduct(t, db)

	req := httptest.NewRequest("GET", "/api/v1/scan/4001234567890", nil)
	req.Header.Set("x-app-platform", "android")
	req.Header.Set("x-country-code", "DE")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Status string                `json:"status"`
		Data   catalogsvc.ScanResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "4001234567890", body.Data.GTIN)
	assert.Equal(t, "BioFair Müsli", body.Data.Product.Name)
	require.NotNil(t, body.Data.Company)
	assert.Equal(t, domain.StatusGreen, body.Data.Company.DemocracyStatus)
}

func TestScan_DirtyIdentifierResolves(t *testing.T) {
	app, db := setupScanTest(t)
	seedProduct(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/scan/4001-234-567-890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestScan_NotFound(t *testing.T) {
	app, _ := setupScanTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/scan/9999999999999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestScan_StoreDownIsServiceUnavailable(t *testing.T) {
	app, db := setupScanTest(t)
	require.NoError(t, db.Migrator().DropTable(&domain.Product{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/scan/4001234567890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestScan_RecordsContextHeaders(t *testing.T) {
	app, db := setupScanTest(t)
	seedProduct(t, db)

	req := httptest.NewRequest("GET", "/api/v1/scan/4001234567890", nil)
	req.Header.Set("x-user-id", "user-42")
	req.Header.Set("x-app-platform", "ios")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		var count int64
		return db.Model(&domain.Scan{}).Count(&count).Error == nil && count == 1
	}, 2*time.Second, 20*time.Millisecond)

	var scan domain.Scan
	require.NoError(t, db.First(&scan).Error)
	require.NotNil(t, scan.UserID)
	assert.Equal(t, "user-42", *scan.UserID)
	require.NotNil(t, scan.AppPlatform)
	assert.Equal(t, "ios", *scan.AppPlatform)
	assert.Nil(t, scan.CountryCode)
}
