package scan

import (
	"errors"

	catalogsvc "pushtohold-backend/internal/application/catalog"
	"pushtohold-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Handlers bundles scan handlers with dependencies.
type Handlers struct {
	Service *catalogsvc.Service
}

// Scan GET /api/v1/scan/:gtin
// Resolves a barcode to product and company democracy status. Optional
// headers: x-user-id (set by the fronting gateway), x-app-platform,
// x-country-code.
func (h *Handlers) Scan(c *fiber.Ctx) error {
	raw := c.Params("gtin")
	if raw == "" {
		return response.Error(c, "gtin is required", fiber.StatusBadRequest, nil)
	}

	// Header values are copied: scan recording outlives the request and
	// fiber reuses its buffers.
	sc := catalogsvc.ScanContext{}
	if v := utils.CopyString(c.Get("x-user-id")); v != "" {
		sc.UserID = &v
	}
	if v := utils.CopyString(c.Get("x-app-platform")); v != "" {
		sc.Platform = &v
	}
	if v := utils.CopyString(c.Get("x-country-code")); v != "" {
		sc.CountryCode = &v
	}

	result, err := h.Service.Resolve(c.Context(), raw, sc)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrProductNotFound) {
			return response.Error(c, "Product not found", fiber.StatusNotFound, nil)
		}
		if errors.Is(err, catalogsvc.ErrStoreUnavailable) {
			return response.Error(c, "Service temporarily unavailable", fiber.StatusServiceUnavailable, nil)
		}
		return err
	}
	return response.Success(c, "Scan resolved", result, nil)
}
