package catalogadmin

import (
	catalogsvc "pushtohold-backend/internal/application/catalog"
	"pushtohold-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles catalog admin handlers with dependencies.
type Handlers struct {
	Service  *catalogsvc.Service
	AdminKey string
}

// RefreshIndex POST /api/v1/catalog/refresh-index?key=ADMIN_KEY
// Rebuilds the in-memory brand index. On failure the previous index keeps
// serving, so this returns 503 without any traffic impact.
func (h *Handlers) RefreshIndex(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.AdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if err := h.Service.RefreshIndex(c.Context()); err != nil {
		return response.Error(c, "Index rebuild failed, previous index still active", fiber.StatusServiceUnavailable, nil)
	}
	return response.Success(c, "Brand index rebuilt", fiber.Map{"success": true}, nil)
}
