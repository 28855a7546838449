package companies

import (
	"errors"

	companysvc "pushtohold-backend/internal/application/companies"
	"pushtohold-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles company handlers with dependencies.
type Handlers struct {
	Service *companysvc.Service
}

// List GET /api/v1/companies?status=&country=&sector=&query=&page=&pageSize=
func (h *Handlers) List(c *fiber.Ctx) error {
	q := companysvc.Query{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
		Status:   c.Query("status"),
		Country:  c.Query("country"),
		Sector:   c.Query("sector"),
		Search:   c.Query("query"),
	}
	result, err := h.Service.List(c.Context(), q)
	if err != nil {
		return response.Error(c, "Failed to list companies", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Companies retrieved", result.Items, result.Meta)
}

// Get GET /api/v1/companies/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid company id", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, companysvc.ErrCompanyNotFound) {
			return response.Error(c, "Company not found", fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Failed to load company", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Company retrieved", detail, nil)
}
