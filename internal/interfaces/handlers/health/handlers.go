package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the relational store for health checks.
type DBPinger interface {
	Ping() error
}

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// JSON GET /health/json — reports dependency status.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	status := "ok"

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = "down"
			status = "degraded"
		} else {
			deps["database"] = "up"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.Rdb != nil {
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			// Redis outages degrade to the in-process cache, not the service.
			deps["redis"] = "down"
		} else {
			deps["redis"] = "up"
		}
	} else {
		deps["redis"] = "not configured"
	}

	return c.JSON(fiber.Map{
		"service":      "pushtohold-api",
		"status":       status,
		"time":         time.Now().UTC(),
		"dependencies": deps,
	})
}
