// Package adminapi is the read-only HTTP surface spec.md's expanded
// ambient stack adds: health and Prometheus metrics, built on the
// teacher's fiber stack (pkg/api/router.go, cmd/server/main.go's
// fiber.New + cors wiring). It never reaches into book state directly
// — only the metrics registry, the registry's instrument names and the
// sequencer's current value — so it never takes a book lock and
// cannot violate the lock hierarchy of spec.md §5.
package adminapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matchcore/internal/engine"

	"github.com/prometheus/client_golang/prometheus"
)

// New builds the admin fiber.App. reg is the Prometheus registry the
// caller already registered the engine's metrics.Metrics into.
func New(e *engine.Engine, reg *prometheus.Registry) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"instruments": len(e.Registry.Names()),
			"sequence":    e.Sequencer.Value(),
		})
	})

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	app.Get("/metrics", adaptor.HTTPHandler(handler))

	return app
}
