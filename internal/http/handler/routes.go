package handler

import (
	charmlog "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"entryapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Routes are matched with or without a trailing slash.
func RegisterRoutes(app *fiber.App, db Pinger, gatherer prometheus.Gatherer, entrySvc service.EntryService, log *charmlog.Logger) {
	log = log.With("component", "http")

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())
	app.Get("/metrics", Metrics(gatherer))
	app.Get("/swagger/*", Swagger())

	app.Post("/entries/", CreateEntry(entrySvc, log))
	app.Get("/entries/", ListEntries(entrySvc, log))
}
