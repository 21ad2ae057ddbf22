package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/RisaRezaei/temperature-timeseries/internal/extract"
	"github.com/RisaRezaei/temperature-timeseries/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. runTimeout
// bounds extractions triggered through the API.
func RegisterRoutes(app *fiber.App, service *extract.Service, runTimeout time.Duration) {
	v1 := app.Group("/api/v1")

	// Only one API-triggered extraction at a time; the pipeline is a single
	// batch job and overlapping runs would race on the export target.
	var busy atomic.Bool

	v1.Post("/runs", func(c *fiber.Ctx) error {
		if !busy.CompareAndSwap(false, true) {
			return fiber.NewError(fiber.StatusConflict, "an extraction is already in progress")
		}

		go func() {
			defer busy.Store(false)

			ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
			defer cancel()

			if run, err := service.Extract(ctx); err != nil {
				slog.Error("api: triggered extraction failed", "run", run.ID, "error", err)
			}
		}()

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "accepted",
		})
	})

	v1.Get("/runs", func(c *fiber.Ctx) error {
		var req listQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"runs": service.List(req.Limit),
		})
	})

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		run, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no extraction runs yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch latest run")
		}
		return c.JSON(run)
	})

	v1.Get("/runs/:id", func(c *fiber.Ctx) error {
		run, err := service.GetRun(c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no such extraction run")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch run")
		}
		return c.JSON(run)
	})
}

// listQuery holds query parameters for the run-history endpoint.
type listQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

func (q *listQuery) bind(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	q.Limit = limit
	return nil
}
