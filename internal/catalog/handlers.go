package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/validate"
)

// RegisterRoutes exposes the engine to the rendering layer: snapshot reads
// plus filter-change, viewer-location, favorite-toggle, and review-submit
// intents. Only review submission writes to the store, so only it is
// guarded.
func RegisterRoutes(r fiber.Router, e *Engine, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		if err := e.Status(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(e.Snapshot())
	})

	r.Get("/filters", func(c *fiber.Ctx) error {
		return c.JSON(e.Filters())
	})

	r.Post("/filters", func(c *fiber.Ctx) error {
		var f Filters
		if err := c.BodyParser(&f); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		e.SetFilters(f)
		return c.JSON(e.Snapshot())
	})

	r.Post("/viewer", func(c *fiber.Ctx) error {
		var body struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Lat == nil || body.Lng == nil {
			// Absent coordinate means distance unknown, never (0,0).
			e.SetViewerLocation(nil)
		} else {
			e.SetViewerLocation(&geo.LatLng{Lat: *body.Lat, Lng: *body.Lng})
		}
		return c.JSON(e.Snapshot())
	})

	r.Get("/viewport", func(c *fiber.Ctx) error {
		minLat, err1 := strconv.ParseFloat(c.Query("min_lat"), 64)
		minLng, err2 := strconv.ParseFloat(c.Query("min_lng"), 64)
		maxLat, err3 := strconv.ParseFloat(c.Query("max_lat"), 64)
		maxLng, err4 := strconv.ParseFloat(c.Query("max_lng"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "min_lat, min_lng, max_lat, max_lng required")
		}
		ids, err := e.Viewport(minLat, minLng, maxLat, maxLng)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ids": ids})
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		sp, ok := e.Spot(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "spot not found")
		}
		return c.JSON(sp)
	})

	r.Post("/:id/favorite", func(c *fiber.Ctx) error {
		favorite := e.ToggleFavorite(c.Context(), c.Params("id"))
		return c.JSON(fiber.Map{"favorite": favorite})
	})

	r.Get("/:id/reviews", func(c *fiber.Ctx) error {
		reviews := e.Reviews(c.Params("id"))
		if reviews == nil {
			reviews = []review.Review{}
		}
		return c.JSON(reviews)
	})

	r.Post("/:id/reviews", authMiddleware, func(c *fiber.Ctx) error {
		var sub review.Submission
		if err := c.BodyParser(&sub); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sub.SpotID = c.Params("id")

		r, err := e.SubmitReview(c.Context(), sub)
		if err != nil {
			var verr *validate.Error
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusBadRequest).JSON(verr)
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	})
}
