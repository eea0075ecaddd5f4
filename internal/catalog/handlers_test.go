package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func newHandlerApp(t *testing.T, e *Engine) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app.Group("/spots"), e, passthrough)
	return app
}

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(&fakeSpotStore{raws: []spot.RawSpot{
		{ID: "s1", Name: "Ridge", Category: spot.CategoryForestRoad, OvernightAllowed: true, Lat: 44.05, Lng: -121.3},
		{ID: "s2", Name: "Lot", Category: spot.CategoryStore, Lat: 44.06, Lng: -121.3},
	}}, &fakeReviewStore{}, nil)
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return e
}

func TestListSnapshot(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/spots/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot status: %v", err)
	}
	var ranked []Ranked
	if err := json.NewDecoder(resp.Body).Decode(&ranked); err != nil || len(ranked) != 2 {
		t.Fatalf("unexpected snapshot: %v %v", ranked, err)
	}
}

func TestListSnapshotLoadError(t *testing.T) {
	e := newTestEngine(&fakeSpotStore{err: errors.New("store down")}, &fakeReviewStore{}, nil)
	_ = e.Load(context.Background())
	app := newHandlerApp(t, e)

	req := httptest.NewRequest(http.MethodGet, "/spots/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with sticky load error, got %d", resp.StatusCode)
	}
}

func TestSetFilters(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	body, _ := json.Marshal(Filters{Categories: []string{spot.CategoryForestRoad}, OvernightOnly: true})
	req := httptest.NewRequest(http.MethodPost, "/spots/filters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("set filters: %v", err)
	}
	var ranked []Ranked
	if err := json.NewDecoder(resp.Body).Decode(&ranked); err != nil || len(ranked) != 1 || ranked[0].ID != "s1" {
		t.Fatalf("expected filtered snapshot: %v", ranked)
	}
}

func TestSetViewer(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	req := httptest.NewRequest(http.MethodPost, "/spots/viewer", bytes.NewReader([]byte(`{"lat":44.0,"lng":-121.3}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("set viewer: %v", err)
	}
	var ranked []Ranked
	_ = json.NewDecoder(resp.Body).Decode(&ranked)
	if ranked[0].DistanceKm == nil {
		t.Fatalf("expected distances after viewer set")
	}

	// Clearing the viewer makes distance unknown again.
	req = httptest.NewRequest(http.MethodPost, "/spots/viewer", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	ranked = nil
	_ = json.NewDecoder(resp.Body).Decode(&ranked)
	if ranked[0].DistanceKm != nil {
		t.Fatalf("expected unknown distance after viewer cleared")
	}
}

func TestGetSpotAndNotFound(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/spots/s1", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected spot found")
	}
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/spots/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
}

func TestToggleFavoriteRoute(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/spots/s1/favorite", nil))
	var body map[string]bool
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if !body["favorite"] {
		t.Fatalf("expected favorite true after toggle")
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, "/spots/s1/favorite", nil))
	body = nil
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["favorite"] {
		t.Fatalf("expected favorite false after second toggle")
	}
}

func TestSubmitReviewRoute(t *testing.T) {
	e := loadedEngine(t)
	app := newHandlerApp(t, e)

	body, _ := json.Marshal(review.Submission{Rating: 5, Comment: "level and quiet"})
	req := httptest.NewRequest(http.MethodPost, "/spots/s1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit review status: %v %d", err, resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/spots/s1/reviews", nil))
	var reviews []review.Review
	_ = json.NewDecoder(resp.Body).Decode(&reviews)
	if len(reviews) != 1 {
		t.Fatalf("expected review visible immediately")
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	body, _ := json.Marshal(review.Submission{Rating: 9, Comment: "x"})
	req := httptest.NewRequest(http.MethodPost, "/spots/s1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var verr struct {
		Field string `json:"field"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&verr)
	if verr.Field != "rating" {
		t.Fatalf("expected error keyed to rating, got %q", verr.Field)
	}
}

func TestViewportRoute(t *testing.T) {
	app := newHandlerApp(t, loadedEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/spots/viewport?min_lat=44.0&min_lng=-121.4&max_lat=44.055&max_lng=-121.2", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("viewport status: %v", err)
	}
	var body struct {
		IDs []string `json:"ids"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if len(body.IDs) != 1 || body.IDs[0] != "s1" {
		t.Fatalf("unexpected viewport ids: %v", body.IDs)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/spots/viewport?min_lat=bad", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad bounds")
	}
}
