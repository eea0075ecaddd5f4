package editsession

import (
	"errors"
	"io"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/validate"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

// Catalog is the slice of the engine a session needs: the normalized spot
// for edit prefill and the write-back of a successful submit.
type Catalog interface {
	Spot(id string) (spot.Spot, bool)
	ApplySpot(raw spot.RawSpot) spot.Spot
}

// Manager tracks live sessions by id. Sessions are discarded on cancel and
// on success.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	uploader Uploader
	writer   Writer
	catalog  Catalog
}

func NewManager(uploader Uploader, writer Writer, catalog Catalog) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		uploader: uploader,
		writer:   writer,
		catalog:  catalog,
	}
}

// StartCreate opens a create session and returns its id.
func (m *Manager) StartCreate() (string, *Session) {
	s := NewCreate(m.uploader, m.writer)
	return m.put(s), s
}

// StartEdit opens an edit session pre-populated from the catalog.
func (m *Manager) StartEdit(spotID string) (string, *Session, error) {
	target, ok := m.catalog.Spot(spotID)
	if !ok {
		return "", nil, validate.Errorf("spot_id", "spot not found")
	}
	s := NewEdit(target, m.uploader, m.writer)
	return m.put(s), s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) put(s *Session) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return id
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

type sessionView struct {
	ID       string `json:"id"`
	State    State  `json:"state"`
	TargetID string `json:"target_id,omitempty"`
	Fields   Fields `json:"fields"`
	Staged   int    `json:"staged_photos"`
	LastErr  string `json:"last_error,omitempty"`
}

func view(id string, s *Session) sessionView {
	return sessionView{
		ID:       id,
		State:    s.State(),
		TargetID: s.TargetID(),
		Fields:   s.Fields(),
		Staged:   s.StagedCount(),
		LastErr:  s.LastErr(),
	}
}

// RegisterRoutes exposes the edit workflow. Every route mutates composing
// state or the store, so the whole group is guarded.
func RegisterRoutes(r fiber.Router, m *Manager, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Mode   string `json:"mode"`
			SpotID string `json:"spot_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		switch body.Mode {
		case "create", "":
			id, s := m.StartCreate()
			return c.Status(fiber.StatusCreated).JSON(view(id, s))
		case "edit":
			id, s, err := m.StartEdit(body.SpotID)
			if err != nil {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return c.Status(fiber.StatusCreated).JSON(view(id, s))
		default:
			return fiber.NewError(fiber.StatusBadRequest, "mode must be create or edit")
		}
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return c.JSON(view(c.Params("id"), s))
	})

	r.Put("/:id/fields", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		var f Fields
		if err := c.BodyParser(&f); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := s.SetFields(f); err != nil {
			return sessionError(err)
		}
		return c.JSON(view(c.Params("id"), s))
	})

	r.Post("/:id/location", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		var ll geo.LatLng
		if err := c.BodyParser(&ll); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := s.PickLocation(ll); err != nil {
			return sessionError(err)
		}
		return c.JSON(view(c.Params("id"), s))
	})

	r.Post("/:id/photos", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		fh, err := c.FormFile("photo")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "photo file required")
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := s.StagePhoto(fh.Filename, data); err != nil {
			return sessionError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(view(c.Params("id"), s))
	})

	r.Post("/:id/submit", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}

		raw, err := s.Submit(c.Context())
		if err != nil {
			var verr *validate.Error
			switch {
			case errors.As(err, &verr):
				return c.Status(fiber.StatusBadRequest).JSON(verr)
			case errors.Is(err, ErrSubmitInFlight):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrNotActive):
				return fiber.NewError(fiber.StatusGone, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		sp := m.catalog.ApplySpot(raw)
		m.drop(c.Params("id"))
		return c.JSON(sp)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		s, ok := m.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		if err := s.Cancel(); err != nil {
			return sessionError(err)
		}
		m.drop(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, ErrSubmitting):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrNotActive):
		return fiber.NewError(fiber.StatusGone, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
}
