// Package editsession drives the add/edit workflow for one spot: location
// pick, field edit, photo staging, then an orchestrated submit that
// uploads staged photos strictly in order and writes the record only after
// every upload succeeded.
package editsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/validate"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

// State of a session. A failed submit loops back to an editable state with
// the original field values intact; LastErr carries the failure reason.
type State string

const (
	StateIdle        State = "idle"
	StateComposing   State = "composing" // active, no location picked yet
	StateLocationSet State = "location_set"
	StateSubmitting  State = "submitting"
	StateFailed      State = "failed"
	StateSuccess     State = "success"
)

var (
	// ErrSubmitInFlight is returned for a submit attempt while one is
	// already pending. The duplicate attempt is a no-op.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrNotActive is returned for operations on a finished or cancelled
	// session.
	ErrNotActive = errors.New("session is not active")
	// ErrSubmitting is returned for edits or cancel attempts while a
	// submission is pending.
	ErrSubmitting = errors.New("submission in progress")
)

// Fields is the in-progress form state.
type Fields struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	OvernightAllowed bool   `json:"overnight_allowed"`
	HasBathroom      bool   `json:"has_bathroom"`
	CellSignal       int    `json:"cell_signal"`
	SafetyRating     int    `json:"safety_rating"`
	NoiseLevel       string `json:"noise_level"`
	PhotoURLText     string `json:"photo_url_text"` // manual comma-separated URL entry
}

// StagedFile is one local photo waiting to be uploaded on submit.
type StagedFile struct {
	Name string
	Data []byte
}

// Uploader pushes one staged photo to the object store and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, suggestedName string) (string, error)
}

// Writer persists the finished record. *spot.Service implements it.
type Writer interface {
	Insert(ctx context.Context, rec spot.Record) (spot.RawSpot, error)
	Update(ctx context.Context, id string, rec spot.Record) (spot.RawSpot, error)
}

// Session is the transient working state for creating or editing one spot.
// It exists only while the user is composing and is discarded on cancel or
// success.
type Session struct {
	mu       sync.Mutex
	state    State
	targetID string // empty when creating
	fields   Fields
	location *geo.LatLng
	staged   []StagedFile
	lastErr  string

	uploader Uploader
	writer   Writer
}

// NewCreate starts a create session: all fields clear, a fresh map pick
// required before submit.
func NewCreate(uploader Uploader, writer Writer) *Session {
	return &Session{
		state:    StateComposing,
		uploader: uploader,
		writer:   writer,
	}
}

// NewEdit starts an edit session pre-populated from the target's current
// normalized values. The existing coordinate counts as already picked.
func NewEdit(target spot.Spot, uploader Uploader, writer Writer) *Session {
	return &Session{
		state:    StateLocationSet,
		targetID: target.ID,
		fields: Fields{
			Name:             target.Name,
			Description:      target.Description,
			Category:         target.Category,
			OvernightAllowed: target.OvernightAllowed,
			HasBathroom:      target.HasBathroom,
			CellSignal:       target.CellSignal,
			SafetyRating:     target.SafetyRating,
			NoiseLevel:       target.NoiseLevel,
			PhotoURLText:     strings.Join(target.Photos, ", "),
		},
		location: &geo.LatLng{Lat: target.Lat, Lng: target.Lng},
		uploader: uploader,
		writer:   writer,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastErr is the reason for the most recent failed submit, empty otherwise.
func (s *Session) LastErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Fields() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// TargetID is the spot being edited, empty for a create session.
func (s *Session) TargetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetID
}

// StagedCount reports how many local photos are waiting for upload.
func (s *Session) StagedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staged)
}

// SetFields replaces the form state. Allowed any time the session is
// editable, including after a failed submit.
func (s *Session) SetFields(f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.fields = f
	return nil
}

// PickLocation records a map pick. Re-picking overwrites the previous
// pending location.
func (s *Session) PickLocation(ll geo.LatLng) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.location = &geo.LatLng{Lat: ll.Lat, Lng: ll.Lng}
	if s.state == StateComposing {
		s.state = StateLocationSet
	}
	return nil
}

// StagePhoto appends a local photo to the ordered upload list.
func (s *Session) StagePhoto(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.staged = append(s.staged, StagedFile{Name: name, Data: data})
	return nil
}

// Cancel discards all staged data. Allowed from any state except while a
// submission is pending.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmitting
	}
	s.state = StateIdle
	s.fields = Fields{}
	s.location = nil
	s.staged = nil
	s.lastErr = ""
	return nil
}

// Submit validates, uploads staged photos one at a time in order, and
// writes the record. The first upload failure aborts the remaining uploads
// and the submission: no record is written, already-uploaded files are not
// rolled back but nothing references them, and the session keeps its field
// values for a retry. A concurrent submit while one is pending is a no-op.
func (s *Session) Submit(ctx context.Context) (spot.RawSpot, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return spot.RawSpot{}, ErrSubmitInFlight
	case StateIdle, StateSuccess:
		s.mu.Unlock()
		return spot.RawSpot{}, ErrNotActive
	}

	// Local validation: no store traffic on failure, state unchanged.
	if s.location == nil {
		s.mu.Unlock()
		return spot.RawSpot{}, validate.Errorf("location", "no location has been set")
	}
	if strings.TrimSpace(s.fields.Name) == "" {
		s.mu.Unlock()
		return spot.RawSpot{}, validate.Errorf("name", "name must not be empty")
	}

	s.state = StateSubmitting
	s.lastErr = ""
	fields := s.fields
	location := *s.location
	staged := make([]StagedFile, len(s.staged))
	copy(staged, s.staged)
	targetID := s.targetID
	s.mu.Unlock()

	rec := recordFromFields(fields, location)

	uploaded := make([]string, 0, len(staged))
	for _, f := range staged {
		url, err := s.uploader.Upload(ctx, f.Data, f.Name)
		if err != nil {
			wrapped := fmt.Errorf("upload %s: %w", f.Name, err)
			s.fail(wrapped)
			return spot.RawSpot{}, wrapped
		}
		uploaded = append(uploaded, url)
	}
	// Manual URLs first, then freshly uploaded ones.
	rec.Photos = append(rec.Photos, uploaded...)

	var raw spot.RawSpot
	var err error
	if targetID == "" {
		raw, err = s.writer.Insert(ctx, rec)
	} else {
		raw, err = s.writer.Update(ctx, targetID, rec)
	}
	if err != nil {
		s.fail(err)
		return spot.RawSpot{}, err
	}

	s.mu.Lock()
	s.state = StateSuccess
	s.fields = Fields{}
	s.location = nil
	s.staged = nil
	s.mu.Unlock()
	return raw, nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *Session) editableLocked() error {
	switch s.state {
	case StateComposing, StateLocationSet, StateFailed:
		return nil
	case StateSubmitting:
		return ErrSubmitting
	default:
		return ErrNotActive
	}
}

func recordFromFields(f Fields, ll geo.LatLng) spot.Record {
	category := f.Category
	if category == "" {
		category = spot.CategoryOther
	}
	noise := f.NoiseLevel
	if noise == "" {
		noise = spot.NoiseUnknown
	}
	return spot.Record{
		Name:             strings.TrimSpace(f.Name),
		Description:      f.Description,
		Lat:              ll.Lat,
		Lng:              ll.Lng,
		Category:         category,
		OvernightAllowed: f.OvernightAllowed,
		HasBathroom:      f.HasBathroom,
		CellSignal:       spot.ClampCellSignal(f.CellSignal),
		SafetyRating:     spot.ClampSafetyRating(f.SafetyRating),
		NoiseLevel:       noise,
		Photos:           spot.SplitPhotoList(f.PhotoURLText),
	}
}
