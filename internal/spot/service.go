package spot

import (
	"context"
	"encoding/json"

	"github.com/Statusnone420/nomad-safe-web/internal/db"

	"github.com/google/uuid"
)

// Service is the spot slice of the remote store. It is the only component
// that touches the spots table; everything above it works with RawSpot and
// the normalized Spot.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// List bulk-reads every spot row, newest first.
func (s *Service) List(ctx context.Context) ([]RawSpot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, category, ST_Y(location::geometry), ST_X(location::geometry),
		       overnight_allowed, has_bathroom, cell_signal, safety_rating, COALESCE(noise_level,''), photos, created_at
		FROM spots
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []RawSpot
	for rows.Next() {
		var raw RawSpot
		var photos *string
		if err := rows.Scan(&raw.ID, &raw.Name, &raw.Description, &raw.Category, &raw.Lat, &raw.Lng,
			&raw.OvernightAllowed, &raw.HasBathroom, &raw.CellSignal, &raw.SafetyRating, &raw.NoiseLevel,
			&photos, &raw.CreatedAt); err != nil {
			return nil, err
		}
		if photos != nil {
			raw.Photos = *photos
		}
		spots = append(spots, raw)
	}
	return spots, nil
}

// Insert writes a new spot row and returns it with its assigned identity
// and creation timestamp.
func (s *Service) Insert(ctx context.Context, rec Record) (RawSpot, error) {
	raw := rawFromRecord(uuid.NewString(), rec)
	row := s.db.QueryRow(ctx, `
		INSERT INTO spots (id, name, description, category, location, overnight_allowed, has_bathroom,
		                   cell_signal, safety_rating, noise_level, photos)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7,$8,$9,$10,$11,$12)
		RETURNING created_at
	`, raw.ID, rec.Name, rec.Description, rec.Category, rec.Lng, rec.Lat, rec.OvernightAllowed,
		rec.HasBathroom, rec.CellSignal, rec.SafetyRating, rec.NoiseLevel, photoJSON(rec.Photos))
	if err := row.Scan(&raw.CreatedAt); err != nil {
		return RawSpot{}, err
	}
	return raw, nil
}

// Update overwrites an existing spot row. The identity and creation
// timestamp are immutable; created_at is read back for the caller.
func (s *Service) Update(ctx context.Context, id string, rec Record) (RawSpot, error) {
	raw := rawFromRecord(id, rec)
	row := s.db.QueryRow(ctx, `
		UPDATE spots
		SET name=$2, description=$3, category=$4,
		    location=ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography,
		    overnight_allowed=$7, has_bathroom=$8, cell_signal=$9, safety_rating=$10,
		    noise_level=$11, photos=$12
		WHERE id=$1
		RETURNING created_at
	`, id, rec.Name, rec.Description, rec.Category, rec.Lng, rec.Lat, rec.OvernightAllowed,
		rec.HasBathroom, rec.CellSignal, rec.SafetyRating, rec.NoiseLevel, photoJSON(rec.Photos))
	if err := row.Scan(&raw.CreatedAt); err != nil {
		return RawSpot{}, err
	}
	return raw, nil
}

func rawFromRecord(id string, rec Record) RawSpot {
	cell := rec.CellSignal
	safety := rec.SafetyRating
	return RawSpot{
		ID:               id,
		Name:             rec.Name,
		Description:      rec.Description,
		Lat:              rec.Lat,
		Lng:              rec.Lng,
		Category:         rec.Category,
		OvernightAllowed: rec.OvernightAllowed,
		HasBathroom:      rec.HasBathroom,
		CellSignal:       &cell,
		SafetyRating:     &safety,
		NoiseLevel:       rec.NoiseLevel,
		Photos:           photoJSON(rec.Photos),
	}
}

// photoJSON is the canonical on-disk encoding for new writes. Reads still
// accept the legacy comma-joined form through Normalize.
func photoJSON(photos []string) string {
	if photos == nil {
		photos = []string{}
	}
	b, _ := json.Marshal(photos)
	return string(b)
}
