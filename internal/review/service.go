package review

import (
	"context"

	"github.com/Statusnone420/nomad-safe-web/internal/db"

	"github.com/google/uuid"
)

// Service is the review slice of the remote store.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// ListAll bulk-reads every review row, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Review, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, spot_id, rating, comment, nickname, created_at
		FROM spot_reviews
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.SpotID, &r.Rating, &r.Comment, &r.Nickname, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// Insert writes a cleaned review and returns it with its assigned identity
// and creation timestamp.
func (s *Service) Insert(ctx context.Context, r Review) (Review, error) {
	r.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO spot_reviews (id, spot_id, rating, comment, nickname)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, r.ID, r.SpotID, r.Rating, r.Comment, r.Nickname)
	if err := row.Scan(&r.CreatedAt); err != nil {
		return Review{}, err
	}
	return r, nil
}
