// Package storage is the object store behind photo uploads: bytes land on
// local disk under the media directory and a metadata row records each
// object. The returned public URL is what spot records reference.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Statusnone420/nomad-safe-web/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db      db.Querier
	dir     string
	baseURL string
}

func NewService(db db.Querier, dir, baseURL string) *Service {
	return &Service{db: db, dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload stores one photo and returns its public URL. Callers invoke it at
// most once per file per submission attempt; a failure after the file hit
// disk leaves an orphan object, which is acceptable because nothing
// references the URL until the record write succeeds.
func (s *Service) Upload(ctx context.Context, data []byte, suggestedName string) (string, error) {
	name := uuid.NewString() + "-" + sanitizeName(suggestedName)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}

	url := s.baseURL + "/" + name
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, url, kind, size_bytes)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), url, "spot-photo", len(data))
	if err != nil {
		return "", err
	}
	return url, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
