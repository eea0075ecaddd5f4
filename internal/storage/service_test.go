package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

func TestUpload(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "spot-photo", 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dir := t.TempDir()
	svc := NewService(mock, dir, "https://media.example/")

	url, err := svc.Upload(context.Background(), []byte("abc"), "camp site.jpg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(url, "https://media.example/") {
		t.Fatalf("unexpected url: %q", url)
	}
	if strings.Contains(url, " ") {
		t.Fatalf("expected sanitized name in url: %q", url)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one stored object: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil || string(data) != "abc" {
		t.Fatalf("unexpected object contents: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUploadMetadataError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO storage_objects`).WillReturnError(errors.New("db down"))

	svc := NewService(mock, t.TempDir(), "https://media.example")
	if _, err := svc.Upload(context.Background(), []byte("abc"), "a.jpg"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"camp site.jpg": "camp_site.jpg",
		"../../etc/x":   "x",
		"  ":            "upload",
		"ok-1_2.png":    "ok-1_2.png",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitize %q: expected %q, got %q", in, want, got)
		}
	}
}
