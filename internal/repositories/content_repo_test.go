package repositories

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"reelstore/internal/models"
)

func TestDirContentRepo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Luxury_Reel_Bundle.pdf"), []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	repo := &DirContentRepo{Dir: dir}
	ctx := context.Background()

	t.Run("serves existing file", func(t *testing.T) {
		rc, err := repo.Open(ctx, "Luxury_Reel_Bundle.pdf")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(b) != "%PDF-1.4 test" {
			t.Fatalf("unexpected content %q", b)
		}
	})

	t.Run("missing file is ErrItemNotFound", func(t *testing.T) {
		if _, err := repo.Open(ctx, "Missing.pdf"); !errors.Is(err, models.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		for _, name := range []string{"../secret.pdf", "a/b.pdf", ".hidden", ""} {
			if _, err := repo.Open(ctx, name); !errors.Is(err, models.ErrItemNotFound) {
				t.Fatalf("name %q: expected ErrItemNotFound, got %v", name, err)
			}
		}
	})
}
