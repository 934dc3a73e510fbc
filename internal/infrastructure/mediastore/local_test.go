package mediastore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/volley-club/internal/usecase"
)

// pngHeader is enough for MIME sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewLocalStore(root, 1024)

	rel, err := store.Save(context.Background(), "players", usecase.ImageUpload{
		Filename: "Setter.PNG",
		Size:     int64(len(pngHeader)),
		Content:  bytes.NewReader(pngHeader),
	})
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}
	if !strings.HasPrefix(rel, "players/") || !strings.HasSuffix(rel, ".png") {
		t.Fatalf("unexpected stored path: %s", rel)
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}

	if err := store.Remove(context.Background(), rel); err != nil {
		t.Fatalf("remove upload: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err=%v", err)
	}
	if err := store.Remove(context.Background(), rel); err != nil {
		t.Fatalf("expected removing a missing file to succeed, got %v", err)
	}
}

func TestLocalStore_SaveRejects(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir(), 32)
	cases := []struct {
		name   string
		upload usecase.ImageUpload
	}{
		{
			name:   "forged extension",
			upload: usecase.ImageUpload{Filename: "cat.png", Content: strings.NewReader("this is plain text, not an image")},
		},
		{
			name:   "unsupported extension",
			upload: usecase.ImageUpload{Filename: "cat.gif", Content: bytes.NewReader(pngHeader)},
		},
		{
			name:   "too large",
			upload: usecase.ImageUpload{Filename: "big.png", Content: bytes.NewReader(append(append([]byte(nil), pngHeader...), make([]byte, 64)...))},
		},
		{
			name:   "empty",
			upload: usecase.ImageUpload{Filename: "empty.jpg", Content: bytes.NewReader(nil)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Save(context.Background(), "news", tc.upload)
			if !errors.Is(err, usecase.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLocalStore_RemoveRejectsTraversal(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir(), 0)
	if err := store.Remove(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal path to be rejected")
	}
}
