package mediastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

const DefaultMaxBytes int64 = 5 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// storedExtension maps an accepted sniffed MIME type to the extension used on disk.
var storedExtension = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// LocalStore keeps uploaded images under a root directory.
// Stored paths are slash separated and relative to the root, e.g. "players/<uuid>.png".
type LocalStore struct {
	root     string
	maxBytes int64
}

func NewLocalStore(root string, maxBytes int64) *LocalStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &LocalStore{root: filepath.Clean(root), maxBytes: maxBytes}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(_ context.Context, kind string, upload usecase.ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: image must be a .png, .jpg or .jpeg file", usecase.ErrInvalidInput)
	}
	if upload.Content == nil {
		return "", fmt.Errorf("%w: image content is empty", usecase.ErrInvalidInput)
	}
	if upload.Size > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", usecase.ErrInvalidInput, s.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxBytes+1))
	if err != nil {
		return "", crerr.Wrap(err, "read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", usecase.ErrInvalidInput, s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image content is empty", usecase.ErrInvalidInput)
	}

	detected := mimetype.Detect(data)
	storeExt, ok := storedExtension[detected.String()]
	if !ok {
		return "", fmt.Errorf("%w: image content must be PNG or JPEG, got %s", usecase.ErrInvalidInput, detected.String())
	}

	rel := path.Join(kind, uuid.NewString()+storeExt)
	target, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create upload dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", crerr.Wrap(err, "create temp upload file")
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", crerr.Wrap(err, "write upload")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", crerr.Wrap(err, "close upload")
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", crerr.Wrap(err, "move upload into place")
	}

	return rel, nil
}

// Remove deletes a stored file. A file that is already gone counts as removed.
func (s *LocalStore) Remove(_ context.Context, rel string) error {
	target, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return crerr.Wrapf(err, "remove upload %s", rel)
	}
	return nil
}

func (s *LocalStore) resolve(rel string) (string, error) {
	rel = strings.TrimPrefix(strings.TrimSpace(rel), "/")
	local := filepath.FromSlash(rel)
	if rel == "" || !filepath.IsLocal(local) {
		return "", crerr.Newf("upload path %q escapes the upload root", rel)
	}
	return filepath.Join(s.root, local), nil
}
