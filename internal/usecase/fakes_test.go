package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/account"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(_ context.Context, principal account.Principal) (AccessToken, error) {
	return AccessToken{
		Token:     "token-" + principal.UserID + "-" + string(principal.Role),
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

// fakeMediaStore records saved and removed paths. Paths listed in failRemove
// return an error from Remove.
type fakeMediaStore struct {
	mu         sync.Mutex
	saved      []string
	removed    []string
	failRemove map[string]bool
	failSave   bool
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{failRemove: map[string]bool{}}
}

func (s *fakeMediaStore) Save(_ context.Context, kind string, upload ImageUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return "", errors.New("disk full")
	}
	if _, err := io.Copy(io.Discard, upload.Content); err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/upload-%d.png", kind, len(s.saved)+1)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeMediaStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRemove[path] {
		return errors.New("permission denied")
	}
	s.removed = append(s.removed, path)
	return nil
}

func (s *fakeMediaStore) wasRemoved(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.removed {
		if p == path {
			return true
		}
	}
	return false
}

func pngUpload() *ImageUpload {
	return &ImageUpload{Filename: "photo.png", Size: 4, Content: strings.NewReader("\x89PNG")}
}

var fixedNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
