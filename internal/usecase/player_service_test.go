package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	mediamock "github.com/riskibarqy/volley-club/internal/mocks/domain/media"
	playermock "github.com/riskibarqy/volley-club/internal/mocks/domain/player"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

type playerFixture struct {
	svc       *PlayerService
	repo      *playermock.Repository
	deletions *mediamock.Repository
	store     *fakeMediaStore
}

func newPlayerFixture(t *testing.T) playerFixture {
	t.Helper()

	repo := playermock.NewRepository(t)
	deletions := mediamock.NewRepository(t)
	store := newFakeMediaStore()
	reaper := NewMediaReaper(deletions, store, logging.NewNop(), time.Minute, 1)

	svc := NewPlayerService(repo, store, reaper, &sequenceIDs{}, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }

	return playerFixture{svc: svc, repo: repo, deletions: deletions, store: store}
}

func validPlayerInput() PlayerInput {
	return PlayerInput{
		Name:         "Mia Torres",
		Positions:    []string{"Setter", "Libero"},
		JerseyNumber: 7,
		Age:          24,
		Nationality:  "Spain",
		Stats:        player.Stats{Kills: 10, Aces: 3},
	}
}

func TestPlayerService_CreateStoresImage(t *testing.T) {
	f := newPlayerFixture(t)
	f.deletions.On("Enqueue", mock.Anything, "players/upload-1.png").Return(nil).Once()
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(item player.Player) bool {
		return item.ID == "id-1" && item.ImagePath == "players/upload-1.png" && len(item.Positions) == 2
	})).Return(nil).Once()

	input := validPlayerInput()
	input.Image = pngUpload()

	created, err := f.svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if !created.CreatedAt.Equal(fixedNow) || !created.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected timestamps: %v %v", created.CreatedAt, created.UpdatedAt)
	}
}

func TestPlayerService_CreateRejectsInvalidBeforeStoring(t *testing.T) {
	f := newPlayerFixture(t)

	input := validPlayerInput()
	input.Positions = []string{"Goalkeeper"}
	input.Image = pngUpload()

	_, err := f.svc.Create(context.Background(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.store.saved) != 0 {
		t.Fatalf("expected no stored image, got %v", f.store.saved)
	}
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlayerService_CreateDiscardsImageWhenWriteFails(t *testing.T) {
	f := newPlayerFixture(t)
	f.deletions.On("Enqueue", mock.Anything, "players/upload-1.png").Return(nil).Once()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	f.deletions.On("Resolve", mock.Anything, "players/upload-1.png").Return(nil).Once()

	input := validPlayerInput()
	input.Image = pngUpload()

	if _, err := f.svc.Create(context.Background(), input); err == nil {
		t.Fatalf("expected create error")
	}
	if !f.store.wasRemoved("players/upload-1.png") {
		t.Fatalf("expected staged image to be discarded")
	}
}

func TestPlayerService_UpdateReplacesImage(t *testing.T) {
	f := newPlayerFixture(t)
	current := player.Player{
		ID:           "p1",
		Name:         "Mia Torres",
		Positions:    []player.Position{player.PositionSetter},
		JerseyNumber: 7,
		Age:          24,
		Nationality:  "Spain",
		ImagePath:    "players/old.png",
		CreatedAt:    fixedNow.Add(-time.Hour),
	}
	f.repo.On("GetByID", mock.Anything, "p1").Return(current, true, nil).Once()
	f.deletions.On("Enqueue", mock.Anything, "players/upload-1.png").Return(nil).Once()
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(item player.Player) bool {
		return item.ID == "p1" && item.Name == "Mia Torres"
	}), media.ReplaceImage("players/upload-1.png")).Return(current, true, nil).Once()
	f.deletions.On("Resolve", mock.Anything, "players/old.png").Return(nil).Once()

	input := validPlayerInput()
	input.Image = pngUpload()

	updated, err := f.svc.Update(context.Background(), "p1", input)
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if !updated.CreatedAt.Equal(current.CreatedAt) {
		t.Fatalf("expected created_at preserved")
	}
	if updated.ImagePath != "players/upload-1.png" {
		t.Fatalf("expected new image path, got %q", updated.ImagePath)
	}
	if !f.store.wasRemoved("players/old.png") {
		t.Fatalf("expected previous image to be reaped")
	}
}

func TestPlayerService_UpdateKeepsImageWithoutUpload(t *testing.T) {
	f := newPlayerFixture(t)
	current := player.Player{ID: "p1", ImagePath: "players/old.png"}
	f.repo.On("GetByID", mock.Anything, "p1").Return(current, true, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything, media.KeepImage()).Return(current, true, nil).Once()

	updated, err := f.svc.Update(context.Background(), "p1", validPlayerInput())
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.ImagePath != "players/old.png" {
		t.Fatalf("expected image kept, got %q", updated.ImagePath)
	}
	if len(f.store.removed) != 0 {
		t.Fatalf("expected no removal, got %v", f.store.removed)
	}
}

func TestPlayerService_UpdateKeepsImageWrittenByConcurrentUpdate(t *testing.T) {
	f := newPlayerFixture(t)
	stale := player.Player{ID: "p1", ImagePath: "players/a.png"}
	locked := player.Player{ID: "p1", ImagePath: "players/b.png"}
	f.repo.On("GetByID", mock.Anything, "p1").Return(stale, true, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything, media.KeepImage()).Return(locked, true, nil).Once()

	updated, err := f.svc.Update(context.Background(), "p1", validPlayerInput())
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.ImagePath != "players/b.png" {
		t.Fatalf("expected image from the locked row, got %q", updated.ImagePath)
	}
	if len(f.store.removed) != 0 {
		t.Fatalf("expected no removal, got %v", f.store.removed)
	}
}

func TestPlayerService_CreateFailsWhenUploadCannotBeTracked(t *testing.T) {
	f := newPlayerFixture(t)
	f.deletions.On("Enqueue", mock.Anything, "players/upload-1.png").Return(errors.New("db down")).Once()

	input := validPlayerInput()
	input.Image = pngUpload()

	if _, err := f.svc.Create(context.Background(), input); err == nil {
		t.Fatalf("expected create error")
	}
	if !f.store.wasRemoved("players/upload-1.png") {
		t.Fatalf("expected untracked upload removed")
	}
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlayerService_UpdateMissing(t *testing.T) {
	f := newPlayerFixture(t)
	f.repo.On("GetByID", mock.Anything, "nope").Return(player.Player{}, false, nil).Once()

	_, err := f.svc.Update(context.Background(), "nope", validPlayerInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_DeleteReapsImage(t *testing.T) {
	f := newPlayerFixture(t)
	f.repo.On("Delete", mock.Anything, "p1").Return(player.Player{ID: "p1", ImagePath: "players/old.png"}, true, nil).Once()
	f.deletions.On("Resolve", mock.Anything, "players/old.png").Return(nil).Once()

	if err := f.svc.Delete(context.Background(), " p1 "); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if !f.store.wasRemoved("players/old.png") {
		t.Fatalf("expected image removed")
	}
}

func TestPlayerService_DeleteMissing(t *testing.T) {
	f := newPlayerFixture(t)
	f.repo.On("Delete", mock.Anything, "p404").Return(player.Player{}, false, nil).Once()

	if err := f.svc.Delete(context.Background(), "p404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
