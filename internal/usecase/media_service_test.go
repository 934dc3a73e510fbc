package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/volley-club/internal/domain/media"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/infrastructure/repository/memory"
	mediamock "github.com/riskibarqy/volley-club/internal/mocks/domain/media"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

func newTestReaper(t *testing.T, deletions media.Repository, store MediaStore) *MediaReaper {
	t.Helper()

	reaper := NewMediaReaper(deletions, store, logging.NewNop(), time.Minute, 2)
	reaper.now = func() time.Time { return fixedNow }
	return reaper
}

func TestMediaReaper_SweepRemovesPendingFiles(t *testing.T) {
	deletions := mediamock.NewRepository(t)
	store := newFakeMediaStore()
	store.failRemove["players/locked.png"] = true

	deletions.On("ListPending", mock.Anything, fixedNow.Add(-time.Minute), defaultSweepBatch).Return([]media.Deletion{
		{Path: "players/a.png"},
		{Path: "news/b.png"},
		{Path: "players/locked.png"},
	}, nil).Once()
	deletions.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := newTestReaper(t, deletions, store).Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Scanned != 3 || result.Reaped != 2 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !store.wasRemoved("players/a.png") || !store.wasRemoved("news/b.png") {
		t.Fatalf("expected pending files removed, got %v", store.removed)
	}
	if store.wasRemoved("players/locked.png") {
		t.Fatalf("locked file should remain pending")
	}
}

func TestMediaReaper_SweepNothingPending(t *testing.T) {
	deletions := mediamock.NewRepository(t)
	deletions.On("ListPending", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()

	result, err := newTestReaper(t, deletions, newFakeMediaStore()).Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Scanned != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	deletions.AssertNotCalled(t, "Resolve", mock.Anything)
}

func TestMediaReaper_SweepListError(t *testing.T) {
	deletions := mediamock.NewRepository(t)
	deletions.On("ListPending", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	if _, err := newTestReaper(t, deletions, newFakeMediaStore()).Sweep(context.Background()); err == nil {
		t.Fatalf("expected sweep error")
	}
}

func TestMediaReaper_ReapNowKeepsFailedTombstones(t *testing.T) {
	deletions := mediamock.NewRepository(t)
	store := newFakeMediaStore()
	store.failRemove["players/locked.png"] = true
	deletions.On("Resolve", mock.Anything, "players/old.png").Return(nil).Once()

	reaper := newTestReaper(t, deletions, store)
	reaper.ReapNow(context.Background(), "players/old.png", "", "players/locked.png")

	if !store.wasRemoved("players/old.png") {
		t.Fatalf("expected old image removed")
	}
}

func TestImageChange(t *testing.T) {
	cases := []struct {
		stored, staged string
		remove         bool
		want           string
	}{
		{"players/old.png", "players/new.png", false, "players/new.png"},
		{"players/old.png", "players/new.png", true, "players/new.png"},
		{"players/old.png", "", true, ""},
		{"players/old.png", "", false, "players/old.png"},
		{"", "", false, ""},
	}
	for _, tc := range cases {
		if got := imageChange(tc.staged, tc.remove).Apply(tc.stored); got != tc.want {
			t.Fatalf("imageChange(%q, %v).Apply(%q) = %q, want %q", tc.staged, tc.remove, tc.stored, got, tc.want)
		}
	}
}

func TestImageSlot_UnclaimedUploadIsSwept(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	reaper := NewMediaReaper(pending, store, logging.NewNop(), 0, 1)
	slot := imageSlot{kind: "players", store: store, reaper: reaper, logger: logging.NewNop()}

	path, err := slot.stage(context.Background(), pngUpload())
	if err != nil {
		t.Fatalf("stage upload: %v", err)
	}

	result, err := reaper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Reaped != 1 || !store.wasRemoved(path) {
		t.Fatalf("expected unclaimed upload %q swept, got %+v removed=%v", path, result, store.removed)
	}
}

func TestImageSlot_ClaimedUploadSurvivesSweep(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	reaper := NewMediaReaper(pending, store, logging.NewNop(), 0, 1)
	slot := imageSlot{kind: "players", store: store, reaper: reaper, logger: logging.NewNop()}
	players := memory.NewPlayerRepository(pending)

	path, err := slot.stage(context.Background(), pngUpload())
	if err != nil {
		t.Fatalf("stage upload: %v", err)
	}
	if err := players.Create(context.Background(), player.Player{ID: "p1", ImagePath: path}); err != nil {
		t.Fatalf("create player: %v", err)
	}

	result, err := reaper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Scanned != 0 || store.wasRemoved(path) {
		t.Fatalf("expected claimed upload kept, got %+v removed=%v", result, store.removed)
	}
}
