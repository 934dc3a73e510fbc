package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	"github.com/riskibarqy/volley-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

func newCatalogReaper(t *testing.T, pending *memory.MediaDeletionRepository, store MediaStore) *MediaReaper {
	t.Helper()
	return NewMediaReaper(pending, store, logging.NewNop(), time.Minute, 1)
}

func TestStoreService_DerivesStatusAndRoundsPrice(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewStoreService(memory.NewStoreItemRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	tests := []struct {
		name       string
		stock      int
		status     string
		wantStatus storeitem.Status
	}{
		{name: "plenty", stock: 20, wantStatus: storeitem.StatusInStock},
		{name: "low", stock: storeitem.LowStockThreshold, wantStatus: storeitem.StatusLowStock},
		{name: "empty", stock: 0, status: "In Stock", wantStatus: storeitem.StatusOutOfStock},
		{name: "discontinued sticks", stock: 50, status: "Discontinued", wantStatus: storeitem.StatusDiscontinued},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := svc.Create(context.Background(), StoreItemInput{
				Name:     "Home Jersey",
				Price:    49.999,
				Stock:    tc.stock,
				Status:   tc.status,
				Category: "Jerseys",
				Sizes:    []string{" m ", "xl"},
			})
			if err != nil {
				t.Fatalf("create store item: %v", err)
			}
			if item.Status != tc.wantStatus {
				t.Fatalf("expected status %q, got %q", tc.wantStatus, item.Status)
			}
			if item.Price != 50 {
				t.Fatalf("expected price rounded to 50, got %v", item.Price)
			}
			if len(item.Sizes) != 2 || item.Sizes[0] != "M" || item.Sizes[1] != "XL" {
				t.Fatalf("unexpected sizes: %v", item.Sizes)
			}
		})
	}
}

func TestStoreService_RejectsUnknownStatus(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewStoreService(memory.NewStoreItemRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	_, err := svc.Create(context.Background(), StoreItemInput{
		Name:     "Cap",
		Price:    10,
		Stock:    3,
		Status:   "Backordered",
		Category: "Accessories",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStoreService_UpdateRemovesImageOnRequest(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewStoreService(memory.NewStoreItemRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	input := StoreItemInput{Name: "Ball", Price: 25, Stock: 8, Category: "Equipment", Image: pngUpload()}
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create store item: %v", err)
	}
	if created.ImagePath == "" {
		t.Fatalf("expected stored image")
	}

	input.Image = nil
	input.RemoveImage = true
	updated, err := svc.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("update store item: %v", err)
	}
	if updated.ImagePath != "" {
		t.Fatalf("expected image cleared, got %q", updated.ImagePath)
	}
	if !store.wasRemoved(created.ImagePath) {
		t.Fatalf("expected old image removed")
	}
}

func TestNewsService_SanitizesContent(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewNewsService(memory.NewNewsRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	item, err := svc.Create(context.Background(), NewsInput{
		Title:    "Season opener",
		Content:  `<p>We won!</p><script>alert("x")</script><a href="javascript:alert(1)">link</a>`,
		Category: "Match Report",
	})
	if err != nil {
		t.Fatalf("create news: %v", err)
	}
	if strings.Contains(item.Content, "<script") || strings.Contains(item.Content, "javascript:") {
		t.Fatalf("expected sanitized content, got %q", item.Content)
	}
	if !strings.Contains(item.Content, "<p>We won!</p>") {
		t.Fatalf("expected safe markup kept, got %q", item.Content)
	}

	got, err := svc.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get news: %v", err)
	}
	if got.Title != "Season opener" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
}

func TestNewsService_ContentOnlyScriptIsRejected(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewNewsService(memory.NewNewsRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	_, err := svc.Create(context.Background(), NewsInput{
		Title:    "Empty",
		Content:  `<script>alert(1)</script>`,
		Category: "Club News",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewsService_GetUnknown(t *testing.T) {
	pending := memory.NewMediaDeletionRepository()
	store := newFakeMediaStore()
	svc := NewNewsService(memory.NewNewsRepository(pending), store, newCatalogReaper(t, pending, store), &sequenceIDs{}, logging.NewNop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_DefaultsStatusAndLifecycle(t *testing.T) {
	svc := NewFixtureService(memory.NewFixtureRepository(), &sequenceIDs{})
	svc.now = func() time.Time { return fixedNow }

	created, err := svc.Create(context.Background(), FixtureInput{
		Opponent:    "Harbor Spikers",
		Date:        fixedNow.Add(48 * time.Hour),
		Venue:       "Home",
		Competition: "Regional League",
	})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	if created.Status != fixture.StatusUpcoming {
		t.Fatalf("expected Upcoming default, got %q", created.Status)
	}

	updated, err := svc.Update(context.Background(), created.ID, FixtureInput{
		Opponent:    "Harbor Spikers",
		Date:        created.Date,
		Venue:       "Home",
		Status:      "Completed",
		Score:       fixture.Score{Home: 3, Away: 2},
		Competition: "Regional League",
	})
	if err != nil {
		t.Fatalf("update fixture: %v", err)
	}
	if updated.Status != fixture.StatusCompleted || updated.Score.Home != 3 {
		t.Fatalf("unexpected fixture: %+v", updated)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete fixture: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestFixtureService_RejectsBadVenue(t *testing.T) {
	svc := NewFixtureService(memory.NewFixtureRepository(), &sequenceIDs{})

	_, err := svc.Create(context.Background(), FixtureInput{
		Opponent:    "Dune Diggers",
		Date:        fixedNow,
		Venue:       "Neutral",
		Competition: "Cup",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_ListOrdersByPosition(t *testing.T) {
	svc := NewLeagueService(memory.NewLeagueRowRepository(), &sequenceIDs{})

	for _, in := range []LeagueRowInput{
		{TeamName: "North Block", Played: 4, Wins: 1, Losses: 3, Points: 3, Position: 2},
		{TeamName: "Volley Club", Played: 4, Wins: 3, Losses: 1, Points: 9, Position: 1},
	} {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create league row: %v", err)
		}
	}

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list league rows: %v", err)
	}
	if len(rows) != 2 || rows[0].TeamName != "Volley Club" {
		t.Fatalf("unexpected order: %+v", rows)
	}

	_, err = svc.Create(context.Background(), LeagueRowInput{TeamName: "Bad", Played: 1, Wins: 2, Position: 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
