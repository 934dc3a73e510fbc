package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/account"
	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	"github.com/sourcegraph/conc/pool"
)

type DashboardStats struct {
	Accounts         int
	Admins           int
	Players          int
	Fixtures         int
	FixturesByStatus map[fixture.Status]int
	NextFixture      *fixture.Fixture
	NewsItems        int
	StoreItems       int
	LowStockItems    int
	OutOfStockItems  int
	LeagueRows       int
}

type AdminService struct {
	accountRepo account.Repository
	playerRepo  player.Repository
	fixtureRepo fixture.Repository
	newsRepo    news.Repository
	storeRepo   storeitem.Repository
	leagueRepo  leaguerow.Repository
	now         func() time.Time
}

func NewAdminService(
	accountRepo account.Repository,
	playerRepo player.Repository,
	fixtureRepo fixture.Repository,
	newsRepo news.Repository,
	storeRepo storeitem.Repository,
	leagueRepo leaguerow.Repository,
) *AdminService {
	return &AdminService{
		accountRepo: accountRepo,
		playerRepo:  playerRepo,
		fixtureRepo: fixtureRepo,
		newsRepo:    newsRepo,
		storeRepo:   storeRepo,
		leagueRepo:  leagueRepo,
		now:         time.Now,
	}
}

// Stats gathers dashboard counters, one repository read per goroutine.
func (s *AdminService) Stats(ctx context.Context) (DashboardStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Stats")
	defer span.End()

	var out DashboardStats
	now := s.now()

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.accountRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count accounts: %w", err)
		}
		out.Accounts = len(items)
		for _, item := range items {
			if item.IsAdmin() {
				out.Admins++
			}
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count players: %w", err)
		}
		out.Players = len(items)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.fixtureRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count fixtures: %w", err)
		}
		out.Fixtures = len(items)
		out.FixturesByStatus = make(map[fixture.Status]int, len(fixture.AllStatuses))
		for _, status := range fixture.AllStatuses {
			out.FixturesByStatus[status] = 0
		}
		for i := range items {
			out.FixturesByStatus[items[i].Status]++
			if items[i].Status != fixture.StatusUpcoming || items[i].Date.Before(now) {
				continue
			}
			if out.NextFixture == nil || items[i].Date.Before(out.NextFixture.Date) {
				next := items[i]
				out.NextFixture = &next
			}
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.newsRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count news: %w", err)
		}
		out.NewsItems = len(items)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.storeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count store items: %w", err)
		}
		out.StoreItems = len(items)
		for _, item := range items {
			switch item.Status {
			case storeitem.StatusLowStock:
				out.LowStockItems++
			case storeitem.StatusOutOfStock:
				out.OutOfStockItems++
			}
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.leagueRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count league rows: %w", err)
		}
		out.LeagueRows = len(items)
		return nil
	})

	if err := p.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}
