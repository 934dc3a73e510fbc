package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
)

type LeagueRowInput struct {
	TeamName string
	Played   int
	Wins     int
	Losses   int
	Points   int
	Position int
}

type LeagueService struct {
	leagueRepo leaguerow.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(leagueRepo leaguerow.Repository, idGen idgen.Generator) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) List(ctx context.Context) ([]leaguerow.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.List")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league rows: %w", err)
	}
	return items, nil
}

func (s *LeagueService) Create(ctx context.Context, input LeagueRowInput) (leaguerow.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return leaguerow.Row{}, fmt.Errorf("generate league row id: %w", err)
	}
	item := applyLeagueInput(leaguerow.Row{ID: id}, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return leaguerow.Row{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return leaguerow.Row{}, fmt.Errorf("create league row: %w", err)
	}
	return item, nil
}

func (s *LeagueService) Update(ctx context.Context, id string, input LeagueRowInput) (leaguerow.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return leaguerow.Row{}, fmt.Errorf("%w: league row id is required", ErrInvalidInput)
	}
	item := applyLeagueInput(leaguerow.Row{ID: id}, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return leaguerow.Row{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.leagueRepo.Update(ctx, item)
	if err != nil {
		return leaguerow.Row{}, fmt.Errorf("update league row: %w", err)
	}
	if !updated {
		return leaguerow.Row{}, fmt.Errorf("%w: league row=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *LeagueService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	deleted, err := s.leagueRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete league row: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: league row=%s", ErrNotFound, id)
	}
	return nil
}

func applyLeagueInput(item leaguerow.Row, input LeagueRowInput) leaguerow.Row {
	item.TeamName = strings.TrimSpace(input.TeamName)
	item.Played = input.Played
	item.Wins = input.Wins
	item.Losses = input.Losses
	item.Points = input.Points
	item.Position = input.Position
	return item
}
