package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
)

type FixtureInput struct {
	Opponent    string
	Date        time.Time
	Venue       string
	Status      string
	Score       fixture.Score
	Competition string
}

type FixtureService struct {
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewFixtureService(fixtureRepo fixture.Repository, idGen idgen.Generator) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *FixtureService) List(ctx context.Context) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.List")
	defer span.End()

	items, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return items, nil
}

func (s *FixtureService) Create(ctx context.Context, input FixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}
	now := s.now().UTC()
	item := applyFixtureInput(fixture.Fixture{ID: id, CreatedAt: now}, input)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fixtureRepo.Create(ctx, item); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}
	return item, nil
}

func (s *FixtureService) Update(ctx context.Context, id string, input FixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	current, exists, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, id)
	}

	item := applyFixtureInput(current, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.fixtureRepo.Update(ctx, item)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("update fixture: %w", err)
	}
	if !updated {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *FixtureService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	deleted, err := s.fixtureRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: fixture=%s", ErrNotFound, id)
	}
	return nil
}

func applyFixtureInput(item fixture.Fixture, input FixtureInput) fixture.Fixture {
	item.Opponent = strings.TrimSpace(input.Opponent)
	item.Date = input.Date.UTC()
	item.Venue = fixture.Venue(strings.TrimSpace(input.Venue))
	item.Status = fixture.NormalizeStatus(input.Status)
	item.Score = input.Score
	item.Competition = strings.TrimSpace(input.Competition)
	return item
}
