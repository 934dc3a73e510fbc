package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/player"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

type PlayerInput struct {
	Name         string
	Positions    []string
	JerseyNumber int
	Age          int
	Nationality  string
	Stats        player.Stats
	Image        *ImageUpload
	RemoveImage  bool
}

type PlayerService struct {
	playerRepo player.Repository
	images     imageSlot
	idGen      idgen.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, store MediaStore, reaper *MediaReaper, idGen idgen.Generator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		images:     imageSlot{kind: "players", store: store, reaper: reaper, logger: logger},
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	now := s.now().UTC()
	item := applyPlayerInput(player.Player{ID: id, CreatedAt: now}, input)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return player.Player{}, err
	}
	item.ImagePath = staged

	if err := s.playerRepo.Create(ctx, item); err != nil {
		s.images.discard(ctx, staged)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, id string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	current, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}

	item := applyPlayerInput(current, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return player.Player{}, err
	}
	change := imageChange(staged, input.RemoveImage)

	previous, exists, err := s.playerRepo.Update(ctx, item, change)
	if err != nil {
		s.images.discard(ctx, staged)
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if !exists {
		s.images.discard(ctx, staged)
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}
	item.ImagePath = change.Apply(previous.ImagePath)
	s.images.settle(ctx, previous.ImagePath, item.ImagePath)

	return item, nil
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	deleted, exists, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}
	s.images.settle(ctx, deleted.ImagePath, "")

	return nil
}

func applyPlayerInput(item player.Player, input PlayerInput) player.Player {
	item.Name = strings.TrimSpace(input.Name)
	item.JerseyNumber = input.JerseyNumber
	item.Age = input.Age
	item.Nationality = strings.TrimSpace(input.Nationality)
	item.Stats = input.Stats
	item.Positions = make([]player.Position, 0, len(input.Positions))
	for _, pos := range input.Positions {
		item.Positions = append(item.Positions, player.Position(strings.TrimSpace(pos)))
	}
	return item
}
