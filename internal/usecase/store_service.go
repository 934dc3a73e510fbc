package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

type StoreItemInput struct {
	Name        string
	Price       float64
	Stock       int
	Status      string
	Description string
	Category    string
	Sizes       []string
	Image       *ImageUpload
	RemoveImage bool
}

type StoreService struct {
	storeRepo storeitem.Repository
	images    imageSlot
	idGen     idgen.Generator
	now       func() time.Time
}

func NewStoreService(storeRepo storeitem.Repository, store MediaStore, reaper *MediaReaper, idGen idgen.Generator, logger *logging.Logger) *StoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StoreService{
		storeRepo: storeRepo,
		images:    imageSlot{kind: "store", store: store, reaper: reaper, logger: logger},
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *StoreService) List(ctx context.Context) ([]storeitem.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StoreService.List")
	defer span.End()

	items, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list store items: %w", err)
	}
	return items, nil
}

func (s *StoreService) Create(ctx context.Context, input StoreItemInput) (storeitem.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StoreService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return storeitem.Item{}, fmt.Errorf("generate store item id: %w", err)
	}
	now := s.now().UTC()
	item, err := applyStoreInput(storeitem.Item{ID: id, CreatedAt: now}, input)
	if err != nil {
		return storeitem.Item{}, err
	}
	item.UpdatedAt = now

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return storeitem.Item{}, err
	}
	item.ImagePath = staged

	if err := s.storeRepo.Create(ctx, item); err != nil {
		s.images.discard(ctx, staged)
		return storeitem.Item{}, fmt.Errorf("create store item: %w", err)
	}

	return item, nil
}

func (s *StoreService) Update(ctx context.Context, id string, input StoreItemInput) (storeitem.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StoreService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	current, exists, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return storeitem.Item{}, fmt.Errorf("get store item: %w", err)
	}
	if !exists {
		return storeitem.Item{}, fmt.Errorf("%w: store item=%s", ErrNotFound, id)
	}

	item, err := applyStoreInput(current, input)
	if err != nil {
		return storeitem.Item{}, err
	}
	item.UpdatedAt = s.now().UTC()

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return storeitem.Item{}, err
	}
	change := imageChange(staged, input.RemoveImage)

	previous, exists, err := s.storeRepo.Update(ctx, item, change)
	if err != nil {
		s.images.discard(ctx, staged)
		return storeitem.Item{}, fmt.Errorf("update store item: %w", err)
	}
	if !exists {
		s.images.discard(ctx, staged)
		return storeitem.Item{}, fmt.Errorf("%w: store item=%s", ErrNotFound, id)
	}
	item.ImagePath = change.Apply(previous.ImagePath)
	s.images.settle(ctx, previous.ImagePath, item.ImagePath)

	return item, nil
}

func (s *StoreService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StoreService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	deleted, exists, err := s.storeRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete store item: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: store item=%s", ErrNotFound, id)
	}
	s.images.settle(ctx, deleted.ImagePath, "")

	return nil
}

// applyStoreInput copies mutable fields and derives the stock status.
// Only Discontinued may be requested explicitly; other statuses follow the stock count.
func applyStoreInput(item storeitem.Item, input StoreItemInput) (storeitem.Item, error) {
	requested := storeitem.Status(strings.TrimSpace(input.Status))
	switch requested {
	case "", storeitem.StatusInStock, storeitem.StatusLowStock, storeitem.StatusOutOfStock, storeitem.StatusDiscontinued:
	default:
		return storeitem.Item{}, fmt.Errorf("%w: invalid store item status: %s", ErrInvalidInput, requested)
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Price = storeitem.RoundPrice(input.Price)
	item.Stock = input.Stock
	item.Status = storeitem.DeriveStatus(input.Stock, requested)
	item.Description = strings.TrimSpace(input.Description)
	item.Category = storeitem.Category(strings.TrimSpace(input.Category))
	item.Sizes = make([]storeitem.Size, 0, len(input.Sizes))
	for _, size := range input.Sizes {
		item.Sizes = append(item.Sizes, storeitem.Size(strings.ToUpper(strings.TrimSpace(size))))
	}

	if err := item.Validate(); err != nil {
		return storeitem.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return item, nil
}
