package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

type NewsInput struct {
	Title       string
	Content     string
	Category    string
	Image       *ImageUpload
	RemoveImage bool
}

type NewsService struct {
	newsRepo news.Repository
	images   imageSlot
	policy   *bluemonday.Policy
	idGen    idgen.Generator
	now      func() time.Time
}

func NewNewsService(newsRepo news.Repository, store MediaStore, reaper *MediaReaper, idGen idgen.Generator, logger *logging.Logger) *NewsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NewsService{
		newsRepo: newsRepo,
		images:   imageSlot{kind: "news", store: store, reaper: reaper, logger: logger},
		policy:   bluemonday.UGCPolicy(),
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *NewsService) List(ctx context.Context) ([]news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.List")
	defer span.End()

	items, err := s.newsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *NewsService) Get(ctx context.Context, id string) (news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return news.Item{}, fmt.Errorf("%w: news id is required", ErrInvalidInput)
	}
	item, exists, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return news.Item{}, fmt.Errorf("get news: %w", err)
	}
	if !exists {
		return news.Item{}, fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, input NewsInput) (news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return news.Item{}, fmt.Errorf("generate news id: %w", err)
	}
	now := s.now().UTC()
	item := s.apply(news.Item{ID: id, CreatedAt: now}, input)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return news.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return news.Item{}, err
	}
	item.ImagePath = staged

	if err := s.newsRepo.Create(ctx, item); err != nil {
		s.images.discard(ctx, staged)
		return news.Item{}, fmt.Errorf("create news: %w", err)
	}

	return item, nil
}

func (s *NewsService) Update(ctx context.Context, id string, input NewsInput) (news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Update")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return news.Item{}, err
	}

	item := s.apply(current, input)
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return news.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	staged, err := s.images.stage(ctx, input.Image)
	if err != nil {
		return news.Item{}, err
	}
	change := imageChange(staged, input.RemoveImage)

	previous, exists, err := s.newsRepo.Update(ctx, item, change)
	if err != nil {
		s.images.discard(ctx, staged)
		return news.Item{}, fmt.Errorf("update news: %w", err)
	}
	if !exists {
		s.images.discard(ctx, staged)
		return news.Item{}, fmt.Errorf("%w: news=%s", ErrNotFound, item.ID)
	}
	item.ImagePath = change.Apply(previous.ImagePath)
	s.images.settle(ctx, previous.ImagePath, item.ImagePath)

	return item, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	deleted, exists, err := s.newsRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}
	s.images.settle(ctx, deleted.ImagePath, "")

	return nil
}

func (s *NewsService) apply(item news.Item, input NewsInput) news.Item {
	item.Title = strings.TrimSpace(input.Title)
	item.Content = strings.TrimSpace(s.policy.Sanitize(input.Content))
	item.Category = news.Category(strings.TrimSpace(input.Category))
	return item
}
