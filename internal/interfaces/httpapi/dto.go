package httpapi

import (
	"context"
	"path"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/account"
	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

const uploadsURLPrefix = "/uploads/"

type readinessDTO struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Attempts    int    `json:"attempts,omitempty"`
	LastChecked string `json:"lastChecked,omitempty"`
	LastError   string `json:"lastError,omitempty"`
}

type deletedDTO struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

type accountDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
}

type authDTO struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expiresAt"`
	User      accountDTO `json:"user"`
}

type playerStatsDTO struct {
	Kills  int `json:"kills"`
	Aces   int `json:"aces"`
	Digs   int `json:"digs"`
	Blocks int `json:"blocks"`
}

type playerDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Positions    []string       `json:"positions"`
	JerseyNumber int            `json:"jerseyNumber"`
	Age          int            `json:"age"`
	Nationality  string         `json:"nationality"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	Stats        playerStatsDTO `json:"stats"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type fixtureDTO struct {
	ID          string   `json:"id"`
	Opponent    string   `json:"opponent"`
	Date        string   `json:"date"`
	Venue       string   `json:"venue"`
	Status      string   `json:"status"`
	Score       scoreDTO `json:"score"`
	Competition string   `json:"competition"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type newsDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type storeItemDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type leagueRowDTO struct {
	ID        string `json:"id"`
	TeamName  string `json:"teamName"`
	Played    int    `json:"played"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Points    int    `json:"points"`
	Position  int    `json:"position"`
	UpdatedAt string `json:"updatedAt"`
}

type adminStatsDTO struct {
	Accounts         int            `json:"accounts"`
	Admins           int            `json:"admins"`
	Players          int            `json:"players"`
	Fixtures         int            `json:"fixtures"`
	FixturesByStatus map[string]int `json:"fixturesByStatus"`
	NextFixture      *fixtureDTO    `json:"nextFixture,omitempty"`
	NewsItems        int            `json:"newsItems"`
	StoreItems       int            `json:"storeItems"`
	LowStockItems    int            `json:"lowStockItems"`
	OutOfStockItems  int            `json:"outOfStockItems"`
	LeagueRows       int            `json:"leagueRows"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func imageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return uploadsURLPrefix + path.Clean(imagePath)
}

func accountToDTO(ctx context.Context, v account.Account) accountDTO {
	_, span := startSpan(ctx, "httpapi.accountToDTO")
	defer span.End()

	out := accountDTO{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Role:      string(v.Role),
		CreatedAt: formatTime(v.CreatedAt),
	}
	if v.LastLoginAt != nil {
		out.LastLoginAt = formatTime(*v.LastLoginAt)
	}
	return out
}

func authToDTO(ctx context.Context, v usecase.AuthResult) authDTO {
	return authDTO{
		Token:     v.Token.Token,
		ExpiresAt: formatTime(v.Token.ExpiresAt),
		User:      accountToDTO(ctx, v.Account),
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	_, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	positions := make([]string, 0, len(v.Positions))
	for _, p := range v.Positions {
		positions = append(positions, string(p))
	}
	return playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		Positions:    positions,
		JerseyNumber: v.JerseyNumber,
		Age:          v.Age,
		Nationality:  v.Nationality,
		ImageURL:     imageURL(v.ImagePath),
		Stats: playerStatsDTO{
			Kills:  v.Stats.Kills,
			Aces:   v.Stats.Aces,
			Digs:   v.Stats.Digs,
			Blocks: v.Stats.Blocks,
		},
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	_, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		ID:          v.ID,
		Opponent:    v.Opponent,
		Date:        formatTime(v.Date),
		Venue:       string(v.Venue),
		Status:      string(v.Status),
		Score:       scoreDTO{Home: v.Score.Home, Away: v.Score.Away},
		Competition: v.Competition,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func newsToDTO(ctx context.Context, v news.Item) newsDTO {
	_, span := startSpan(ctx, "httpapi.newsToDTO")
	defer span.End()

	return newsDTO{
		ID:        v.ID,
		Title:     v.Title,
		Content:   v.Content,
		ImageURL:  imageURL(v.ImagePath),
		Category:  string(v.Category),
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func storeItemToDTO(ctx context.Context, v storeitem.Item) storeItemDTO {
	_, span := startSpan(ctx, "httpapi.storeItemToDTO")
	defer span.End()

	sizes := make([]string, 0, len(v.Sizes))
	for _, s := range v.Sizes {
		sizes = append(sizes, string(s))
	}
	return storeItemDTO{
		ID:          v.ID,
		Name:        v.Name,
		Price:       v.Price,
		Stock:       v.Stock,
		Status:      string(v.Status),
		Description: v.Description,
		ImageURL:    imageURL(v.ImagePath),
		Category:    string(v.Category),
		Sizes:       sizes,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func leagueRowToDTO(ctx context.Context, v leaguerow.Row) leagueRowDTO {
	_, span := startSpan(ctx, "httpapi.leagueRowToDTO")
	defer span.End()

	return leagueRowDTO{
		ID:        v.ID,
		TeamName:  v.TeamName,
		Played:    v.Played,
		Wins:      v.Wins,
		Losses:    v.Losses,
		Points:    v.Points,
		Position:  v.Position,
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func adminStatsToDTO(ctx context.Context, v usecase.DashboardStats) adminStatsDTO {
	byStatus := make(map[string]int, len(fixture.AllStatuses))
	for _, status := range fixture.AllStatuses {
		byStatus[string(status)] = v.FixturesByStatus[status]
	}

	out := adminStatsDTO{
		Accounts:         v.Accounts,
		Admins:           v.Admins,
		Players:          v.Players,
		Fixtures:         v.Fixtures,
		FixturesByStatus: byStatus,
		NewsItems:        v.NewsItems,
		StoreItems:       v.StoreItems,
		LowStockItems:    v.LowStockItems,
		OutOfStockItems:  v.OutOfStockItems,
		LeagueRows:       v.LeagueRows,
	}
	if v.NextFixture != nil {
		next := fixtureToDTO(ctx, *v.NextFixture)
		out.NextFixture = &next
	}
	return out
}
