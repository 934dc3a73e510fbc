package news

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryMatchReport     Category = "Match Report"
	CategoryClubNews        Category = "Club News"
	CategoryPlayerSpotlight Category = "Player Spotlight"
	CategoryCommunity       Category = "Community"
	CategoryAnnouncement    Category = "Announcement"
)

var AllCategories = map[Category]struct{}{
	CategoryMatchReport:     {},
	CategoryClubNews:        {},
	CategoryPlayerSpotlight: {},
	CategoryCommunity:       {},
	CategoryAnnouncement:    {},
}

// Item is a published news article.
type Item struct {
	ID        string
	Title     string
	Content   string
	ImagePath string
	Category  Category
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n Item) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("news id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("news title is required")
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("news content is required")
	}
	if _, ok := AllCategories[n.Category]; !ok {
		return fmt.Errorf("invalid news category: %s", n.Category)
	}

	return nil
}
