package postgres

import "time"

type fixtureTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Opponent    string     `db:"opponent"`
	MatchDate   time.Time  `db:"match_date"`
	Venue       string     `db:"venue"`
	Status      string     `db:"status"`
	HomeScore   int        `db:"home_score"`
	AwayScore   int        `db:"away_score"`
	Competition string     `db:"competition"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type fixtureInsertModel struct {
	PublicID    string    `db:"public_id"`
	Opponent    string    `db:"opponent"`
	MatchDate   time.Time `db:"match_date"`
	Venue       string    `db:"venue"`
	Status      string    `db:"status"`
	HomeScore   int       `db:"home_score"`
	AwayScore   int       `db:"away_score"`
	Competition string    `db:"competition"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
