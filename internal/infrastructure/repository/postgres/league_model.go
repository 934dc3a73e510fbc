package postgres

import "time"

type leagueRowTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	TeamName      string     `db:"team_name"`
	Played        int        `db:"played"`
	Wins          int        `db:"wins"`
	Losses        int        `db:"losses"`
	Points        int        `db:"points"`
	TablePosition int        `db:"table_position"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type leagueRowInsertModel struct {
	PublicID      string    `db:"public_id"`
	TeamName      string    `db:"team_name"`
	Played        int       `db:"played"`
	Wins          int       `db:"wins"`
	Losses        int       `db:"losses"`
	Points        int       `db:"points"`
	TablePosition int       `db:"table_position"`
	UpdatedAt     time.Time `db:"updated_at"`
}
