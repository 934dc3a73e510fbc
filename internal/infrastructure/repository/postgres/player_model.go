package postgres

import (
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	Positions    pq.StringArray `db:"positions"`
	JerseyNumber int            `db:"jersey_number"`
	Age          int            `db:"age"`
	Nationality  string         `db:"nationality"`
	ImagePath    string         `db:"image_path"`
	Kills        int            `db:"kills"`
	Aces         int            `db:"aces"`
	Digs         int            `db:"digs"`
	Blocks       int            `db:"blocks"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	Positions    pq.StringArray `db:"positions"`
	JerseyNumber int            `db:"jersey_number"`
	Age          int            `db:"age"`
	Nationality  string         `db:"nationality"`
	ImagePath    string         `db:"image_path"`
	Kills        int            `db:"kills"`
	Aces         int            `db:"aces"`
	Digs         int            `db:"digs"`
	Blocks       int            `db:"blocks"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
