package postgres

import "time"

type newsTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	ImagePath string     `db:"image_path"`
	Category  string     `db:"category"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type newsInsertModel struct {
	PublicID  string    `db:"public_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	ImagePath string    `db:"image_path"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
