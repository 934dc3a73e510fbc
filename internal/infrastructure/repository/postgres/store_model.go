package postgres

import (
	"time"

	"github.com/lib/pq"
)

type storeItemTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Price       float64        `db:"price"`
	Stock       int            `db:"stock"`
	Status      string         `db:"status"`
	Description string         `db:"description"`
	ImagePath   string         `db:"image_path"`
	Category    string         `db:"category"`
	Sizes       pq.StringArray `db:"sizes"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type storeItemInsertModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Price       float64        `db:"price"`
	Stock       int            `db:"stock"`
	Status      string         `db:"status"`
	Description string         `db:"description"`
	ImagePath   string         `db:"image_path"`
	Category    string         `db:"category"`
	Sizes       pq.StringArray `db:"sizes"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
