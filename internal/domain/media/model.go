package media

import (
	"context"
	"time"
)

// Deletion marks an uploaded file that no record references anymore.
type Deletion struct {
	Path        string
	RequestedAt time.Time
}

// Repository tracks pending file deletions until the file is gone.
type Repository interface {
	Enqueue(ctx context.Context, paths ...string) error
	ListPending(ctx context.Context, requestedBefore time.Time, limit int) ([]Deletion, error)
	Resolve(ctx context.Context, paths ...string) error
}

// ImageChange describes what a write does to a record's image. The zero value
// keeps whatever path is stored when the write is applied.
type ImageChange struct {
	Replace bool
	Path    string
}

func KeepImage() ImageChange {
	return ImageChange{}
}

// ReplaceImage sets the image to path. An empty path removes the image.
func ReplaceImage(path string) ImageChange {
	return ImageChange{Replace: true, Path: path}
}

// Apply returns the path a record carries once the change is written over stored.
func (c ImageChange) Apply(stored string) string {
	if c.Replace {
		return c.Path
	}
	return stored
}
