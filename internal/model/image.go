package model

import (
	"time"
)

// Image is one generated picture together with all of its styled renders.
// OwnerEmail never changes after creation; renders are always derived from
// Original, never from another render.
type Image struct {
	ID         string    `db:"id"`
	OwnerEmail string    `db:"owner_email"`
	Prompt     string    `db:"prompt"`
	Original   []byte    `db:"original"`
	CreatedAt  time.Time `db:"created_at"`

	// Loaded separately (not a column)
	Styles []StyleRender `db:"-"`
}

// StyleRender is a styled derivative of an image, keyed by style name.
// Re-applying the same style overwrites the previous render.
type StyleRender struct {
	ImageID   string    `db:"image_id"`
	Style     string    `db:"style"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}
