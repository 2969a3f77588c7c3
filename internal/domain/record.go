package domain

import "time"

// DefaultPhotoCaption replaces a blank caption at photo creation time.
const DefaultPhotoCaption = "Eco-friendly activity"

// ActivityRecord is the immutable log entry for a single eco-friendly
// activity. Points are computed once at creation and never recomputed,
// even if the category table changes later.
type ActivityRecord struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	Points          int       `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
}

// PhotoRecord is the immutable log entry for a captured photo. ImageRef is
// an opaque reference to the image data; nothing in this package interprets
// or decodes it.
type PhotoRecord struct {
	ID        string    `json:"id"`
	ImageRef  string    `json:"image_ref"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
