package model

import "time"

// Category is a user-defined grouping label for tasks.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Color is a hex color used when rendering the category label.
	Color string `json:"color" db:"color"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
