package model

import "time"

// Brand represents a brand shown in the catalogue directory.
type Brand struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Logo        string    `json:"logo" db:"logo"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// BrandInput is the brand payload submitted alongside the logo upload.
type BrandInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
