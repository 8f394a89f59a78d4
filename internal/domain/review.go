package domain

import "time"

// Ratings are whole stars
const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's rating and tasting notes for a catalog whiskey
type Review struct {
	ID           string    `json:"id"`
	WhiskeyID    string    `json:"whiskeyId"`
	UserID       string    `json:"userId"`
	Rating       int       `json:"rating"`
	TastingNotes string    `json:"tastingNotes,omitempty"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewInput is the user-supplied part of a new review
type ReviewInput struct {
	Rating       int      `json:"rating"`
	TastingNotes string   `json:"tastingNotes"`
	Tags         []string `json:"tags"`
}

// ReviewUpdate changes only the fields that are set
type ReviewUpdate struct {
	Rating       *int      `json:"rating"`
	TastingNotes *string   `json:"tastingNotes"`
	Tags         *[]string `json:"tags"`
}

// Favorite marks a catalog whiskey as saved by a user
type Favorite struct {
	WhiskeyID string    `json:"whiskeyId"`
	CreatedAt time.Time `json:"createdAt"`
	Whiskey   Whiskey   `json:"whiskey"`
}

// Page bounds a listing. Zero values take the store defaults.
type Page struct {
	Limit  int
	Offset int
}
