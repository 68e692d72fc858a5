package models

import "time"

// Book conditions accepted at listing time.
const (
	ConditionNew  = "new"
	ConditionGood = "good"
	ConditionFair = "fair"
	ConditionWorn = "worn"
)

// Book is a listed copy owned by a user and scoped to a society.
type Book struct {
	ID        string  `bson:"id" json:"id"`
	Title     string  `bson:"title" json:"title"`
	Author    string  `bson:"author" json:"author"`
	ISBN      string  `bson:"isbn,omitempty" json:"isbn,omitempty"`
	Genre     string  `bson:"genre,omitempty" json:"genre,omitempty"`
	Condition string  `bson:"condition" json:"condition"`
	DailyFee  float64 `bson:"daily_fee" json:"dailyFee"`
	CoverURL  string  `bson:"cover_url,omitempty" json:"coverUrl,omitempty"`

	OwnerID   string `bson:"owner_id" json:"ownerId"`
	SocietyID string `bson:"society_id" json:"societyId"`

	// False exactly while an active or overdue rental exists for this book.
	IsAvailable bool `bson:"is_available" json:"isAvailable"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookCreateRequest is the payload for listing a book.
type BookCreateRequest struct {
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	ISBN      string  `json:"isbn,omitempty"`
	Genre     string  `json:"genre,omitempty"`
	Condition string  `json:"condition"`
	DailyFee  float64 `json:"dailyFee"`
	SocietyID string  `json:"societyId"`
}

// BookUpdateRequest carries the mutable listing fields.
type BookUpdateRequest struct {
	Title     string  `json:"title,omitempty"`
	Author    string  `json:"author,omitempty"`
	Genre     string  `json:"genre,omitempty"`
	Condition string  `json:"condition,omitempty"`
	DailyFee  float64 `json:"dailyFee,omitempty"`
}

// BookMetadata is the result of an ISBN catalog lookup.
type BookMetadata struct {
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	Source        string   `json:"source"`
}
