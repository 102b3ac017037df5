package bookstore

import (
	"encoding/json"
	"time"
)

// BookDTO is a catalog record as served by GET /api/books.
// The server embeds gorm.Model, so ID and timestamps use Go field names.
type BookDTO struct {
	ID            uint      `json:"ID"`
	CreatedAt     time.Time `json:"CreatedAt"`
	UpdatedAt     time.Time `json:"UpdatedAt"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	ISBN          string    `json:"isbn"`
	PublishedYear int       `json:"published_year"`
	Price         float64   `json:"price"`
	DownloadLink  string    `json:"download_link,omitempty"`
}

// ReviewDTO is a review as served by GET /api/getReview/{isbn}
type ReviewDTO struct {
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// deleteBookRequest is the body sent with DELETE /api/books/{isbn}
type deleteBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	ISBN          string  `json:"isbn"`
	PublishedYear int     `json:"published_year"`
	Price         float64 `json:"price"`
}

// MessageResponse is the common {message} envelope. The download-link endpoint
// answers {"message": false} when there is no link, so Message accepts a bool too.
type MessageResponse struct {
	Message FlexString `json:"message"`
}

// ErrorResponse is the common {error} envelope for non-2xx answers
type ErrorResponse struct {
	Error string `json:"error"`
}

// OwnershipResponse is the body of GET /api/ownershipStatus/{isbn}
type OwnershipResponse struct {
	Status bool `json:"status"`
}

// BalanceResponse is the body of GET /api/getBalance
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// FlexString decodes a JSON string, and treats any non-string value (false, null) as empty
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = ""
		return nil
	}
	*f = FlexString(s)
	return nil
}
