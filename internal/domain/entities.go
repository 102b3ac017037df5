package domain

import (
	"fmt"
	"strconv"
	"time"
)

// AdminUsername is the account name the server treats as the catalog administrator
const AdminUsername = "admin"

// Book represents a purchasable catalog record
type Book struct {
	ID            uint    // Server-side row identifier (display only)
	ISBN          string  // Unique key used by every endpoint
	Title         string  // Display title
	Author        string  // Author name
	Description   string  // Free-form description (may contain markdown)
	PublishedYear int     // Year of publication (0 if unknown)
	Price         float64 // Price in dollars
	DownloadLink  string  // Only populated for admin edits; the catalog listing omits it
}

// FormattedPrice returns the price the way the storefront displays it
func (b Book) FormattedPrice() string {
	return "$" + strconv.FormatFloat(b.Price, 'f', -1, 64)
}

// YearString returns the published year or an empty string when unknown
func (b Book) YearString() string {
	if b.PublishedYear == 0 {
		return ""
	}
	return strconv.Itoa(b.PublishedYear)
}

// Review is a single user review of a book
type Review struct {
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Stars renders the rating as filled and empty stars out of five
func (r Review) Stars() string {
	const max = 5
	rating := r.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > max {
		rating = max
	}
	out := ""
	for i := 0; i < max; i++ {
		if i < rating {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}

// ReviewInput is the payload for posting a review
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// BookInput is the payload for creating or updating a catalog record
type BookInput struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Description   string  `json:"description"`
	ISBN          string  `json:"isbn" validate:"required"`
	PublishedYear int     `json:"published_year" validate:"gte=0"`
	Price         float64 `json:"price" validate:"gt=0"`
	DownloadLink  string  `json:"download_link" validate:"required,url"`
}

// InputFromBook seeds a BookInput with an existing record's values
func InputFromBook(b Book) BookInput {
	return BookInput{
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		Price:         b.Price,
		DownloadLink:  b.DownloadLink,
	}
}

// Credentials identify a user to the auth endpoints
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is a sign-up request including the client-side password confirmation
type Registration struct {
	Credentials
	ConfirmPassword string
}

// Session is the locally persisted identity of the signed-in user
type Session struct {
	Username string `json:"username"`
}

// IsAdmin reports whether the session belongs to the catalog administrator
func (s Session) IsAdmin() bool {
	return s.Username == AdminUsername
}

// SignedIn reports whether a user is signed in
func (s Session) SignedIn() bool {
	return s.Username != ""
}

// FormatBalance renders an account balance with two decimals
func FormatBalance(balance float64) string {
	return fmt.Sprintf("%.2f", balance)
}
