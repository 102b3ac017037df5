package domain

import (
	"context"
)

// CatalogRepository provides read access to the book catalog
type CatalogRepository interface {
	// GetBooks returns the full catalog
	GetBooks(ctx context.Context) ([]Book, error)
}

// PurchaseRepository provides ownership, purchase and download operations
type PurchaseRepository interface {
	// OwnershipStatus reports whether the signed-in user owns the book
	OwnershipStatus(ctx context.Context, isbn string) (bool, error)

	// BuyBook purchases the book and returns the server's message
	BuyBook(ctx context.Context, isbn string) (string, error)

	// DownloadLink returns the download URL, or "" when none is available
	DownloadLink(ctx context.Context, isbn string) (string, error)
}

// ReviewRepository provides access to book reviews
type ReviewRepository interface {
	// GetReviews returns all reviews for a book
	GetReviews(ctx context.Context, isbn string) ([]Review, error)

	// PostReview submits a review and returns the server's message
	PostReview(ctx context.Context, isbn string, input ReviewInput) (string, error)
}

// AdminRepository provides catalog record management (admin only)
type AdminRepository interface {
	CreateBook(ctx context.Context, input BookInput) (string, error)
	UpdateBook(ctx context.Context, isbn string, input BookInput) (string, error)
	DeleteBook(ctx context.Context, book Book) (string, error)
}

// AuthRepository provides account operations
type AuthRepository interface {
	Login(ctx context.Context, creds Credentials) (string, error)
	Register(ctx context.Context, creds Credentials) (string, error)
	Logout(ctx context.Context) (string, error)
	DeleteAccount(ctx context.Context, creds Credentials) (string, error)
	Balance(ctx context.Context) (float64, error)
}

// Bookstore combines every repository the remote API implements
type Bookstore interface {
	CatalogRepository
	PurchaseRepository
	ReviewRepository
	AdminRepository
	AuthRepository
}
