package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/mmcdole/folio/internal/domain"
)

// Bookstore is an in-memory domain.Bookstore. Canned answers are set on the
// exported fields; every call is recorded in Calls.
type Bookstore struct {
	mu sync.Mutex

	Books      []domain.Book
	BooksErr   error
	Owned      map[string]bool
	OwnedErr   map[string]error
	BuyMessage string
	BuyErr     error
	Links      map[string]string
	LinkErr    error

	Reviews      map[string][]domain.Review
	ReviewsErr   error
	PostMessage  string
	PostErr      error
	PostedReview []domain.ReviewInput

	AdminMessage string
	AdminErr     error
	Created      []domain.BookInput
	Updated      map[string]domain.BookInput
	Deleted      []domain.Book

	AuthMessage    string
	AuthErr        error
	LoggedIn       []domain.Credentials
	Registered     []domain.Credentials
	DeletedAccount []domain.Credentials
	LogoutCount    int
	BalanceValue   float64
	BalanceErr     error

	Calls []string
}

func (b *Bookstore) record(call string) {
	b.mu.Lock()
	b.Calls = append(b.Calls, call)
	b.mu.Unlock()
}

// CallCount returns how many times call was made
func (b *Bookstore) CallCount(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (b *Bookstore) GetBooks(context.Context) ([]domain.Book, error) {
	b.record("GetBooks")
	if b.BooksErr != nil {
		return nil, b.BooksErr
	}
	return b.Books, nil
}

func (b *Bookstore) OwnershipStatus(_ context.Context, isbn string) (bool, error) {
	b.record("OwnershipStatus:" + isbn)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.OwnedErr[isbn]; err != nil {
		return false, err
	}
	return b.Owned[isbn], nil
}

func (b *Bookstore) BuyBook(_ context.Context, isbn string) (string, error) {
	b.record("BuyBook:" + isbn)
	return b.BuyMessage, b.BuyErr
}

func (b *Bookstore) DownloadLink(_ context.Context, isbn string) (string, error) {
	b.record("DownloadLink:" + isbn)
	if b.LinkErr != nil {
		return "", b.LinkErr
	}
	return b.Links[isbn], nil
}

func (b *Bookstore) GetReviews(_ context.Context, isbn string) ([]domain.Review, error) {
	b.record("GetReviews:" + isbn)
	if b.ReviewsErr != nil {
		return nil, b.ReviewsErr
	}
	return b.Reviews[isbn], nil
}

func (b *Bookstore) PostReview(_ context.Context, isbn string, input domain.ReviewInput) (string, error) {
	b.record("PostReview:" + isbn)
	if b.PostErr != nil {
		return "", b.PostErr
	}
	b.PostedReview = append(b.PostedReview, input)
	return b.PostMessage, nil
}

func (b *Bookstore) CreateBook(_ context.Context, input domain.BookInput) (string, error) {
	b.record("CreateBook")
	if b.AdminErr != nil {
		return "", b.AdminErr
	}
	b.Created = append(b.Created, input)
	return b.AdminMessage, nil
}

func (b *Bookstore) UpdateBook(_ context.Context, isbn string, input domain.BookInput) (string, error) {
	b.record("UpdateBook:" + isbn)
	if b.AdminErr != nil {
		return "", b.AdminErr
	}
	if b.Updated == nil {
		b.Updated = make(map[string]domain.BookInput)
	}
	b.Updated[isbn] = input
	return b.AdminMessage, nil
}

func (b *Bookstore) DeleteBook(_ context.Context, book domain.Book) (string, error) {
	b.record("DeleteBook:" + book.ISBN)
	if b.AdminErr != nil {
		return "", b.AdminErr
	}
	b.Deleted = append(b.Deleted, book)
	return b.AdminMessage, nil
}

func (b *Bookstore) Login(_ context.Context, creds domain.Credentials) (string, error) {
	b.record("Login")
	if b.AuthErr != nil {
		return "", b.AuthErr
	}
	b.LoggedIn = append(b.LoggedIn, creds)
	return b.AuthMessage, nil
}

func (b *Bookstore) Register(_ context.Context, creds domain.Credentials) (string, error) {
	b.record("Register")
	if b.AuthErr != nil {
		return "", b.AuthErr
	}
	b.Registered = append(b.Registered, creds)
	return b.AuthMessage, nil
}

func (b *Bookstore) Logout(context.Context) (string, error) {
	b.record("Logout")
	if b.AuthErr != nil {
		return "", b.AuthErr
	}
	b.LogoutCount++
	return b.AuthMessage, nil
}

func (b *Bookstore) DeleteAccount(_ context.Context, creds domain.Credentials) (string, error) {
	b.record("DeleteAccount")
	if b.AuthErr != nil {
		return "", b.AuthErr
	}
	b.DeletedAccount = append(b.DeletedAccount, creds)
	return b.AuthMessage, nil
}

func (b *Bookstore) Balance(context.Context) (float64, error) {
	b.record("Balance")
	return b.BalanceValue, b.BalanceErr
}

// Books builds n numbered books with ISBNs "isbn-1".."isbn-n"
func Books(n int) []domain.Book {
	books := make([]domain.Book, n)
	for i := range books {
		num := strconv.Itoa(i + 1)
		books[i] = domain.Book{
			ID:     uint(i + 1),
			ISBN:   "isbn-" + num,
			Title:  "Book " + num,
			Author: "Author " + num,
			Price:  9.99,
		}
	}
	return books
}
