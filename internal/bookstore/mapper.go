package bookstore

import (
	"strings"

	"github.com/mmcdole/folio/internal/domain"
)

// MapBook converts a wire record to a domain Book
func MapBook(b BookDTO) domain.Book {
	return domain.Book{
		ID:            b.ID,
		ISBN:          strings.TrimSpace(b.ISBN),
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		Price:         b.Price,
		DownloadLink:  b.DownloadLink,
	}
}

// MapBooks converts the catalog listing, dropping records without an ISBN
func MapBooks(items []BookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(items))
	for _, item := range items {
		book := MapBook(item)
		if book.ISBN == "" {
			continue
		}
		books = append(books, book)
	}
	return books
}

// MapReviews converts the review listing
func MapReviews(items []ReviewDTO) []domain.Review {
	reviews := make([]domain.Review, len(items))
	for i, r := range items {
		reviews[i] = domain.Review{
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
	}
	return reviews
}

func toDeleteRequest(b domain.Book) deleteBookRequest {
	return deleteBookRequest{
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		Price:         b.Price,
	}
}
