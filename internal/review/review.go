// Package review loads, pages and posts book reviews.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/folio/internal/domain"
)

// DefaultPerPage is how many reviews a page shows
const DefaultPerPage = 2

const (
	MsgIncomplete = "Please provide both a rating and a comment before submitting your review."
	MsgEmpty      = "No reviews yet. Be the first person to review this book."
	MsgPosted     = "Review posted."
	MsgPostFailed = "Error posting the review. Please try again later."
)

// View is the paged review list of one book
type View struct {
	isbn    string
	reviews []domain.Review
	page    int
	perPage int
}

// NewView creates an empty view for a book
func NewView(isbn string, perPage int) *View {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &View{isbn: isbn, page: 1, perPage: perPage}
}

func (v *View) ISBN() string             { return v.isbn }
func (v *View) Reviews() []domain.Review { return v.reviews }
func (v *View) Page() int                { return v.page }

// SetReviews replaces the list and returns to page 1
func (v *View) SetReviews(reviews []domain.Review) {
	v.reviews = reviews
	v.page = 1
}

// ChangePage moves to page n
func (v *View) ChangePage(n int) {
	v.page = n
}

// TotalPages returns how many pages the reviews span
func (v *View) TotalPages() int {
	return (len(v.reviews) + v.perPage - 1) / v.perPage
}

// ShowPagination reports whether the pager is worth drawing
func (v *View) ShowPagination() bool {
	return v.TotalPages() > 1
}

// Displayed returns the current page of reviews
func (v *View) Displayed() []domain.Review {
	start := (v.page - 1) * v.perPage
	if start < 0 || start >= len(v.reviews) {
		return nil
	}
	end := min(start+v.perPage, len(v.reviews))
	return v.reviews[start:end]
}

// Service talks to the review endpoints
type Service struct {
	repo   domain.ReviewRepository
	logger *slog.Logger
}

// NewService creates a new review service
func NewService(repo domain.ReviewRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Fetch loads a book's reviews. On error the caller keeps an empty list.
func (s *Service) Fetch(ctx context.Context, isbn string) ([]domain.Review, error) {
	reviews, err := s.repo.GetReviews(ctx, isbn)
	if err != nil {
		s.logger.Error("error fetching reviews", "isbn", isbn, "error", err)
		return nil, fmt.Errorf("fetching reviews: %w", err)
	}
	return reviews, nil
}

// Post submits a review. Incomplete input is refused locally and sends nothing.
func (s *Service) Post(ctx context.Context, isbn string, rating int, comment string) domain.Outcome {
	input := domain.ReviewInput{Rating: rating, Comment: strings.TrimSpace(comment)}
	if input.Rating == 0 || input.Comment == "" {
		return domain.Cancelled(MsgIncomplete, domain.ErrInvalidInput)
	}
	if err := domain.Validate(input); err != nil {
		return domain.Cancelled(err.Error(), err)
	}

	msg, err := s.repo.PostReview(ctx, isbn, input)
	if err != nil {
		s.logger.Error("error posting review", "isbn", isbn, "error", err)
		if text := domain.AlertText(err, ""); text != "" {
			return domain.Outcome{Kind: domain.OutcomeRejected, Message: text, Err: err, Responded: true}
		}
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: MsgPostFailed, Err: err}
	}

	if msg == "" {
		msg = MsgPosted
	}
	s.logger.Info("review posted", "isbn", isbn, "rating", rating)
	return domain.Succeeded(msg)
}

// PostAndRefresh posts a review and, when the server answered, reloads the
// view's list and resets it to page 1.
func (s *Service) PostAndRefresh(ctx context.Context, v *View, rating int, comment string) domain.Outcome {
	out := s.Post(ctx, v.ISBN(), rating, comment)
	if out.Responded {
		reviews, _ := s.Fetch(ctx, v.ISBN())
		v.SetReviews(reviews)
	}
	return out
}
