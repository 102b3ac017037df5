package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/folio/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxOwnershipLookups bounds concurrent ownership requests
const maxOwnershipLookups = 4

// Alert texts shown when a user-initiated action fails
const (
	MsgPurchaseCanceled   = "Purchase canceled. ISBN did not match."
	MsgPurchaseFailed     = "Error purchasing the book. Please try again later."
	MsgPurchaseSent       = "Purchase request sent."
	MsgNoDownloadLink     = "Download link not available."
	MsgDownloadFailed     = "Error fetching download link. Please try again later."
	MsgDownloadOpenFailed = "Unable to open the download link. Please check your browser settings."
	MsgDownloadOpened     = "Download link opened in your browser."
)

// Service orchestrates catalog fetches and per-book actions
type Service struct {
	catalog   domain.CatalogRepository
	purchases domain.PurchaseRepository
	opener    domain.URLOpener
	logger    *slog.Logger
}

// NewService creates a new catalog service
func NewService(
	catalog domain.CatalogRepository,
	purchases domain.PurchaseRepository,
	opener domain.URLOpener,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:   catalog,
		purchases: purchases,
		opener:    opener,
		logger:    logger,
	}
}

// FetchBooks loads the full catalog. Callers keep an empty list on error.
func (s *Service) FetchBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.catalog.GetBooks(ctx)
	if err != nil {
		s.logger.Error("error fetching books", "error", err)
		return nil, fmt.Errorf("fetching books: %w", err)
	}
	s.logger.Debug("fetched books", "count", len(books))
	return books, nil
}

// FetchOwnership looks up each isbn independently. Failed lookups are logged
// and left out of the result, so their status stays unknown.
func (s *Service) FetchOwnership(ctx context.Context, isbns []string) map[string]bool {
	result := make(map[string]bool, len(isbns))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOwnershipLookups)

	for _, isbn := range isbns {
		isbn := isbn
		g.Go(func() error {
			owned, err := s.purchases.OwnershipStatus(gctx, isbn)
			if err != nil {
				s.logger.Warn("error fetching ownership status", "isbn", isbn, "error", err)
				return nil
			}
			mu.Lock()
			result[isbn] = owned
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// PurchasePrompt builds the confirmation question for buying a book
func PurchasePrompt(book domain.Book) domain.Prompt {
	return domain.Prompt{
		Message: fmt.Sprintf(
			"You are about to buy the book %q for %s. To confirm, please type the ISBN number:",
			book.Title, book.FormattedPrice()),
	}
}

// ConfirmPurchase buys the book iff answer matches its ISBN exactly
func (s *Service) ConfirmPurchase(ctx context.Context, book domain.Book, answer domain.DialogResult) domain.Outcome {
	if !answer.Matches(book.ISBN) {
		s.logger.Info("purchase canceled", "isbn", book.ISBN, "cancelled", answer.Cancelled)
		return domain.Cancelled(MsgPurchaseCanceled, domain.ErrConfirmationMismatch)
	}

	msg, err := s.purchases.BuyBook(ctx, book.ISBN)
	if err != nil {
		s.logger.Error("error purchasing book", "isbn", book.ISBN, "error", err)
		if text := domain.AlertText(err, ""); text != "" {
			return domain.Outcome{Kind: domain.OutcomeRejected, Message: text, Err: err, Responded: true}
		}
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: MsgPurchaseFailed, Err: err}
	}

	if msg == "" {
		msg = MsgPurchaseSent
	}
	s.logger.Info("purchase completed", "isbn", book.ISBN, "message", msg)
	return domain.Succeeded(msg)
}

// Purchase runs the full purchase flow through a dialog
func (s *Service) Purchase(ctx context.Context, book domain.Book, dialog domain.Dialog) domain.Outcome {
	answer := dialog.Prompt(ctx, PurchasePrompt(book))
	outcome := s.ConfirmPurchase(ctx, book, answer)
	dialog.Alert(outcome.Message)
	return outcome
}

// Download fetches the book's download link and opens it
func (s *Service) Download(ctx context.Context, book domain.Book) domain.Outcome {
	link, err := s.purchases.DownloadLink(ctx, book.ISBN)
	if err != nil {
		s.logger.Error("error fetching download link", "isbn", book.ISBN, "error", err)
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: domain.AlertText(err, MsgDownloadFailed), Err: err}
	}

	if link == "" {
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: MsgNoDownloadLink, Responded: true}
	}

	if err := s.opener.Open(link); err != nil {
		s.logger.Error("failed to open download link", "isbn", book.ISBN, "error", err)
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: MsgDownloadOpenFailed, Err: err, Responded: true}
	}

	s.logger.Info("opened download link", "isbn", book.ISBN)
	return domain.Succeeded(MsgDownloadOpened)
}

// DownloadWith runs Download and alerts the result through a dialog
func (s *Service) DownloadWith(ctx context.Context, book domain.Book, dialog domain.Dialog) domain.Outcome {
	outcome := s.Download(ctx, book)
	dialog.Alert(outcome.Message)
	return outcome
}
