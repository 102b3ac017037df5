package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/review"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoadBooksCmd fetches the whole catalog
func LoadBooksCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.FetchBooks(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading books"}
		}
		return BooksLoadedMsg{Books: books}
	}
}

// LoadOwnershipCmd fetches ownership flags for the given books, tagged with
// the lookup batch they were requested under
func LoadOwnershipCmd(svc *catalog.Service, isbns []string, batch uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OwnershipLoadedMsg{Batch: batch, Owned: svc.FetchOwnership(ctx, isbns)}
	}
}

// PurchaseCmd buys book if answer is its exact ISBN
func PurchaseCmd(svc *catalog.Service, book domain.Book, answer domain.DialogResult) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.ConfirmPurchase(ctx, book, answer)
		return OutcomeMsg{Action: ActionPurchase, ISBN: book.ISBN, Outcome: out}
	}
}

// DownloadCmd fetches book's download link and opens it
func DownloadCmd(svc *catalog.Service, book domain.Book) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.Download(ctx, book)
		return OutcomeMsg{Action: ActionDownload, ISBN: book.ISBN, Outcome: out}
	}
}

// LoadReviewsCmd fetches the reviews of one book
func LoadReviewsCmd(svc *review.Service, isbn string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reviews, err := svc.Fetch(ctx, isbn)
		return ReviewsLoadedMsg{ISBN: isbn, Reviews: reviews, Err: err}
	}
}

// PostReviewCmd posts a review of the book with the given ISBN
func PostReviewCmd(svc *review.Service, isbn string, rating int, comment string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.Post(ctx, isbn, rating, comment)
		return OutcomeMsg{Action: ActionPostReview, ISBN: isbn, Outcome: out}
	}
}

// CreateBookCmd adds a book to the catalog
func CreateBookCmd(svc *admin.Service, input domain.BookInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.Create(ctx, input)
		return OutcomeMsg{Action: ActionCreateBook, ISBN: input.ISBN, Outcome: out}
	}
}

// UpdateBookCmd replaces the record with the given ISBN
func UpdateBookCmd(svc *admin.Service, isbn string, input domain.BookInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.Update(ctx, isbn, input)
		return OutcomeMsg{Action: ActionUpdateBook, ISBN: isbn, Outcome: out}
	}
}

// DeleteBookCmd removes book if answer is its exact ISBN
func DeleteBookCmd(svc *admin.Service, book domain.Book, answer domain.DialogResult) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.ConfirmDelete(ctx, book, answer)
		return OutcomeMsg{Action: ActionDeleteBook, ISBN: book.ISBN, Outcome: out}
	}
}

// LoginCmd signs in
func LoginCmd(svc *account.Service, creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OutcomeMsg{Action: ActionLogin, Outcome: svc.Login(ctx, creds)}
	}
}

// RegisterCmd creates an account
func RegisterCmd(svc *account.Service, reg domain.Registration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out := svc.Register(ctx, reg)
		return OutcomeMsg{Action: ActionRegister, Outcome: out, Credentials: reg.Credentials}
	}
}

// LogoutCmd signs out
func LogoutCmd(svc *account.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OutcomeMsg{Action: ActionLogout, Outcome: svc.Logout(ctx)}
	}
}

// DeleteAccountCmd deletes the signed-in account after the typed checks
func DeleteAccountCmd(svc *account.Service, creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OutcomeMsg{Action: ActionDeleteAccount, Outcome: svc.ConfirmDeleteAccount(ctx, creds)}
	}
}

// BalanceCmd fetches the account balance
func BalanceCmd(svc *account.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OutcomeMsg{Action: ActionBalance, Outcome: svc.Balance(ctx)}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
