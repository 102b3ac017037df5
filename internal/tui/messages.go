package tui

import (
	"github.com/mmcdole/folio/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// BooksLoadedMsg signals that the catalog has been fetched
type BooksLoadedMsg struct {
	Books []domain.Book
}

// OwnershipLoadedMsg carries ownership flags for some books.
// Books whose lookup failed are absent.
type OwnershipLoadedMsg struct {
	Batch uint64
	Owned map[string]bool
}

// ReviewsLoadedMsg signals that a book's reviews have been fetched
type ReviewsLoadedMsg struct {
	ISBN    string
	Reviews []domain.Review
	Err     error
}

// Action names the user action an OutcomeMsg reports on
type Action int

const (
	ActionPurchase Action = iota
	ActionDownload
	ActionPostReview
	ActionCreateBook
	ActionUpdateBook
	ActionDeleteBook
	ActionLogin
	ActionRegister
	ActionLogout
	ActionDeleteAccount
	ActionBalance
)

// OutcomeMsg reports how a user action ended
type OutcomeMsg struct {
	Action  Action
	ISBN    string // book acted on, if any
	Outcome domain.Outcome

	// Credentials of a successful registration, kept for the login offer
	Credentials domain.Credentials
}

// StatusMsg shows a status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

// TickMsg is sent periodically for spinner animation
type TickMsg struct{}
