// Package admin manages catalog records for the administrator account.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/folio/internal/domain"
)

// Success messages the server answers with
const (
	MsgCreated = "Book created successfully"
	MsgUpdated = "Book updated successfully"
	MsgDeleted = "Book deleted successfully"
)

const (
	MsgDeleteCanceled = "Deletion canceled. ISBN did not match."
	MsgCreateFailed   = "Error creating the book. Please try again later."
	MsgUpdateFailed   = "Error updating the book. Please try again later."
	MsgDeleteFailed   = "Error deleting the book. Please try again later."
)

// Service performs admin catalog edits
type Service struct {
	repo   domain.AdminRepository
	logger *slog.Logger
}

// NewService creates a new admin service
func NewService(repo domain.AdminRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates input and adds the record
func (s *Service) Create(ctx context.Context, input domain.BookInput) domain.Outcome {
	if err := domain.Validate(input); err != nil {
		return domain.Cancelled("Error: "+err.Error(), err)
	}
	msg, err := s.repo.CreateBook(ctx, input)
	return s.result("create", input.ISBN, msg, err, MsgCreated, MsgCreateFailed)
}

// Update validates input and replaces the record keyed by isbn
func (s *Service) Update(ctx context.Context, isbn string, input domain.BookInput) domain.Outcome {
	input.ISBN = isbn
	if err := domain.Validate(input); err != nil {
		return domain.Cancelled("Error: "+err.Error(), err)
	}
	msg, err := s.repo.UpdateBook(ctx, isbn, input)
	return s.result("update", isbn, msg, err, MsgUpdated, MsgUpdateFailed)
}

// DeletePrompt builds the typed confirmation for deleting book
func DeletePrompt(book domain.Book) domain.Prompt {
	return domain.Prompt{
		Message: fmt.Sprintf("Are you sure you want to delete the book %q? Type the ISBN to confirm:", book.Title),
	}
}

// ConfirmDelete deletes book iff answer matches its ISBN exactly
func (s *Service) ConfirmDelete(ctx context.Context, book domain.Book, answer domain.DialogResult) domain.Outcome {
	if !answer.Matches(book.ISBN) {
		s.logger.Info("deletion canceled", "isbn", book.ISBN)
		return domain.Cancelled(MsgDeleteCanceled, domain.ErrConfirmationMismatch)
	}
	msg, err := s.repo.DeleteBook(ctx, book)
	return s.result("delete", book.ISBN, msg, err, MsgDeleted, MsgDeleteFailed)
}

// Delete runs the delete flow through a dialog
func (s *Service) Delete(ctx context.Context, book domain.Book, dialog domain.Dialog) domain.Outcome {
	out := s.ConfirmDelete(ctx, book, dialog.Prompt(ctx, DeletePrompt(book)))
	dialog.Alert(out.Message)
	return out
}

// result maps an admin call onto an outcome. Only the exact success message
// counts as success; any other answer is shown as "Error: <text>".
func (s *Service) result(op, isbn, msg string, err error, success, generic string) domain.Outcome {
	if err != nil {
		s.logger.Error("admin request failed", "op", op, "isbn", isbn, "error", err)
		if text := domain.AlertText(err, ""); text != "" {
			return domain.Outcome{Kind: domain.OutcomeRejected, Message: "Error: " + text, Err: err, Responded: true}
		}
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: generic, Err: err}
	}
	if msg != success {
		s.logger.Warn("unexpected admin response", "op", op, "isbn", isbn, "message", msg)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: "Error: " + msg, Responded: true}
	}
	s.logger.Info("admin request succeeded", "op", op, "isbn", isbn)
	return domain.Succeeded(msg)
}
