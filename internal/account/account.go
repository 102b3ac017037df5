// Package account signs users in and out and manages their account.
package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/folio/internal/domain"
)

// Server success messages
const (
	ServerLoggedIn   = "Logged in successfully"
	ServerRegistered = "User registered successfully"
	ServerLoggedOut  = "Logged out successfully"
	ServerDeleted    = "Account is successfully deleted"
)

// Alert texts
const (
	MsgPasswordMismatch   = "Passwords do not match. Please check again."
	MsgUsernameMismatch   = "Something went wrong!"
	MsgAccountDeleted     = "Your account has been successfully deleted."
	MsgDeleteFailed       = "An error occurred while deleting your account."
	MsgRequestFailed      = "An error occurred while processing your request."
	MsgBalanceFailed      = "An error occurred while fetching balance."
	MsgLoginFailed        = "Unable to sign in. Please try again later."
	MsgRegisterFailed     = "Unable to register. Please try again later."
	MsgLogoutFailed       = "Unable to log out. Please try again later."
	MsgOfferLogin         = "User registered successfully. Do you want to login now?"
	MsgDeleteAccountAsk   = "This action is critical. Your account details will be preserved for 30 days as per policy. Do you want to proceed?"
	msgUnexpectedResponse = "Unexpected response from server: "
)

// SessionResetter drops the HTTP session held by the transport
type SessionResetter interface {
	ResetSession()
}

// Service runs the account flows and keeps the local session in step
type Service struct {
	repo     domain.AuthRepository
	store    domain.SessionStore
	resetter SessionResetter
	logger   *slog.Logger
}

// NewService creates a new account service. resetter may be nil.
func NewService(repo domain.AuthRepository, store domain.SessionStore, resetter SessionResetter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, store: store, resetter: resetter, logger: logger}
}

// Session returns the signed-in identity, or the zero Session
func (s *Service) Session() domain.Session {
	session, _ := s.store.GetSession()
	return session
}

// Login signs in and remembers the username
func (s *Service) Login(ctx context.Context, creds domain.Credentials) domain.Outcome {
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.TrimSpace(creds.Email)
	if err := domain.Validate(creds); err != nil {
		return domain.Cancelled(err.Error(), err)
	}

	msg, err := s.repo.Login(ctx, creds)
	if err != nil {
		s.logger.Error("login failed", "username", creds.Username, "error", err)
		return failed(err, MsgLoginFailed)
	}
	if msg != ServerLoggedIn {
		s.logger.Warn("unexpected login response", "message", msg)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: msgUnexpectedResponse + msg, Responded: true}
	}

	if err := s.store.SaveSession(domain.Session{Username: creds.Username}); err != nil {
		s.logger.Error("failed to save session", "error", err)
	}
	s.logger.Info("logged in", "username", creds.Username)
	return domain.Succeeded(msg)
}

// Register creates an account. Mismatched passwords are refused locally.
func (s *Service) Register(ctx context.Context, reg domain.Registration) domain.Outcome {
	if reg.Password != reg.ConfirmPassword {
		return domain.Cancelled(MsgPasswordMismatch, domain.ErrConfirmationMismatch)
	}
	creds := reg.Credentials
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.TrimSpace(creds.Email)
	if err := domain.Validate(creds); err != nil {
		return domain.Cancelled(err.Error(), err)
	}

	msg, err := s.repo.Register(ctx, creds)
	if err != nil {
		s.logger.Error("registration failed", "username", creds.Username, "error", err)
		return failed(err, MsgRegisterFailed)
	}
	if msg != ServerRegistered {
		s.logger.Warn("unexpected register response", "message", msg)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: msgUnexpectedResponse + msg, Responded: true}
	}
	s.logger.Info("registered", "username", creds.Username)
	return domain.Succeeded(msg)
}

// RegisterWith registers and then offers to sign straight in
func (s *Service) RegisterWith(ctx context.Context, reg domain.Registration, dialog domain.Dialog) domain.Outcome {
	out := s.Register(ctx, reg)
	if out.IsError() {
		dialog.Alert(out.Message)
		return out
	}
	if !dialog.Confirm(ctx, MsgOfferLogin) {
		return out
	}
	login := s.Login(ctx, reg.Credentials)
	dialog.Alert(login.Message)
	return login
}

// Logout ends the session on the server and forgets it locally
func (s *Service) Logout(ctx context.Context) domain.Outcome {
	msg, err := s.repo.Logout(ctx)
	if err != nil {
		s.logger.Error("logout failed", "error", err)
		return failed(err, MsgLogoutFailed)
	}
	if msg != ServerLoggedOut {
		s.logger.Warn("unexpected logout response", "message", msg)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: msgUnexpectedResponse + msg, Responded: true}
	}
	s.forget()
	s.logger.Info("logged out")
	return domain.Succeeded(msg)
}

func (s *Service) forget() {
	s.store.ClearSession()
	if s.resetter != nil {
		s.resetter.ResetSession()
	}
}

// ConfirmDeleteAccount deletes the account once the typed username matches
// the signed-in one. Blank email or password stops the flow silently.
func (s *Service) ConfirmDeleteAccount(ctx context.Context, creds domain.Credentials) domain.Outcome {
	if creds.Username != s.Session().Username || creds.Username == "" {
		s.logger.Warn("account deletion username mismatch")
		return domain.Cancelled(MsgUsernameMismatch, domain.ErrConfirmationMismatch)
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return domain.Cancelled("", domain.ErrCancelled)
	}

	msg, err := s.repo.DeleteAccount(ctx, creds)
	if err != nil {
		s.logger.Error("account deletion failed", "username", creds.Username, "error", err)
		return failed(err, MsgRequestFailed)
	}
	if msg != ServerDeleted {
		s.logger.Warn("unexpected delete-account response", "message", msg)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: MsgDeleteFailed, Responded: true}
	}

	s.logger.Info("account deleted", "username", creds.Username)
	if out := s.Logout(ctx); out.IsError() {
		// The account is gone either way; drop the local session.
		s.forget()
	}
	return domain.Succeeded(MsgAccountDeleted)
}

// DeleteAccount runs the full delete flow through a dialog
func (s *Service) DeleteAccount(ctx context.Context, dialog domain.Dialog) domain.Outcome {
	if !dialog.Confirm(ctx, MsgDeleteAccountAsk) {
		return domain.Cancelled("", domain.ErrCancelled)
	}

	username := dialog.Prompt(ctx, domain.Prompt{Message: "Enter your username:"})
	if !username.Matches(s.Session().Username) || username.Value == "" {
		dialog.Alert(MsgUsernameMismatch)
		return domain.Cancelled(MsgUsernameMismatch, domain.ErrConfirmationMismatch)
	}
	email := dialog.Prompt(ctx, domain.Prompt{Message: "Enter your email:"})
	if email.Cancelled || email.Value == "" {
		return domain.Cancelled("", domain.ErrCancelled)
	}
	password := dialog.Prompt(ctx, domain.Prompt{Message: "Enter your password:", Secret: true})
	if password.Cancelled || password.Value == "" {
		return domain.Cancelled("", domain.ErrCancelled)
	}

	out := s.ConfirmDeleteAccount(ctx, domain.Credentials{
		Username: username.Value,
		Email:    email.Value,
		Password: password.Value,
	})
	if out.Message != "" {
		dialog.Alert(out.Message)
	}
	return out
}

// Balance fetches the account balance as an alert
func (s *Service) Balance(ctx context.Context) domain.Outcome {
	balance, err := s.repo.Balance(ctx)
	if err != nil {
		s.logger.Error("error fetching balance", "error", err)
		return failed(err, MsgBalanceFailed)
	}
	return domain.Succeeded("Your total balance: " + domain.FormatBalance(balance))
}

// PromptCredentials asks for username, email and password in turn
func PromptCredentials(ctx context.Context, dialog domain.Dialog) (domain.Credentials, bool) {
	username := dialog.Prompt(ctx, domain.Prompt{Message: "Username:"})
	if username.Cancelled {
		return domain.Credentials{}, false
	}
	email := dialog.Prompt(ctx, domain.Prompt{Message: "Email:"})
	if email.Cancelled {
		return domain.Credentials{}, false
	}
	password := dialog.Prompt(ctx, domain.Prompt{Message: "Password:", Secret: true})
	if password.Cancelled {
		return domain.Credentials{}, false
	}
	return domain.Credentials{Username: username.Value, Email: email.Value, Password: password.Value}, true
}

// failed turns an error into an outcome: server rejections verbatim, the fallback otherwise
func failed(err error, fallback string) domain.Outcome {
	if text := domain.AlertText(err, ""); text != "" {
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: text, Err: err, Responded: true}
	}
	return domain.Outcome{Kind: domain.OutcomeFailed, Message: fallback, Err: err}
}
