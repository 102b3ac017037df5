package account

import (
	"context"
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/store"
	"github.com/mmcdole/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetCounter struct{ n int }

func (r *resetCounter) ResetSession() { r.n++ }

var reader = domain.Credentials{Username: "reader", Email: "reader@example.com", Password: "hunter2"}

func newTestService(t *testing.T) (*Service, *testutil.Bookstore, *store.SessionStore, *resetCounter) {
	t.Helper()
	sessions, err := store.NewSessionStore("", "")
	require.NoError(t, err)
	repo := &testutil.Bookstore{}
	resetter := &resetCounter{}
	return NewService(repo, sessions, resetter, nil), repo, sessions, resetter
}

func TestService_LoginStoresSession(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	repo.AuthMessage = ServerLoggedIn

	out := svc.Login(context.Background(), reader)
	assert.Equal(t, domain.OutcomeSucceeded, out.Kind)
	assert.Equal(t, "reader", svc.Session().Username)
	assert.False(t, svc.Session().IsAdmin())
}

func TestService_LoginAsAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	repo.AuthMessage = ServerLoggedIn

	svc.Login(context.Background(), domain.Credentials{Username: "admin", Email: "admin@example.com", Password: "x"})
	assert.True(t, svc.Session().IsAdmin())
}

func TestService_LoginRejected(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	repo.AuthErr = &domain.RejectedError{Status: 401, Message: "Invalid credentials"}

	out := svc.Login(context.Background(), reader)
	assert.Equal(t, "Invalid credentials", out.Message)
	assert.ErrorIs(t, out.Err, domain.ErrAuthFailed)
	assert.False(t, svc.Session().SignedIn())
}

func TestService_LoginValidatesEmail(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	out := svc.Login(context.Background(), domain.Credentials{Username: "reader", Email: "nope", Password: "x"})
	assert.ErrorIs(t, out.Err, domain.ErrInvalidInput)
	assert.Zero(t, repo.CallCount("Login"))
}

func TestService_RegisterPasswordMismatchSendsNothing(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	out := svc.Register(context.Background(), domain.Registration{Credentials: reader, ConfirmPassword: "hunter3"})
	assert.Equal(t, MsgPasswordMismatch, out.Message)
	assert.Zero(t, repo.CallCount("Register"))
}

func TestService_RegisterWithOffersLogin(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	repo.AuthMessage = ServerRegistered
	dialog := testutil.NewDialog()
	dialog.Confirms = []bool{true}

	// the fake answers every auth call with the same message, so the
	// follow-up login reports an unexpected response
	out := svc.RegisterWith(context.Background(), domain.Registration{Credentials: reader, ConfirmPassword: reader.Password}, dialog)
	assert.Equal(t, 1, repo.CallCount("Register"))
	assert.Equal(t, 1, repo.CallCount("Login"))
	assert.Equal(t, MsgOfferLogin, dialog.Prompts[0].Message)
	assert.Equal(t, domain.OutcomeRejected, out.Kind)
}

func TestService_Logout(t *testing.T) {
	svc, repo, sessions, resetter := newTestService(t)
	require.NoError(t, sessions.SaveSession(domain.Session{Username: "reader"}))
	repo.AuthMessage = ServerLoggedOut

	out := svc.Logout(context.Background())
	assert.Equal(t, domain.OutcomeSucceeded, out.Kind)
	assert.False(t, svc.Session().SignedIn())
	assert.Equal(t, 1, resetter.n)
}

func TestService_LogoutFailureKeepsSession(t *testing.T) {
	svc, repo, sessions, resetter := newTestService(t)
	require.NoError(t, sessions.SaveSession(domain.Session{Username: "reader"}))
	repo.AuthErr = &domain.RejectedError{Status: 401, Message: "User not logged in"}

	out := svc.Logout(context.Background())
	assert.Equal(t, "User not logged in", out.Message)
	assert.True(t, svc.Session().SignedIn())
	assert.Zero(t, resetter.n)
}

func TestService_DeleteAccount(t *testing.T) {
	t.Run("username mismatch", func(t *testing.T) {
		svc, repo, sessions, _ := newTestService(t)
		require.NoError(t, sessions.SaveSession(domain.Session{Username: "reader"}))
		dialog := testutil.NewDialog("someone-else")
		dialog.Confirms = []bool{true}

		out := svc.DeleteAccount(context.Background(), dialog)
		assert.Equal(t, MsgUsernameMismatch, out.Message)
		assert.Equal(t, []string{MsgUsernameMismatch}, dialog.Alerts)
		assert.Zero(t, repo.CallCount("DeleteAccount"))
	})

	t.Run("declined", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		out := svc.DeleteAccount(context.Background(), testutil.NewDialog())
		assert.ErrorIs(t, out.Err, domain.ErrCancelled)
		assert.Zero(t, repo.CallCount("DeleteAccount"))
	})

	t.Run("blank password", func(t *testing.T) {
		svc, repo, sessions, _ := newTestService(t)
		require.NoError(t, sessions.SaveSession(domain.Session{Username: "reader"}))
		dialog := testutil.NewDialog("reader", "reader@example.com", "")
		dialog.Confirms = []bool{true}

		svc.DeleteAccount(context.Background(), dialog)
		assert.Zero(t, repo.CallCount("DeleteAccount"))
		assert.Empty(t, dialog.Alerts)
	})

	t.Run("deleted", func(t *testing.T) {
		svc, repo, sessions, resetter := newTestService(t)
		require.NoError(t, sessions.SaveSession(domain.Session{Username: "reader"}))
		repo.AuthMessage = ServerDeleted
		dialog := testutil.NewDialog("reader", "reader@example.com", "hunter2")
		dialog.Confirms = []bool{true}

		out := svc.DeleteAccount(context.Background(), dialog)
		assert.Equal(t, domain.OutcomeSucceeded, out.Kind)
		assert.Equal(t, []string{MsgAccountDeleted}, dialog.Alerts)
		assert.Equal(t, []domain.Credentials{reader}, repo.DeletedAccount)
		assert.True(t, dialog.Prompts[3].Secret)
		assert.Equal(t, 1, repo.CallCount("Logout"))
		assert.False(t, svc.Session().SignedIn())
		assert.Equal(t, 1, resetter.n)
	})
}

func TestService_Balance(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	repo.BalanceValue = 12.5

	out := svc.Balance(context.Background())
	assert.Equal(t, "Your total balance: 12.50", out.Message)

	repo.BalanceErr = domain.ErrServerOffline
	out = svc.Balance(context.Background())
	assert.Equal(t, MsgBalanceFailed, out.Message)
}

func TestPromptCredentials(t *testing.T) {
	dialog := testutil.NewDialog("reader", "reader@example.com", "hunter2")
	creds, ok := PromptCredentials(context.Background(), dialog)
	require.True(t, ok)
	assert.Equal(t, reader, creds)
	assert.True(t, dialog.Prompts[2].Secret)

	_, ok = PromptCredentials(context.Background(), testutil.NewDialog("reader"))
	assert.False(t, ok)
}
