package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/tui/components"
)

// Status texts for actions the current user cannot take
const (
	msgSignInFirst     = "Log in first (L), or sign up (S)."
	msgAdminOnly       = "Only the administrator can manage the catalog."
	msgNotOwned        = "Buy this book before downloading it."
	msgAlreadyOwned    = "You already own this book."
	msgAlreadySignedIn = "Already signed in as "
)

// Form field keys shared by the account and review forms
const (
	keyAnswer   = "answer"
	keyUsername = "username"
	keyEmail    = "email"
	keyPassword = "password"
	keyConfirm  = "confirm"
	keyRating   = "rating"
	keyComment  = "comment"
)

func credentialFields() []components.FormField {
	return []components.FormField{
		{Key: keyUsername, Label: "Username"},
		{Key: keyEmail, Label: "Email", Placeholder: "you@example.com"},
		{Key: keyPassword, Label: "Password", Secret: true},
	}
}

func bookFields(fields []admin.Field) []components.FormField {
	out := make([]components.FormField, len(fields))
	for i, f := range fields {
		out[i] = components.FormField{Key: f.Key, Label: f.Label}
	}
	return out
}

// handleKeyMsg processes keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, newM, cmd := m.routeToModal(msg); handled {
		return newM, cmd
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.Searching = true
		m.Search.SetValue(m.Catalog.SearchTerm())
		m.Search.CursorEnd()
		m.Search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Jump):
		m.Omnibar.SetSize(m.Width, m.Height)
		m.Omnibar.Show(m.Catalog.Books())
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Catalog.SearchTerm() != "" {
			m.Catalog.ClearSearch()
			m.Search.SetValue("")
			return m, m.refreshView()
		}
		if m.ShowInspector {
			m.ShowInspector = false
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Left):
		if m.Grid.MoveLeft() {
			return m, m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Right):
		if m.Grid.MoveRight() {
			return m, m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.Grid.MoveUp() {
			return m, m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.Grid.MoveDown() {
			return m, m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		return m, m.changePage(m.Pager.Prev())

	case key.Matches(msg, Keys.NextPage):
		return m, m.changePage(m.Pager.Next())

	case key.Matches(msg, Keys.Enter):
		if !m.ShowInspector {
			m.ShowInspector = true
			m.updateLayout()
		}
		return m, m.syncInspector()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, m.syncInspector()

	case key.Matches(msg, Keys.ScrollUp):
		m.Inspector.ScrollUp(m.Height / 2)
		return m, nil

	case key.Matches(msg, Keys.ScrollDown):
		m.Inspector.ScrollDown(m.Height / 2)
		return m, nil

	case key.Matches(msg, Keys.PrevReviews):
		if m.Reviews != nil {
			m.changeReviewPage(m.Reviews.Page() - 1)
		}
		return m, nil

	case key.Matches(msg, Keys.NextReviews):
		if m.Reviews != nil {
			m.changeReviewPage(m.Reviews.Page() + 1)
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, m.reloadBooks()

	case key.Matches(msg, Keys.Buy):
		return m.startPurchase()

	case key.Matches(msg, Keys.Download):
		return m.startDownload()

	case key.Matches(msg, Keys.Review):
		return m.startReview()

	case key.Matches(msg, Keys.NewBook):
		if !m.Session.IsAdmin() {
			return m, m.setStatus(msgAdminOnly, true)
		}
		m.pending = pendingFlow{kind: flowCreateBook}
		m.Form.Show("Add a book", "", bookFields(admin.CreateFields()))
		return m, nil

	case key.Matches(msg, Keys.EditBook):
		card, ok := m.selectedBook()
		if !m.Session.IsAdmin() {
			return m, m.setStatus(msgAdminOnly, true)
		}
		if !ok {
			return m, nil
		}
		m.pending = pendingFlow{kind: flowUpdateBook, book: card.Book}
		m.Form.Show("Edit "+card.Book.Title, admin.UpdateHint,
			bookFields(admin.UpdateFields(card.Book)))
		return m, nil

	case key.Matches(msg, Keys.DeleteBook):
		card, ok := m.selectedBook()
		if !m.Session.IsAdmin() {
			return m, m.setStatus(msgAdminOnly, true)
		}
		if !ok {
			return m, nil
		}
		prompt := admin.DeletePrompt(card.Book)
		m.pending = pendingFlow{kind: flowDeleteBook, book: card.Book}
		m.Form.Show("Delete book", prompt.Message, []components.FormField{{Key: keyAnswer, Label: "ISBN"}})
		return m, nil

	case key.Matches(msg, Keys.Login):
		if m.Session.SignedIn() {
			return m, m.setStatus(msgAlreadySignedIn+m.Session.Username, false)
		}
		m.pending = pendingFlow{kind: flowLogin}
		m.Form.Show("Log in", "", credentialFields())
		return m, nil

	case key.Matches(msg, Keys.Register):
		fields := append(credentialFields(), components.FormField{Key: keyConfirm, Label: "Confirm password", Secret: true})
		m.pending = pendingFlow{kind: flowRegister}
		m.Form.Show("Sign up", "", fields)
		return m, nil

	case key.Matches(msg, Keys.Logout):
		if !m.Session.SignedIn() {
			return m, m.setStatus(msgSignInFirst, true)
		}
		m.pending = pendingFlow{kind: flowLogout}
		m.Confirm.Show("Log out?", "Sign "+m.Session.Username+" out of the bookstore.")
		return m, nil

	case key.Matches(msg, Keys.Balance):
		if !m.Session.SignedIn() {
			return m, m.setStatus(msgSignInFirst, true)
		}
		return m, BalanceCmd(m.Svc.Account)

	case key.Matches(msg, Keys.DeleteAccount):
		if !m.Session.SignedIn() {
			return m, m.setStatus(msgSignInFirst, true)
		}
		m.pending = pendingFlow{kind: flowDeleteAccountAsk}
		m.Confirm.Show("Delete account", account.MsgDeleteAccountAsk)
		return m, nil
	}

	return m, nil
}

func (m Model) startPurchase() (tea.Model, tea.Cmd) {
	if !m.Session.SignedIn() {
		return m, m.setStatus(msgSignInFirst, true)
	}
	card, ok := m.selectedBook()
	if !ok {
		return m, nil
	}
	if card.Owned {
		return m, m.setStatus(msgAlreadyOwned, false)
	}
	prompt := catalog.PurchasePrompt(card.Book)
	m.pending = pendingFlow{kind: flowPurchase, book: card.Book}
	m.Form.Show("Buy book", prompt.Message, []components.FormField{{Key: keyAnswer, Label: "ISBN"}})
	return m, nil
}

func (m Model) startDownload() (tea.Model, tea.Cmd) {
	if !m.Session.SignedIn() {
		return m, m.setStatus(msgSignInFirst, true)
	}
	card, ok := m.selectedBook()
	if !ok {
		return m, nil
	}
	if !card.Owned {
		return m, m.setStatus(msgNotOwned, true)
	}
	return m, DownloadCmd(m.Svc.Catalog, card.Book)
}

func (m Model) startReview() (tea.Model, tea.Cmd) {
	if !m.Session.SignedIn() {
		return m, m.setStatus(msgSignInFirst, true)
	}
	card, ok := m.selectedBook()
	if !ok {
		return m, nil
	}
	m.pending = pendingFlow{kind: flowReview, book: card.Book}
	m.Form.Show("Review "+card.Book.Title, "", []components.FormField{
		{Key: keyRating, Label: "Rating (1-5)", Placeholder: "5"},
		{Key: keyComment, Label: "Comment"},
	})
	return m, nil
}

// handleSearchKey edits the filter. The catalog re-filters on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.Searching = false
		m.Search.Blur()
		m.Search.SetValue("")
		m.Catalog.ClearSearch()
		return m, m.refreshView()
	case "enter":
		m.Searching = false
		m.Search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != m.Catalog.SearchTerm() {
		m.Catalog.SetSearchTerm(m.Search.Value())
		m.Grid.SetCursor(0)
		return m, tea.Batch(cmd, m.refreshView())
	}
	return m, cmd
}

// routeToModal sends keys to the visible modal, if any
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.Omnibar.IsVisible() {
		var selected bool
		m.Omnibar, cmd, selected = m.Omnibar.Update(msg)
		if selected {
			if book := m.Omnibar.Selected(); book != nil {
				return true, m, m.jumpTo(book.ISBN)
			}
		}
		return true, m, cmd
	}

	if m.Confirm.IsVisible() {
		var answered, accepted bool
		m.Confirm, answered, accepted = m.Confirm.Update(msg)
		if answered {
			return true, m, m.resolveConfirm(accepted)
		}
		return true, m, nil
	}

	if m.Form.IsVisible() {
		var submitted bool
		m.Form, cmd, submitted = m.Form.Update(msg)
		if submitted {
			m.Form.Hide()
			return true, m, m.submitForm()
		}
		if !m.Form.IsVisible() {
			return true, m, m.cancelForm()
		}
		return true, m, cmd
	}

	return false, m, nil
}

// jumpTo clears the filter and selects the book on its page
func (m *Model) jumpTo(isbn string) tea.Cmd {
	m.Search.SetValue("")
	if !m.Catalog.JumpTo(isbn) {
		return nil
	}
	cmd := m.refreshView()
	for i, b := range m.Catalog.Displayed() {
		if b.ISBN == isbn {
			m.Grid.SetCursor(i)
			break
		}
	}
	return tea.Batch(cmd, m.syncInspector())
}

// submitForm dispatches the pending flow with the form's answers
func (m *Model) submitForm() tea.Cmd {
	p := m.pending
	m.pending = pendingFlow{}
	values := m.Form.Values()

	switch p.kind {
	case flowPurchase:
		return PurchaseCmd(m.Svc.Catalog, p.book, domain.Answered(values[keyAnswer]))

	case flowDeleteBook:
		return DeleteBookCmd(m.Svc.Admin, p.book, domain.Answered(values[keyAnswer]))

	case flowCreateBook:
		input, err := admin.ParseForm(values, domain.BookInput{})
		if err != nil {
			return m.setStatus("Error: "+err.Error(), true)
		}
		return CreateBookCmd(m.Svc.Admin, input)

	case flowUpdateBook:
		input, err := admin.ParseForm(values, domain.InputFromBook(p.book))
		if err != nil {
			return m.setStatus("Error: "+err.Error(), true)
		}
		return UpdateBookCmd(m.Svc.Admin, p.book.ISBN, input)

	case flowReview:
		// A rating that is not a number counts as no rating
		rating, _ := strconv.Atoi(strings.TrimSpace(values[keyRating]))
		return PostReviewCmd(m.Svc.Reviews, p.book.ISBN, rating, values[keyComment])

	case flowLogin:
		return LoginCmd(m.Svc.Account, credentialsFrom(values))

	case flowRegister:
		return RegisterCmd(m.Svc.Account, domain.Registration{
			Credentials:     credentialsFrom(values),
			ConfirmPassword: values[keyConfirm],
		})

	case flowDeleteAccount:
		return DeleteAccountCmd(m.Svc.Account, credentialsFrom(values))
	}
	return nil
}

// cancelForm handles a dismissed form. A dismissed ISBN confirmation
// reports its cancellation like a mismatch.
func (m *Model) cancelForm() tea.Cmd {
	p := m.pending
	m.pending = pendingFlow{}

	switch p.kind {
	case flowPurchase:
		return PurchaseCmd(m.Svc.Catalog, p.book, domain.Dismissed())
	case flowDeleteBook:
		return DeleteBookCmd(m.Svc.Admin, p.book, domain.Dismissed())
	}
	return nil
}

// resolveConfirm continues the pending flow after a yes/no answer
func (m *Model) resolveConfirm(accepted bool) tea.Cmd {
	p := m.pending
	m.pending = pendingFlow{}
	if !accepted {
		return nil
	}

	switch p.kind {
	case flowOfferLogin:
		return LoginCmd(m.Svc.Account, p.creds)

	case flowLogout:
		return LogoutCmd(m.Svc.Account)

	case flowDeleteAccountAsk:
		m.pending = pendingFlow{kind: flowDeleteAccount}
		m.Form.Show("Delete account", "Confirm the account to delete.", credentialFields())
	}
	return nil
}

func credentialsFrom(values map[string]string) domain.Credentials {
	return domain.Credentials{
		Username: values[keyUsername],
		Email:    values[keyEmail],
		Password: values[keyPassword],
	}
}
