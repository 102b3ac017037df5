package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/review"
	"github.com/mmcdole/folio/internal/store"
	"github.com/mmcdole/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	repo   *testutil.Bookstore
	opener *testutil.Opener
}

// newTestModel builds a sized model over books, signed in as username
func newTestModel(t *testing.T, username string, books []domain.Book) (Model, *harness) {
	t.Helper()
	sessions, err := store.NewSessionStore("", "")
	require.NoError(t, err)
	if username != "" {
		require.NoError(t, sessions.SaveSession(domain.Session{Username: username}))
	}

	h := &harness{
		repo:   &testutil.Bookstore{Books: books},
		opener: &testutil.Opener{},
	}
	svc := Services{
		Catalog: catalog.NewService(h.repo, h.repo, h.opener, nil),
		Reviews: review.NewService(h.repo, nil),
		Admin:   admin.NewService(h.repo, nil),
		Account: account.NewService(h.repo, sessions, nil, nil),
	}

	m := NewModel(svc, Options{ItemsPerPage: 6, ReviewsPerPage: 2, Theme: "notty"}, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(m, BooksLoadedMsg{Books: books})
	return m, h
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// typeKeys sends each rune of s as a key press
func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func pressEsc(m Model) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyEsc})
}

// run executes cmd and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Msg) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(m, msg)
	return m, msg
}

// answerOwnership re-delivers the catalog and answers its ownership lookups from owned
func answerOwnership(t *testing.T, m Model, h *harness, owned map[string]bool) Model {
	t.Helper()
	h.repo.Owned = owned
	m, cmd := update(m, BooksLoadedMsg{Books: m.Catalog.Books()})
	m, _ = run(t, m, cmd)
	return m
}

func selectedISBN(m Model) string {
	card, _ := m.Grid.Selected()
	return card.Book.ISBN
}

func TestModel_BooksLoaded(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(7))

	assert.False(t, m.Loading)
	assert.Equal(t, 6, m.Grid.Len())
	assert.Equal(t, 1, m.Pager.Page())
	assert.Equal(t, 2, m.Pager.TotalPages())
	assert.Equal(t, "isbn-1", selectedISBN(m))
}

func TestModel_PageKeysStayInBounds(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(7))

	m = typeKeys(m, "]")
	assert.Equal(t, 2, m.Catalog.Page())
	assert.Equal(t, 1, m.Grid.Len())

	m = typeKeys(m, "]")
	assert.Equal(t, 2, m.Catalog.Page())

	m = typeKeys(m, "[[")
	assert.Equal(t, 1, m.Catalog.Page())
}

func TestModel_FilterKeepsPage(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(7))
	m = typeKeys(m, "]")

	m = typeKeys(m, "/Book 1")
	assert.True(t, m.Searching)
	assert.Equal(t, "Book 1", m.Catalog.SearchTerm())
	assert.Equal(t, 2, m.Catalog.Page())
	assert.Zero(t, m.Grid.Len())

	m, _ = pressEnter(m)
	assert.False(t, m.Searching)
	assert.Equal(t, "Book 1", m.Catalog.SearchTerm())

	m = typeKeys(m, "[")
	assert.Equal(t, 1, m.Catalog.Page())
	assert.Equal(t, "isbn-1", selectedISBN(m))

	m, _ = pressEsc(m)
	assert.Empty(t, m.Catalog.SearchTerm())
	assert.Equal(t, 6, m.Grid.Len())
}

func TestModel_FilterSuggestsTitles(t *testing.T) {
	books := []domain.Book{
		{ISBN: "1", Title: "Dune", Author: "Frank Herbert"},
		{ISBN: "2", Title: "Foundation", Author: "Isaac Asimov"},
	}
	m, _ := newTestModel(t, "", books)

	m = typeKeys(m, "/dnue")
	assert.Zero(t, m.Grid.Len())
	view := m.Grid.View()
	assert.Contains(t, view, `No books match "dnue".`)
	assert.Contains(t, view, "Did you mean")
	assert.Contains(t, view, "Dune")
}

func TestModel_ActionsNeedSignIn(t *testing.T) {
	m, h := newTestModel(t, "", testutil.Books(3))

	for _, k := range []string{"b", "d", "w", "$", "D", "O"} {
		m = typeKeys(m, k)
		assert.False(t, m.Form.IsVisible(), k)
		assert.False(t, m.Confirm.IsVisible(), k)
		assert.Equal(t, msgSignInFirst, m.StatusMsg, k)
	}
	assert.Equal(t, []string(nil), h.repo.Calls)
}

func TestModel_PurchaseFlow(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))
	h.repo.BuyMessage = "Book purchased successfully"

	m = typeKeys(m, "b")
	require.True(t, m.Form.IsVisible())
	assert.Contains(t, m.Form.Message(), `"Book 1"`)
	assert.Contains(t, m.Form.Message(), "$9.99")

	m = typeKeys(m, "isbn-1")
	m, cmd := pressEnter(m)
	assert.False(t, m.Form.IsVisible())

	m, msg := run(t, m, cmd)
	out := msg.(OutcomeMsg)
	assert.Equal(t, ActionPurchase, out.Action)
	assert.Equal(t, "Book purchased successfully", m.StatusMsg)
	assert.False(t, m.StatusIsErr)
	assert.Equal(t, 1, h.repo.CallCount("BuyBook:isbn-1"))
	assert.False(t, m.Loading, "a purchase does not reload the catalog")
}

func TestModel_PurchaseRefetchesOwnership(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))
	m = answerOwnership(t, m, h, map[string]bool{})
	require.False(t, m.Catalog.Owned("isbn-1"))
	before := h.repo.CallCount("OwnershipStatus:isbn-2")

	h.repo.Owned = map[string]bool{"isbn-1": true}
	m, cmd := update(m, OutcomeMsg{Action: ActionPurchase, ISBN: "isbn-1", Outcome: domain.Outcome{Responded: true}})
	m, _ = run(t, m, cmd)

	assert.True(t, m.Catalog.Owned("isbn-1"))
	card, ok := m.Grid.Selected()
	require.True(t, ok)
	assert.True(t, card.Owned)
	assert.Equal(t, before, h.repo.CallCount("OwnershipStatus:isbn-2"), "only the purchased book is looked up again")
}

func TestModel_StaleOwnershipIgnored(t *testing.T) {
	books := testutil.Books(3)
	m, h := newTestModel(t, "reader", books)

	// a lookup answered before the purchase, delivered after a newer one
	m, staleCmd := update(m, BooksLoadedMsg{Books: books})
	require.NotNil(t, staleCmd)
	stale := staleCmd().(OwnershipLoadedMsg)

	m = answerOwnership(t, m, h, map[string]bool{"isbn-1": true})
	require.True(t, m.Catalog.Owned("isbn-1"))

	m, cmd := update(m, stale)
	assert.Nil(t, cmd)
	assert.True(t, m.Catalog.Owned("isbn-1"))
	card, _ := m.Grid.Selected()
	assert.True(t, card.Owned)
}

func TestModel_PurchaseMismatch(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))

	m = typeKeys(m, "bISBN-1")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, catalog.MsgPurchaseCanceled, m.StatusMsg)
	assert.True(t, m.StatusIsErr)
	assert.Zero(t, h.repo.CallCount("BuyBook:isbn-1"))
	assert.False(t, m.Loading)
}

func TestModel_PurchaseDismissed(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))

	m = typeKeys(m, "b")
	m, cmd := pressEsc(m)
	assert.False(t, m.Form.IsVisible())

	m, _ = run(t, m, cmd)
	assert.Equal(t, catalog.MsgPurchaseCanceled, m.StatusMsg)
	assert.Zero(t, h.repo.CallCount("BuyBook:isbn-1"))
}

func TestModel_OwnedBookDownloads(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))
	h.repo.Links = map[string]string{"isbn-1": "https://files.example/1.epub"}

	m = answerOwnership(t, m, h, map[string]bool{"isbn-1": true})
	card, ok := m.Grid.Selected()
	require.True(t, ok)
	assert.True(t, card.Owned)

	m = typeKeys(m, "b")
	assert.False(t, m.Form.IsVisible())
	assert.Equal(t, msgAlreadyOwned, m.StatusMsg)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, _ = run(t, next.(Model), cmd)
	assert.Equal(t, catalog.MsgDownloadOpened, m.StatusMsg)
	assert.Equal(t, []string{"https://files.example/1.epub"}, h.opener.Opened)
}

func TestModel_DownloadNeedsOwnership(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(3))

	m = typeKeys(m, "d")
	assert.Equal(t, msgNotOwned, m.StatusMsg)
	assert.Zero(t, h.repo.CallCount("DownloadLink:isbn-1"))
}

func TestModel_OwnershipRequestedForDisplayedBooks(t *testing.T) {
	m, _ := newTestModel(t, "reader", testutil.Books(7))

	// page 1 was requested on load; only page 2's book is new
	isbns, _ := m.Catalog.PendingOwnership()
	assert.Empty(t, isbns)
	m = typeKeys(m, "]")
	assert.Equal(t, 2, m.Catalog.Page())
	isbns, _ = m.Catalog.PendingOwnership()
	assert.Empty(t, isbns, "page change requests the new page")
}

func TestModel_AdminOnlyActions(t *testing.T) {
	m, _ := newTestModel(t, "reader", testutil.Books(3))
	for _, k := range []string{"n", "e", "x"} {
		m = typeKeys(m, k)
		assert.False(t, m.Form.IsVisible(), k)
		assert.Equal(t, msgAdminOnly, m.StatusMsg, k)
	}

	m, _ = newTestModel(t, "admin", testutil.Books(3))
	m = typeKeys(m, "n")
	require.True(t, m.Form.IsVisible())
	assert.Equal(t, "Add a book", m.Form.Title())
	assert.Len(t, m.Form.Values(), len(admin.CreateFields()))
}

func TestModel_AdminDelete(t *testing.T) {
	m, h := newTestModel(t, "admin", testutil.Books(3))
	h.repo.AdminMessage = admin.MsgDeleted

	m = typeKeys(m, "xisbn-1")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, admin.MsgDeleted, m.StatusMsg)
	require.Len(t, h.repo.Deleted, 1)
	assert.Equal(t, "isbn-1", h.repo.Deleted[0].ISBN)
	assert.True(t, m.Loading)
}

func TestModel_AdminUpdateKeepsBlankFields(t *testing.T) {
	books := testutil.Books(1)
	m, h := newTestModel(t, "admin", books)
	h.repo.AdminMessage = admin.MsgUpdated

	m = typeKeys(m, "e")
	require.True(t, m.Form.IsVisible())
	assert.Equal(t, admin.UpdateHint, m.Form.Message())
	m = typeKeys(m, "New Title")
	// leave the rest blank except the download link, which the listing lacks
	for i := 0; i < 5; i++ {
		m, _ = pressEnter(m)
	}
	m = typeKeys(m, "https://files.example/new.epub")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, admin.MsgUpdated, m.StatusMsg)
	got := h.repo.Updated["isbn-1"]
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "Author 1", got.Author)
	assert.Equal(t, "isbn-1", got.ISBN)
	assert.Equal(t, 9.99, got.Price)
}

func TestModel_JumpPalette(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(7))

	m = typeKeys(m, "f")
	require.True(t, m.Omnibar.IsVisible())
	m = typeKeys(m, "book 7")
	require.Len(t, m.Omnibar.Results(), 1)

	m, _ = pressEnter(m)
	assert.False(t, m.Omnibar.IsVisible())
	assert.Equal(t, 2, m.Catalog.Page())
	assert.Equal(t, "isbn-7", selectedISBN(m))
}

func TestModel_ReviewsPaging(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(2))
	require.NotNil(t, m.Reviews)
	assert.Equal(t, "isbn-1", m.Reviews.ISBN())

	reviews := []domain.Review{
		{UserName: "a", Rating: 5, Comment: "one", CreatedAt: time.Now()},
		{UserName: "b", Rating: 4, Comment: "two"},
		{UserName: "c", Rating: 3, Comment: "three"},
	}
	m, _ = update(m, ReviewsLoadedMsg{ISBN: "isbn-2", Reviews: reviews[:1]})
	assert.Empty(t, m.Reviews.Reviews(), "stale reviews are ignored")

	m, _ = update(m, ReviewsLoadedMsg{ISBN: "isbn-1", Reviews: reviews})
	assert.Equal(t, 2, m.Reviews.TotalPages())

	m = typeKeys(m, ">")
	assert.Equal(t, 2, m.Reviews.Page())
	m = typeKeys(m, ">")
	assert.Equal(t, 2, m.Reviews.Page())
	m = typeKeys(m, "<<")
	assert.Equal(t, 1, m.Reviews.Page())
}

func TestModel_PostReview(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(2))
	m, _ = update(m, ReviewsLoadedMsg{ISBN: "isbn-1"})

	m = typeKeys(m, "w5")
	m, _ = pressEnter(m)
	m = typeKeys(m, "Loved it")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, review.MsgPosted, m.StatusMsg)
	require.Len(t, h.repo.PostedReview, 1)
	assert.Equal(t, domain.ReviewInput{Rating: 5, Comment: "Loved it"}, h.repo.PostedReview[0])
	assert.True(t, m.reviewsLoading, "reviews are re-fetched after posting")
}

func TestModel_PostReviewIncomplete(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(2))

	m = typeKeys(m, "w")
	m, _ = pressEnter(m)
	m = typeKeys(m, "no rating")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, review.MsgIncomplete, m.StatusMsg)
	assert.Empty(t, h.repo.PostedReview)
}

func TestModel_RegisterOffersLogin(t *testing.T) {
	m, h := newTestModel(t, "", testutil.Books(2))
	h.repo.AuthMessage = account.ServerRegistered

	m = typeKeys(m, "S")
	for _, v := range []string{"reader", "reader@example.com", "hunter2"} {
		m = typeKeys(m, v)
		m, _ = pressEnter(m)
	}
	m = typeKeys(m, "hunter2")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	require.True(t, m.Confirm.IsVisible())
	assert.Equal(t, account.MsgOfferLogin, m.Confirm.Message())

	h.repo.AuthMessage = account.ServerLoggedIn
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m, _ = run(t, next.(Model), cmd)

	assert.Equal(t, 1, h.repo.CallCount("Login"))
	assert.Equal(t, "reader", m.Session.Username)
	assert.Equal(t, account.ServerLoggedIn, m.StatusMsg)
}

func TestModel_RegisterPasswordMismatch(t *testing.T) {
	m, h := newTestModel(t, "", testutil.Books(2))

	m = typeKeys(m, "S")
	for _, v := range []string{"reader", "reader@example.com", "hunter2"} {
		m = typeKeys(m, v)
		m, _ = pressEnter(m)
	}
	m = typeKeys(m, "hunter3")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, account.MsgPasswordMismatch, m.StatusMsg)
	assert.Zero(t, h.repo.CallCount("Register"))
	assert.False(t, m.Confirm.IsVisible())
}

func TestModel_LogoutClearsSession(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(2))
	h.repo.AuthMessage = account.ServerLoggedOut

	m = typeKeys(m, "O")
	require.True(t, m.Confirm.IsVisible())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m, _ = run(t, next.(Model), cmd)

	assert.False(t, m.Session.SignedIn())
	assert.Equal(t, account.ServerLoggedOut, m.StatusMsg)
}

func TestModel_DeleteAccountDeclined(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(2))

	m = typeKeys(m, "D")
	require.True(t, m.Confirm.IsVisible())
	assert.Equal(t, account.MsgDeleteAccountAsk, m.Confirm.Message())

	m = typeKeys(m, "n")
	assert.False(t, m.Confirm.IsVisible())
	assert.False(t, m.Form.IsVisible())
	assert.Zero(t, h.repo.CallCount("DeleteAccount"))
}

func TestModel_DeleteAccountUsernameMismatch(t *testing.T) {
	m, h := newTestModel(t, "reader", testutil.Books(2))

	m = typeKeys(m, "Dy")
	require.True(t, m.Form.IsVisible())
	for _, v := range []string{"someone", "reader@example.com"} {
		m = typeKeys(m, v)
		m, _ = pressEnter(m)
	}
	m = typeKeys(m, "hunter2")
	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	assert.Equal(t, account.MsgUsernameMismatch, m.StatusMsg)
	assert.Zero(t, h.repo.CallCount("DeleteAccount"))
	assert.True(t, m.Session.SignedIn())
}

func TestModel_BooksLoadError(t *testing.T) {
	m, _ := newTestModel(t, "", testutil.Books(3))

	m, _ = update(m, ErrMsg{Err: domain.ErrServerOffline, Context: "loading books"})
	assert.Zero(t, m.Grid.Len())
	assert.False(t, m.Loading)
	assert.Empty(t, m.StatusMsg, "a failed load is only logged")
	assert.False(t, m.StatusIsErr)
	assert.Contains(t, m.Grid.View(), "No books available.")
}

func TestModel_ViewRenders(t *testing.T) {
	m, _ := newTestModel(t, "admin", testutil.Books(3))

	view := m.View()
	assert.Contains(t, view, "folio")
	assert.Contains(t, view, "ADMIN")
	assert.Contains(t, view, "Book 1")

	m = typeKeys(m, "?")
	assert.Contains(t, m.View(), "Press any key to return")
	m = typeKeys(m, "x")
	assert.Equal(t, StateBrowsing, m.State)
}
