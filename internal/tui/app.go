package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/review"
	"github.com/mmcdole/folio/internal/tui/components"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const (
	statusDuration = 5 * time.Second
	tickInterval   = 100 * time.Millisecond
)

// Services bundles the application services the TUI drives
type Services struct {
	Catalog *catalog.Service
	Reviews *review.Service
	Admin   *admin.Service
	Account *account.Service
}

// Options holds display settings
type Options struct {
	ItemsPerPage   int
	ReviewsPerPage int
	Theme          string
}

// flow identifies which user action an open modal belongs to
type flow int

const (
	flowNone flow = iota
	flowPurchase
	flowDeleteBook
	flowCreateBook
	flowUpdateBook
	flowReview
	flowLogin
	flowRegister
	flowOfferLogin
	flowLogout
	flowDeleteAccountAsk
	flowDeleteAccount
)

// pendingFlow is the action waiting on the visible modal
type pendingFlow struct {
	kind  flow
	book  domain.Book
	creds domain.Credentials
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Svc    Services
	logger *slog.Logger

	// Data
	Catalog        *catalog.View
	Reviews        *review.View // reviews of the inspected book, nil until requested
	Session        domain.Session
	reviewsPerPage int
	reviewsLoading bool
	reviewsFailed  bool

	// UI Components
	Grid      components.BookGrid
	Pager     components.Pager
	Inspector components.Inspector
	Omnibar   components.Omnibar
	Form      components.FormModal
	Confirm   components.ConfirmModal
	Search    textinput.Model
	Searching bool

	pending pendingFlow

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	Loading       bool
	SpinnerFrame  int
	ShowInspector bool
}

// NewModel creates a new application model
func NewModel(svc Services, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	reviewsPerPage := opts.ReviewsPerPage
	if reviewsPerPage <= 0 {
		reviewsPerPage = review.DefaultPerPage
	}

	search := textinput.New()
	search.Placeholder = "Search by title..."
	search.Prompt = "/ "
	search.PromptStyle = styles.FilterPromptStyle
	search.TextStyle = styles.FilterStyle
	search.PlaceholderStyle = styles.DimStyle
	search.CharLimit = 100
	search.Width = 30

	return Model{
		State:          StateBrowsing,
		Svc:            svc,
		logger:         logger,
		Catalog:        catalog.NewView(opts.ItemsPerPage),
		Session:        svc.Account.Session(),
		reviewsPerPage: reviewsPerPage,
		Grid:           components.NewBookGrid(),
		Pager:          components.NewPager(),
		Inspector:      components.NewInspector(components.GlamourStyle(opts.Theme)),
		Omnibar:        components.NewOmnibar(),
		Form:           components.NewFormModal(),
		Search:         search,
		Loading:        true,
		ShowInspector:  true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadBooksCmd(m.Svc.Catalog),
		TickCmd(tickInterval),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if m.Loading {
			m.SpinnerFrame++
			return m, TickCmd(tickInterval)
		}
		return m, nil

	case BooksLoadedMsg:
		m.Loading = false
		m.Catalog.SetBooks(msg.Books)
		return m, m.refreshView()

	case OwnershipLoadedMsg:
		if !m.Catalog.ApplyOwnership(msg.Batch, msg.Owned) {
			return m, nil // stale
		}
		return m, m.refreshView()

	case ReviewsLoadedMsg:
		if m.Reviews == nil || m.Reviews.ISBN() != msg.ISBN {
			return m, nil // stale
		}
		m.reviewsLoading = false
		m.reviewsFailed = msg.Err != nil
		if msg.Err == nil {
			m.Reviews.SetReviews(msg.Reviews)
		}
		m.syncReviews()
		return m, nil

	case OutcomeMsg:
		return m.handleOutcome(msg)

	case ErrMsg:
		m.Loading = false
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		if msg.Context == "loading books" {
			// the list just stays empty
			m.Catalog.SetBooks(nil)
			return m, m.refreshView()
		}
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusDuration)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusDuration)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleOutcome shows an action's alert and re-fetches whatever it changed
func (m Model) handleOutcome(msg OutcomeMsg) (tea.Model, tea.Cmd) {
	out := msg.Outcome
	var cmds []tea.Cmd
	if out.Message != "" {
		m.StatusMsg = out.Message
		m.StatusIsErr = out.IsError()
		cmds = append(cmds, ClearStatusCmd(statusDuration))
	}

	switch msg.Action {
	case ActionPurchase:
		if out.Responded {
			m.Catalog.InvalidateOwnership(msg.ISBN)
			cmds = append(cmds, m.refreshView())
		}

	case ActionCreateBook, ActionUpdateBook, ActionDeleteBook:
		if out.Responded {
			cmds = append(cmds, m.reloadBooks())
		}

	case ActionPostReview:
		if out.Responded && m.Reviews != nil && m.Reviews.ISBN() == msg.ISBN {
			m.reviewsLoading = true
			m.syncReviews()
			cmds = append(cmds, LoadReviewsCmd(m.Svc.Reviews, msg.ISBN))
		}

	case ActionLogin, ActionLogout, ActionDeleteAccount:
		if out.Kind == domain.OutcomeSucceeded {
			m.Session = m.Svc.Account.Session()
			cmds = append(cmds, m.reloadBooks())
		}

	case ActionRegister:
		if out.Kind == domain.OutcomeSucceeded {
			m.pending = pendingFlow{kind: flowOfferLogin, creds: msg.Credentials}
			m.Confirm.Show("Account created", account.MsgOfferLogin)
		}
	}

	return m, tea.Batch(cmds...)
}

// reloadBooks re-fetches the catalog, which also resets ownership flags
func (m *Model) reloadBooks() tea.Cmd {
	m.Loading = true
	return tea.Batch(LoadBooksCmd(m.Svc.Catalog), TickCmd(tickInterval))
}

// refreshView syncs the grid, pager and inspector with the catalog view and
// returns the fetches the displayed page still needs
func (m *Model) refreshView() tea.Cmd {
	displayed := m.Catalog.Displayed()
	cards := make([]components.BookCard, len(displayed))
	for i, b := range displayed {
		cards[i] = components.BookCard{Book: b, Owned: m.Catalog.Owned(b.ISBN)}
	}
	m.Grid.SetCards(cards)
	m.Grid.SetShowActions(m.Session.SignedIn())
	m.Grid.SetEmpty(m.emptyText())
	m.Pager.Sync(m.Catalog.Page(), m.Catalog.TotalPages())

	var cmds []tea.Cmd
	if m.Session.SignedIn() {
		if isbns, batch := m.Catalog.PendingOwnership(); len(isbns) > 0 {
			cmds = append(cmds, LoadOwnershipCmd(m.Svc.Catalog, isbns, batch))
		}
	}
	cmds = append(cmds, m.syncInspector())
	return tea.Batch(cmds...)
}

func (m Model) emptyText() (string, []string) {
	term := m.Catalog.SearchTerm()
	switch {
	case len(m.Catalog.Books()) == 0:
		return "No books available.", nil
	case term != "" && len(m.Catalog.Filtered()) == 0:
		return fmt.Sprintf("No books match %q.", term), catalog.Suggest(term, m.Catalog.Books())
	default:
		return "No books on this page.", nil
	}
}

// syncInspector shows the selected book and requests its reviews when the
// inspector is open on a book whose reviews are not loaded yet
func (m *Model) syncInspector() tea.Cmd {
	card, ok := m.Grid.Selected()
	if !ok {
		m.Inspector.SetBook(nil, false)
		return nil
	}
	book := card.Book
	m.Inspector.SetBook(&book, card.Owned)

	if !m.ShowInspector || (m.Reviews != nil && m.Reviews.ISBN() == book.ISBN) {
		return nil
	}
	m.Reviews = review.NewView(book.ISBN, m.reviewsPerPage)
	m.reviewsLoading = true
	m.reviewsFailed = false
	m.syncReviews()
	return LoadReviewsCmd(m.Svc.Reviews, book.ISBN)
}

func (m *Model) syncReviews() {
	if m.Reviews == nil {
		m.Inspector.SetReviews(components.ReviewsState{})
		return
	}
	m.Inspector.SetReviews(components.ReviewsState{
		Loading:    m.reviewsLoading,
		Failed:     m.reviewsFailed,
		Reviews:    m.Reviews.Displayed(),
		Page:       m.Reviews.Page(),
		TotalPages: m.Reviews.TotalPages(),
		EmptyText:  review.MsgEmpty,
	})
}

// changePage moves the catalog to page and selects its first book
func (m *Model) changePage(page int) tea.Cmd {
	if page == m.Catalog.Page() {
		return nil
	}
	m.Catalog.ChangePage(page)
	m.Grid.SetCursor(0)
	return m.refreshView()
}

// changeReviewPage moves the review list to page within its bounds
func (m *Model) changeReviewPage(page int) {
	if m.Reviews == nil || page < 1 || page > m.Reviews.TotalPages() {
		return
	}
	m.Reviews.ChangePage(page)
	m.syncReviews()
}

// selectedBook returns the book under the grid cursor
func (m Model) selectedBook() (components.BookCard, bool) {
	return m.Grid.Selected()
}

// setStatus shows a status message that clears itself
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}
