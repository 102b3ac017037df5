package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/adapter"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/review"
	"github.com/mmcdole/folio/internal/tui/styles"
	"github.com/spf13/cobra"
)

var (
	errSignedOut = errors.New(`not signed in; run "folio login" first`)
	errAdminOnly = errors.New("only the administrator can manage the catalog")
	errNotOwned  = errors.New("buy this book before downloading it")
)

// === Catalog ===

type booksOptions struct {
	search string
	page   int
}

func newBooksCmd(c *cli) *cobra.Command {
	var opts booksOptions
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			return a.listBooks(ctx, opts)
		}),
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only titles containing this text")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page to show")
	return cmd
}

func (a *app) listBooks(ctx context.Context, opts booksOptions) error {
	books, err := a.svc.Catalog.FetchBooks(ctx)
	if err != nil {
		return err
	}

	view := catalog.NewView(a.cfg.UI.ItemsPerPage)
	view.SetBooks(books)
	view.SetSearchTerm(opts.search)
	view.ChangePage(opts.page)

	displayed := view.Displayed()
	if len(displayed) == 0 {
		fmt.Fprintln(a.out, emptyCatalogText(view))
		return nil
	}

	var owned map[string]bool
	if a.svc.Account.Session().SignedIn() {
		isbns := make([]string, len(displayed))
		for i, b := range displayed {
			isbns[i] = b.ISBN
		}
		owned = a.svc.Catalog.FetchOwnership(ctx, isbns)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("ISBN", "TITLE", "AUTHOR", "YEAR", "PRICE")
	for _, b := range displayed {
		price := b.FormattedPrice()
		if owned[b.ISBN] {
			price = "owned"
		}
		t.Row(b.ISBN, b.Title, b.Author, b.YearString(), price)
	}

	fmt.Fprintln(a.out, t.String())
	fmt.Fprintf(a.out, "page %d of %d\n", view.Page(), view.TotalPages())
	return nil
}

func emptyCatalogText(view *catalog.View) string {
	term := view.SearchTerm()
	switch {
	case len(view.Books()) == 0:
		return "No books available."
	case term != "" && len(view.Filtered()) == 0:
		text := fmt.Sprintf("No books match %q.", term)
		if titles := catalog.Suggest(term, view.Books()); len(titles) > 0 {
			text += " Did you mean: " + strings.Join(titles, ", ") + "?"
		}
		return text
	default:
		return "No books on this page."
	}
}

func newBuyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <isbn>",
		Short: "Buy a book after typing its ISBN to confirm",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			book, err := a.findBook(ctx, args[0])
			if err != nil {
				return err
			}
			return finish(a.svc.Catalog.Purchase(ctx, book, a.dialog))
		}),
	}
}

func newDownloadCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "download <isbn>",
		Short: "Open the download link of a book you own",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			book, err := a.findBook(ctx, args[0])
			if err != nil {
				return err
			}
			if !a.svc.Catalog.FetchOwnership(ctx, []string{book.ISBN})[book.ISBN] {
				return errNotOwned
			}
			return finish(a.svc.Catalog.DownloadWith(ctx, book, a.dialog))
		}),
	}
}

// === Reviews ===

func newReviewsCmd(c *cli) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "reviews <isbn>",
		Short: "Show one page of a book's reviews",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app, args []string) error {
			return a.listReviews(ctx, args[0], page)
		}),
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	return cmd
}

func (a *app) listReviews(ctx context.Context, isbn string, page int) error {
	reviews, err := a.svc.Reviews.Fetch(ctx, isbn)
	if err != nil {
		return err
	}

	view := review.NewView(isbn, a.cfg.UI.ReviewsPerPage)
	view.SetReviews(reviews)
	if page >= 1 && page <= view.TotalPages() {
		view.ChangePage(page)
	}

	if len(view.Reviews()) == 0 {
		fmt.Fprintln(a.out, review.MsgEmpty)
		return nil
	}

	for _, r := range view.Displayed() {
		header := styles.TitleStyle.Render(r.UserName) + " " + styles.StarStyle.Render(r.Stars())
		if !r.CreatedAt.IsZero() {
			header += styles.DimStyle.Render(" · " + r.CreatedAt.Format("Jan 2, 2006"))
		}
		fmt.Fprintln(a.out, header)
		fmt.Fprintln(a.out, "  "+r.Comment)
	}
	if view.ShowPagination() {
		fmt.Fprintf(a.out, "page %d of %d\n", view.Page(), view.TotalPages())
	}
	return nil
}

func newReviewCmd(c *cli) *cobra.Command {
	var rating int
	var comment string
	cmd := &cobra.Command{
		Use:   "review <isbn>",
		Short: "Post a review of a book",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, a *app, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			if rating == 0 {
				answer := a.dialog.Prompt(ctx, domain.Prompt{Message: "Rating (1-5):"})
				if answer.Cancelled {
					return errIncomplete
				}
				rating, _ = strconv.Atoi(strings.TrimSpace(answer.Value))
			}
			if comment == "" {
				answer := a.dialog.Prompt(ctx, domain.Prompt{Message: "Comment:"})
				if answer.Cancelled {
					return errIncomplete
				}
				comment = answer.Value
			}
			return a.report(a.svc.Reviews.Post(ctx, args[0], rating, comment))
		}),
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "rating from 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "review text")
	return cmd
}

// === Account ===

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			creds, ok := account.PromptCredentials(ctx, a.dialog)
			if !ok {
				return errIncomplete
			}
			return a.report(a.svc.Account.Login(ctx, creds))
		}),
	}
}

func newRegisterCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			creds, ok := account.PromptCredentials(ctx, a.dialog)
			if !ok {
				return errIncomplete
			}
			confirm := a.dialog.Prompt(ctx, domain.Prompt{Message: "Confirm password:", Secret: true})
			if confirm.Cancelled {
				return errIncomplete
			}
			reg := domain.Registration{Credentials: creds, ConfirmPassword: confirm.Value}
			return finish(a.svc.Account.RegisterWith(ctx, reg, a.dialog))
		}),
	}
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			return a.report(a.svc.Account.Logout(ctx))
		}),
	}
}

func newBalanceCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your account balance",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			return a.report(a.svc.Account.Balance(ctx))
		}),
	}
}

func newDeleteAccountCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account",
		Short: "Delete your account",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			return finish(a.svc.Account.DeleteAccount(ctx, a.dialog))
		}),
	}
}

// === Admin ===

func newAdminCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog records (administrator only)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Add a book",
			Args:  cobra.NoArgs,
			RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
				if err := a.requireAdmin(); err != nil {
					return err
				}
				input, err := a.askBook(ctx, admin.CreateFields(), domain.BookInput{})
				if err != nil {
					return err
				}
				return a.report(a.svc.Admin.Create(ctx, input))
			}),
		},
		&cobra.Command{
			Use:   "update <isbn>",
			Short: "Edit a book; blank answers keep the current value except the download link",
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(ctx context.Context, a *app, args []string) error {
				if err := a.requireAdmin(); err != nil {
					return err
				}
				book, err := a.findBook(ctx, args[0])
				if err != nil {
					return err
				}
				input, err := a.askBook(ctx, admin.UpdateFields(book), domain.InputFromBook(book))
				if err != nil {
					return err
				}
				return a.report(a.svc.Admin.Update(ctx, book.ISBN, input))
			}),
		},
		&cobra.Command{
			Use:   "delete <isbn>",
			Short: "Delete a book after typing its ISBN to confirm",
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(ctx context.Context, a *app, args []string) error {
				if err := a.requireAdmin(); err != nil {
					return err
				}
				book, err := a.findBook(ctx, args[0])
				if err != nil {
					return err
				}
				return finish(a.svc.Admin.Delete(ctx, book, a.dialog))
			}),
		},
	)
	return cmd
}

// askBook prompts for each field and parses the answers over base
func (a *app) askBook(ctx context.Context, fields []admin.Field, base domain.BookInput) (domain.BookInput, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		answer := a.dialog.Prompt(ctx, domain.Prompt{Message: f.Label})
		if answer.Cancelled {
			return base, errIncomplete
		}
		values[f.Key] = answer.Value
	}

	input, err := admin.ParseForm(values, base)
	if err != nil {
		a.dialog.Alert("Error: " + err.Error())
		return input, errIncomplete
	}
	return input, nil
}

// === Config ===

func newServerCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "server <url>",
		Short: "Save the bookstore server URL to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(_ context.Context, a *app, args []string) error {
			cfg := *a.cfg
			cfg.Server.URL = strings.TrimRight(args[0], "/")
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := adapter.SaveConfig(&cfg); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Server set to %s (saved in %s)\n", cfg.Server.URL, adapter.ConfigDir())
			return nil
		}),
	}
}

func newCacheCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage stored sessions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored sessions of every server",
		Long: `Remove the session cache directory. Every server's cookies and
sign-in state are forgotten, so the next run starts signed out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if err := adapter.ClearCache(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared stored sessions in %s\n", cfg.Cache.Dir)
			return nil
		},
	})
	return cmd
}

// === Helpers ===

func (a *app) requireSignIn() error {
	if !a.svc.Account.Session().SignedIn() {
		return errSignedOut
	}
	return nil
}

func (a *app) requireAdmin() error {
	if !a.svc.Account.Session().IsAdmin() {
		return errAdminOnly
	}
	return nil
}

// findBook looks isbn up in the catalog
func (a *app) findBook(ctx context.Context, isbn string) (domain.Book, error) {
	books, err := a.svc.Catalog.FetchBooks(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	for _, b := range books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return domain.Book{}, fmt.Errorf("book %q: %w", isbn, domain.ErrNotFound)
}

// report shows an outcome's alert and turns it into the command result
func (a *app) report(out domain.Outcome) error {
	a.dialog.Alert(out.Message)
	return finish(out)
}

func finish(out domain.Outcome) error {
	if out.IsError() {
		return errIncomplete
	}
	return nil
}
