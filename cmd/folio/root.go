package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/folio/internal/adapter"
	"github.com/mmcdole/folio/internal/tui"
	"github.com/spf13/cobra"
)

// errIncomplete marks an action that ended without success. Its alert has
// already been shown, so main only sets the exit status.
var errIncomplete = errors.New("action did not complete")

// cli opens the app on first use so "version" and "--help" need no config.
// Commands that must not open the session store read config directly.
type cli struct {
	open   func() (*app, error)
	config func() (*adapter.Config, error)
	app    *app
}

func (c *cli) load(cmd *cobra.Command) (*app, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := c.open()
	if err != nil {
		return nil, err
	}
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}
	if a.dialog == nil {
		a.dialog = newTerminalDialog(cmd.InOrStdin(), a.out)
	}
	c.app = a
	return a, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// run adapts an app action to a cobra RunE
func (c *cli) run(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.load(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, args)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Browse, buy and review books from a bookstore server",
		Long: `folio is a terminal client for a bookstore server.

Run without arguments to open the interactive catalog. The subcommands
perform single actions for scripting.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app, _ []string) error {
			return a.runTUI(ctx)
		}),
	}
	root.SetVersionTemplate("folio {{.Version}}\n")

	root.AddCommand(
		newVersionCmd(),
		newBooksCmd(c),
		newBuyCmd(c),
		newDownloadCmd(c),
		newReviewsCmd(c),
		newReviewCmd(c),
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newBalanceCmd(c),
		newDeleteAccountCmd(c),
		newAdminCmd(c),
		newServerCmd(c),
		newCacheCmd(c),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", Version)
		},
	}
}

// runTUI runs the interactive catalog until the user quits
func (a *app) runTUI(ctx context.Context) error {
	model := tui.NewModel(a.svc, tui.Options{
		ItemsPerPage:   a.cfg.UI.ItemsPerPage,
		ReviewsPerPage: a.cfg.UI.ReviewsPerPage,
		Theme:          a.cfg.UI.Theme,
	}, a.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
