package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/khabri/internal/cmd"
	"github.com/gravitrone/khabri/internal/ui"
)

var errNotTerminal = errors.New("not a terminal")

func main() {
	os.Exit(run())
}

func init() {
	// Force truecolor so hex colors render correctly.
	// Must be set before any lipgloss style initialization.
	os.Setenv("COLORTERM", "truecolor")
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "khabri",
		Short: "Khabri - student records from the terminal",
		Long:  "Khabri keeps a list of students in sync with a remote collection API: browse, add, edit and delete from a TUI or scripts.",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddGlobalFlags(root)

	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.AddCmd())
	root.AddCommand(cmd.UpdateCmd())
	root.AddCommand(cmd.DeleteCmd())
	root.AddCommand(cmd.ConfigCmd())
	root.AddCommand(cmd.ServeCmd())
	return root
}

func runTUI(c *cobra.Command) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		fmt.Fprintln(c.ErrOrStderr(), "the TUI needs a terminal; try 'khabri list'.")
		return errNotTerminal
	}

	s, err := cmd.Open(c)
	if err != nil {
		return err
	}
	defer s.Close()
	s.Logger.Info("tui starting", zap.String("api_url", s.Config.APIURL))

	app := ui.NewApp(s.Store, s.Config)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(c.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
