package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/tagpicker/internal/cmd"
	"github.com/gravitrone/tagpicker/internal/config"
	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/ui"
	"github.com/gravitrone/tagpicker/internal/widget"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	var title string
	root := &cobra.Command{
		Use:   "tagpicker <element-file>",
		Short: "tagpicker - hierarchical taxonomy tag selector",
		Long: "tagpicker edits the tag selection stored in an element file, " +
			"offering the project's taxonomy as an indented, searchable list.",
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPicker(c.Context(), args[0], title)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVarP(&title, "title", "t", "", "heading shown above the picker")

	root.AddCommand(cmd.ConfigureCmd())
	root.AddCommand(cmd.TreeCmd())
	root.AddCommand(cmd.ResolveCmd())
	root.AddCommand(cmd.ElementCmd())
	return root
}

func runPicker(ctx context.Context, path, title string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open element: %w (create one with 'tagpicker element init')", err)
	}

	cfg, err := config.LoadOrEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rt, err := cmd.NewRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if title == "" {
		title = filepath.Base(path)
	}
	fileHost := host.NewFileHost(path)
	session := widget.New(fileHost, rt.Repo, rt.Logger)
	picker := ui.NewPicker(ctx, session, ui.Options{
		Title:           title,
		DisabledChanges: fileHost.DisabledChanges(),
		ToggleReadOnly:  fileHost.SetDisabled,
	})

	p := tea.NewProgram(picker, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if m, ok := final.(ui.Picker); ok {
		return m.Err()
	}
	return nil
}
