package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagpicker/internal/config"
)

// RunInteractiveConfigure prompts for connection settings and persists them.
// Existing values are offered as defaults; an empty answer keeps them.
func RunInteractiveConfigure(in io.Reader, out io.Writer) error {
	cfg := config.Default()
	existing, err := config.Load()
	switch {
	case err == nil:
		cfg = *existing
	case !errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(out, "ignoring existing config: %v\n", err)
	}

	reader := bufio.NewReader(in)
	ask := func(label, current string) string {
		if current != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, current)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return current
		}
		return line
	}

	cfg.ProjectID = ask("project id", cfg.ProjectID)
	if cfg.ProjectID == "" {
		return fmt.Errorf("project id is required")
	}
	keyHint := ""
	if cfg.APIKey != "" {
		keyHint = "keep"
	}
	if key := ask("api key (optional)", keyHint); key != "keep" {
		cfg.APIKey = key
	}
	cfg.Language = ask("language", cfg.Language)
	cfg.RedisAddr = ask("redis address (optional)", cfg.RedisAddr)

	timeout := ask("timeout seconds", strconv.Itoa(cfg.TimeoutSeconds))
	n, err := strconv.Atoi(timeout)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid timeout %q", timeout)
	}
	cfg.TimeoutSeconds = n

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "project %s configured\n", cfg.ProjectID)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// ConfigureCmd returns the `tagpicker configure` command.
func ConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Set the project and delivery API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunInteractiveConfigure(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
