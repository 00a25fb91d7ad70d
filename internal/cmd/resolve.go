package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// Resolve reconciles a saved field value against universe and returns the
// selection re-encoded in the current format with the codenames it dropped.
func Resolve(raw string, universe []taxonomy.Tag) (string, []string, error) {
	saved := taxonomy.ParseSavedValue(raw)
	selection := taxonomy.Reconcile(saved, universe)

	var dropped []string
	for _, c := range saved {
		if !selection.Contains(c) {
			dropped = append(dropped, c)
		}
	}
	value, err := taxonomy.SerializeSelection(selection)
	if err != nil {
		return "", nil, err
	}
	return value, dropped, nil
}

// ResolveCmd returns the `tagpicker resolve` command.
func ResolveCmd() *cobra.Command {
	var flags sourceFlags
	cmd := &cobra.Command{
		Use:   "resolve [value]",
		Short: "Rewrite a saved tag value against the current taxonomy",
		Long: "Parse a saved field value (any legacy shape), drop tags that no longer exist " +
			"and print the value in the current format. Reads stdin when no value is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readValue(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			rt, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			res, _, err := flags.load(cmd.Context(), rt)
			if err != nil {
				return err
			}
			value, dropped, err := Resolve(raw, res.Tags)
			if err != nil {
				return err
			}
			if len(dropped) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "dropped: %s\n", strings.Join(dropped, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func readValue(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read value: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
