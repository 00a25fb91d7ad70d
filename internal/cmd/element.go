package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagpicker/internal/config"
	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// ElementCmd returns the `tagpicker element` command group.
func ElementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "element",
		Short: "Manage element files edited by the picker",
	}
	cmd.AddCommand(elementInitCmd())
	cmd.AddCommand(elementShowCmd())
	return cmd
}

func elementInitCmd() *cobra.Command {
	var (
		project   string
		language  string
		parent    string
		codenames string
		value     string
	)
	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a new element file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if project == "" || language == "" {
				if cfg, err := config.LoadOrEnv(); err == nil {
					if project == "" {
						project = cfg.ProjectID
					}
					if language == "" {
						language = cfg.Language
					}
				}
			}

			elementCfg := host.ElementConfig{ParentTagCodename: parent, SpecificTagCodenames: codenames}
			raw, err := json.Marshal(elementCfg)
			if err != nil {
				return fmt.Errorf("encode element config: %w", err)
			}

			var v *string
			if value != "" {
				v = &value
			}
			hostCtx := host.Context{ProjectID: project, Variant: host.Variant{Codename: language}}
			if err := host.WriteElement(args[0], v, raw, hostCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "element written to %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project id (default from config)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "language codename (default from config)")
	cmd.Flags().StringVar(&parent, "parent", "", "offer only the subtree under this tag codename")
	cmd.Flags().StringVar(&codenames, "codenames", "", "offer only these comma-separated tag codenames")
	cmd.Flags().StringVar(&value, "value", "", "initial saved value")
	return cmd
}

func elementShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Print the codenames saved in an element file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			el, hostCtx, err := host.NewFileHost(args[0]).Init(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "project:  %s\n", hostCtx.ProjectID)
			fmt.Fprintf(out, "language: %s\n", hostCtx.Variant.Codename)
			if el.Disabled {
				fmt.Fprintln(out, "disabled: true")
			}
			for _, c := range taxonomy.ParseSavedValue(el.Value) {
				fmt.Fprintf(out, "  %s\n", c)
			}
			return nil
		},
	}
}
