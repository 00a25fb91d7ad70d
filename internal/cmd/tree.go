package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/repository"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// sourceFlags selects which tags a command loads, mirroring the element config.
type sourceFlags struct {
	project   string
	language  string
	parent    string
	codenames string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project id (default from config)")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "language codename (default from config)")
	cmd.Flags().StringVar(&f.parent, "parent", "", "limit to the subtree under this tag codename")
	cmd.Flags().StringVar(&f.codenames, "codenames", "", "comma-separated list of tag codenames")
}

func (f *sourceFlags) query() repository.Query {
	return repository.QueryFromConfig(host.ElementConfig{
		ParentTagCodename:    f.parent,
		SpecificTagCodenames: f.codenames,
	})
}

// load fetches the tag universe described by the flags.
func (f *sourceFlags) load(ctx context.Context, rt *Runtime) (repository.Result, repository.Query, error) {
	project := f.project
	if project == "" {
		project = rt.Config.ProjectID
	}
	if project == "" {
		return repository.Result{}, repository.Query{}, fmt.Errorf("no project id: pass --project or run 'tagpicker configure'")
	}
	language := f.language
	if language == "" {
		language = rt.Config.Language
	}
	q := f.query()
	res := rt.Repo.Load(ctx, project, language, q)
	if res.Err != nil {
		return res, q, fmt.Errorf("load tags: %w", res.Err)
	}
	return res, q, nil
}

// PrintTree writes tags as an indented hierarchy, one tag per line.
func PrintTree(out io.Writer, tags []taxonomy.Tag) {
	for _, node := range taxonomy.Flatten(taxonomy.BuildForest(tags)) {
		fmt.Fprintf(out, "%s%s  (%s)\n", strings.Repeat("  ", node.Depth), taxonomy.DisplayName(node.Tag), node.Codename)
	}
}

// TreeCmd returns the `tagpicker tree` command.
func TreeCmd() *cobra.Command {
	var flags sourceFlags
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the tag hierarchy",
		Long:  "Print the tag hierarchy the picker would offer, indented by depth.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			res, q, err := flags.load(cmd.Context(), rt)
			if err != nil {
				return err
			}
			if len(res.Missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "not found: %s\n", strings.Join(res.Missing, ", "))
			}
			if len(res.Tags) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no tags found (%s)\n", q.Mode)
				return nil
			}
			PrintTree(cmd.OutOrStdout(), res.Tags)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
