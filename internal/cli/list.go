package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the bundles found in the configured bundle paths",
		Long: `List the bundles found in the configured bundle paths.

Bundle paths come from bundle_paths in the config file or
CRYPTOBIND_BUNDLE_PATHS.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := openEnvironment(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	if err := env.manager.LoadAll(ctx); err != nil {
		return WrapExitError(ExitCommandError, "load bundles", err)
	}

	out := cmd.OutOrStdout()
	bundles := env.manager.Registry().List()
	if len(bundles) == 0 {
		fmt.Fprintln(out, dimStyle.Render("no bundles found"))
		return nil
	}

	rows := make([][]string, 0, len(bundles))
	for _, b := range bundles {
		rows = append(rows, []string{
			b.Name(),
			b.Version(),
			strconv.Itoa(len(b.Schema) - len(b.Missing)),
			strconv.Itoa(len(b.Missing)),
			b.Manifest.Dir(),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"NAME", "VERSION", "EXPORTS", "MISSING", "PATH"}, rows))
	return nil
}
