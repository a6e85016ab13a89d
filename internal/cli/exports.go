package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/woxQAQ/cryptobind/internal/naming"
	"github.com/woxQAQ/cryptobind/internal/schema"
)

// NewExportsCommand creates the exports command.
func NewExportsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports <bundle-dir>",
		Short: "List a bundle's schema functions and check them against its module",
		Long: `List a bundle's schema functions and check them against its module.

Each function is shown with its generated Go method name and whether the
compiled wasm module exports it.

Example:
  bindgen exports ./bundles/barretenberg`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExports(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExports(opts *RootOptions, dir string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := openEnvironment(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	b, err := env.manager.LoadDir(ctx, dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "load bundle", err)
	}

	rows := make([][]string, 0, len(b.Schema))
	for _, spec := range b.Schema {
		rows = append(rows, []string{
			spec.FunctionName,
			goName(spec.FunctionName),
			signature(spec),
			yesNo(b.Provides(spec.FunctionName)),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"FUNCTION", "GO NAME", "SIGNATURE", "EXPORTED"}, rows))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s %s: %d of %d functions exported by %s",
		b.Name(), b.Version(), len(b.Schema)-len(b.Missing), len(b.Schema), b.Manifest.Wasm.File)))
	return nil
}

func goName(function string) string {
	name, err := naming.GoName(function)
	if err != nil {
		return "-"
	}
	return name
}

// signature renders "(in, ...) -> (out, ...)" with the schema's wire types.
func signature(spec schema.FunctionSpec) string {
	types := func(args []schema.ArgumentSpec) string {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.Type)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return types(spec.InArgs) + " -> " + types(spec.OutArgs)
}
