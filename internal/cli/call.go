package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woxQAQ/cryptobind/pkg/abi"
	"github.com/woxQAQ/cryptobind/pkg/dispatch"
)

// NewCallCommand creates the call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <bundle-dir> <function> [arg...]",
		Short: "Invoke one export of a bundle",
		Long: `Invoke one export of a bundle.

Arguments are given in schema order in their text form: hex for field
elements and byte buffers (0x optional), x:y for points, true/false for
booleans, decimal for unsigned-32, and comma separated elements for
vectors. Outputs are printed one per line in the same form.

Example:
  bindgen call ./bundles/barretenberg pedersen__compress_fields 0x01 0x02`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(rootOpts, args[0], args[1], args[2:], cmd)
		},
	}

	return cmd
}

func runCall(opts *RootOptions, dir, function string, values []string, cmd *cobra.Command) error {
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

	spec, ok := b.Function(function)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("bundle '%s' has no function '%s'", b.Name(), function))
	}
	if len(values) != len(spec.InArgs) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("'%s' takes %d arguments, got %d", function, len(spec.InArgs), len(values)))
	}

	inKinds, err := spec.InputKinds()
	if err != nil {
		return WrapExitError(ExitCommandError, "schema", err)
	}
	outKinds, err := spec.OutputKinds()
	if err != nil {
		return WrapExitError(ExitCommandError, "schema", err)
	}

	args := make([]dispatch.Arg, len(values))
	for i, s := range values {
		v, err := abi.ParseValue(inKinds[i], s)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("argument '%s'", spec.InArgs[i].Name), err)
		}
		args[i] = dispatch.Arg{Value: v, Kind: inKinds[i]}
	}

	session, err := env.manager.Open(ctx, b.Name())
	if err != nil {
		return WrapExitError(ExitCommandError, "instantiate bundle", err)
	}
	defer session.Close(ctx)

	results, err := session.Dispatcher.Invoke(ctx, function, args, outKinds)
	if err != nil {
		return WrapExitError(ExitFailure, "call", err)
	}

	out := cmd.OutOrStdout()
	for i, v := range results {
		text, err := abi.FormatValue(outKinds[i], v)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("format '%s'", spec.OutArgs[i].Name), err)
		}
		fmt.Fprintf(out, "%s = %s\n", spec.OutArgs[i].Name, text)
	}
	return nil
}
