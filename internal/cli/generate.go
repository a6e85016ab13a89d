package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/internal/bindgen"
	"github.com/woxQAQ/cryptobind/internal/schema"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Schema  string
	Package string
	Client  string
	Output  string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go client from an export schema",
		Long: `Generate a Go client from an export schema.

Every function in the schema becomes one client method. Nothing is written
unless the whole schema generates.

Example:
  bindgen generate --schema exports.json --output api.go`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "export schema file (json or yaml)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package name of the generated file (default from config)")
	cmd.Flags().StringVar(&opts.Client, "client", "", "client type name (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	if err := opts.prepare(); err != nil {
		return err
	}

	specs, err := schema.Load(opts.Schema)
	if err != nil {
		return WrapExitError(ExitCommandError, "load schema", err)
	}

	genOpts := bindgen.Options{
		Package: firstNonEmpty(opts.Package, opts.Config.Generator.Package),
		Client:  firstNonEmpty(opts.Client, opts.Config.Generator.Client),
		Source:  filepath.Base(opts.Schema),
	}
	src, err := bindgen.Generate(specs, genOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "generate", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(src)
		return err
	}
	if err := writeFileAtomic(opts.Output, src); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	opts.Logger.Info("Generated bindings",
		zap.String("schema", opts.Schema),
		zap.String("output", opts.Output),
		zap.Int("functions", len(specs)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bindings to %s\n", len(specs), opts.Output)
	return nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, so a failed write leaves the old file in place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
