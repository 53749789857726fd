package cmd

import (
	"context"
	"fmt"
	"io"

	"cellular/core/config"
	"cellular/core/jsonvalue"
	"cellular/core/recon"
	"cellular/core/resource"

	"github.com/spf13/cobra"
)

// exitNotFound is the exit status of load when the resource does not exist.
const exitNotFound = 2

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load and decode a resource",
	Long: `Resolves a resource through the configured search path, decodes it as JSON or
Recon and prints the value. The format defaults to the resource's extension.
Exits with status 2 when the resource does not exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := cliLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		chain, err := newSearchPath(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		return runLoad(cmd.Context(), resource.NewLoader(chain, logg), args[0], format, output, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runLoad(ctx context.Context, l *resource.Loader, name, format, output string, stdout, stderr io.Writer) error {
	var f resource.Format
	if format != "" {
		parsed, err := resource.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	} else if byName, ok := resource.FormatFromName(name); ok {
		f = byName
	} else {
		return fmt.Errorf("cannot infer the format of %q, use --format", name)
	}

	v, ok, err := l.Load(ctx, name, f)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(stderr, "%s: not found\n", name)
		return exitCodeError{code: exitNotFound}
	}

	switch output {
	case "recon":
		fmt.Fprintln(stdout, recon.Format(v))
	case "", "json":
		out, err := jsonvalue.EncodeIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s as JSON: %w", name, err)
		}
		fmt.Fprintln(stdout, string(out))
	default:
		return fmt.Errorf("unknown output %q (want json or recon)", output)
	}
	return nil
}

func init() {
	loadCmd.Flags().String("format", "", "Decoding format (json or recon)")
	loadCmd.Flags().StringP("output", "o", "json", "Output notation (json or recon)")
	RootCmd.AddCommand(loadCmd)
}
