package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"cellular/core/config"
	"cellular/core/resource"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resourcesCmd represents the resources command
var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Inspect and publish resources",
}

// resourcesListCmd represents the resources list command
var resourcesListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List the resources visible on the search path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, logg, err := openSearchPath(cmd.Context())
		if err != nil {
			return err
		}
		defer logg.Sync()

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		return runList(cmd.Context(), chain, prefix, cmd.OutOrStdout())
	},
}

// resourcesPutCmd represents the resources put command
var resourcesPutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Publish a file to the first writable source",
	Long: `Uploads a local file as a resource to the first source on the search path
that accepts writes (storage or database). The content is validated with the
loader before it is published.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, logg, err := openSearchPath(cmd.Context())
		if err != nil {
			return err
		}
		defer logg.Sync()

		content, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}
		if err := runPut(cmd.Context(), chain, args[0], content, logg); err != nil {
			return err
		}
		logg.Info("Published resource", zap.String("resource", args[0]), zap.Int("bytes", len(content)))
		return nil
	},
}

func openSearchPath(ctx context.Context) (*resource.ChainResolver, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := cliLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	chain, err := newSearchPath(ctx, cfg, logg)
	if err != nil {
		return nil, nil, err
	}
	return chain, logg, nil
}

func runList(ctx context.Context, lister resource.Lister, prefix string, w io.Writer) error {
	names, err := lister.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list resources: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// runPut publishes content after checking that it decodes, when its format
// is known from the name.
func runPut(ctx context.Context, publisher resource.Publisher, name string, content []byte, logg *zap.Logger) error {
	if format, ok := resource.FormatFromName(name); ok {
		staged := resource.NewLoader(resource.NewMemoryResolver(map[string][]byte{name: content}), logg)
		_, found, err := staged.Load(ctx, name, format)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("invalid resource name %q", name)
		}
	}
	if err := publisher.Put(ctx, name, content); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

func init() {
	resourcesCmd.AddCommand(resourcesListCmd)
	resourcesCmd.AddCommand(resourcesPutCmd)
	RootCmd.AddCommand(resourcesCmd)
}
