package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/curiocat/curio/internal/config"
)

var (
	// Global flags
	catalogFlag string // Explicit catalog directory
	configFlag  string // Explicit config file path

	// Resolved values
	resolvedCatalog string
	cfg             *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "curio",
	Short: "Curio - a catalog for personal collections",
	Long: `Curio keeps catalogs of books, films, albums and bibliographies in
versioned XML files, one collection per file, with BibTeX export for
bibliographies.

A catalog is a plain directory of collection files. The search index
under .curio/ is derived data and can be rebuilt at any time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch a catalog
		switch cmd.Name() {
		case "version", "docs", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configFlag != "" {
			cfg, err = config.LoadFrom(configFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Catalog path: explicit flag > config > working directory
		switch {
		case catalogFlag != "":
			resolvedCatalog = catalogFlag
		case cfg.Catalog != "":
			resolvedCatalog = cfg.Catalog
		default:
			resolvedCatalog, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
		}
		return nil
	},
}

// Execute runs the CLI. In JSON mode errors are also emitted as a
// structured envelope on stdout.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && isJSONOutput() {
		outputError(errorCode(err), err.Error(), nil, "")
	}
	return err
}

// normalizeFlags lets underscore spellings like --quote_style work.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.PersistentFlags().SetNormalizeFunc(normalizeFlags)
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "catalog directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
}

// requireCatalog verifies the resolved catalog directory exists.
func requireCatalog() error {
	info, err := os.Stat(resolvedCatalog)
	if os.IsNotExist(err) {
		return fmt.Errorf("catalog not found: %s\n\nRun 'curio init %s' to create it", resolvedCatalog, resolvedCatalog)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("catalog path is not a directory: %s", resolvedCatalog)
	}
	return nil
}
