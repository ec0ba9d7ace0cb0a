package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/config"
	"github.com/curiocat/curio/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(cfg, nil)
			return nil
		}
		fmt.Printf("catalog: %s\n", cfg.Catalog)
		fmt.Printf("bibtex.quote_style: %s\n", cfg.Bibtex.QuoteStyle)
		fmt.Printf("bibtex.expand_macros: %t\n", cfg.Bibtex.ExpandMacros)
		fmt.Printf("bibtex.use_url_package: %t\n", cfg.Bibtex.UseURLPackage)
		fmt.Printf("bibtex.skip_empty_keys: %t\n", cfg.Bibtex.SkipEmptyKeys)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			path = config.DefaultPath()
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a configuration key and writes the config file.

Keys: catalog, bibtex.quote_style, bibtex.expand_macros,
bibtex.use_url_package, bibtex.skip_empty_keys`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := applyConfigValue(cfg, key, value); err != nil {
			return err
		}
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{key: value}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Set %s = %s", key, value))
		return nil
	},
}

func applyConfigValue(c *config.Config, key, value string) error {
	boolValue := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s takes true or false, got %q", key, value)
		}
		return b, nil
	}
	switch key {
	case "catalog":
		c.Catalog = value
	case "bibtex.quote_style":
		if value != "braces" && value != "quotes" {
			return fmt.Errorf("bibtex.quote_style takes braces or quotes, got %q", value)
		}
		c.Bibtex.QuoteStyle = value
	case "bibtex.expand_macros":
		b, err := boolValue()
		if err != nil {
			return err
		}
		c.Bibtex.ExpandMacros = b
	case "bibtex.use_url_package":
		b, err := boolValue()
		if err != nil {
			return err
		}
		c.Bibtex.UseURLPackage = b
	case "bibtex.skip_empty_keys":
		b, err := boolValue()
		if err != nil {
			return err
		}
		c.Bibtex.SkipEmptyKeys = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
