package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/config"
	"github.com/curiocat/curio/internal/ui"
)

var initSetDefault bool

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new catalog",
	Long: `Creates a new catalog directory.

Creates:
  - .curio/      (index directory, derived data)
  - .gitignore   (ignores derived files)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(path, ".curio"), 0o755); err != nil {
			return fmt.Errorf("failed to create .curio directory: %w", err)
		}

		gitignoreStatus, err := ensureGitignore(path)
		if err != nil {
			return err
		}

		if initSetDefault {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			cfg.Catalog = abs
			if err := saveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"path":        path,
				"set_default": initSetDefault,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Initialized catalog at %s", path))
		fmt.Println(ui.Successf("Created .curio/ index directory"))
		switch gitignoreStatus {
		case "created":
			fmt.Println(ui.Successf("Created .gitignore"))
		case "updated":
			fmt.Println(ui.Successf("Updated .gitignore"))
		}
		if initSetDefault {
			fmt.Println(ui.Successf("Set default catalog in config"))
		}
		fmt.Println()
		fmt.Println(ui.Hint("Create a collection with 'curio new book mybooks'"))
		return nil
	},
}

// ensureGitignore adds the derived-data entries to the catalog's
// .gitignore, creating the file if needed.
func ensureGitignore(path string) (string, error) {
	gitignorePath := filepath.Join(path, ".gitignore")
	entries := []string{".curio/", "*.undo"}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range entries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		if existing != "" {
			return "kept", nil
		}
		return "", nil
	}

	status := "created"
	var content string
	if existing == "" {
		content = `# Curio derived files. Collection files are the source of truth.

# Search index (rebuilt with 'curio reindex')
.curio/

# Merge undo journals
*.undo
`
	} else {
		status = "updated"
		content = strings.TrimRight(existing, "\n") + "\n\n# Curio\n"
		for _, entry := range missing {
			content += entry + "\n"
		}
	}
	if err := os.WriteFile(gitignorePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

// saveConfig is replaced in tests to avoid touching the real config.
var saveConfig = func(c *config.Config) error {
	if configFlag != "" {
		return config.SaveTo(configFlag, c)
	}
	return config.Save(c)
}

func init() {
	initCmd.Flags().BoolVar(&initSetDefault, "set-default", false, "record this catalog as the default in config")
	rootCmd.AddCommand(initCmd)
}
