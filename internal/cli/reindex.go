package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/index"
	"github.com/curiocat/curio/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the catalog search index",
	Long: `Rebuilds the search index under .curio/ from the collection files.
The index is derived data; this is always safe to run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}

		// Full rebuild: drop the old database so removed collections
		// don't linger.
		dbPath := filepath.Join(resolvedCatalog, ".curio", "index.db")
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return err
			}
		}

		db, err := index.Open(resolvedCatalog)
		if err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		defer db.Close()

		paths, err := listCollectionFiles()
		if err != nil {
			return err
		}

		entries := 0
		for _, path := range paths {
			loaded, err := loadCollection(path)
			if err != nil {
				return err
			}
			if _, err := db.Rebuild("", loaded.Coll); err != nil {
				return fmt.Errorf("failed to index %s: %w", collectionName(path), err)
			}
			entries += loaded.Coll.EntryCount()
		}
		if err := db.Analyze(); err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"collections": len(paths),
				"entries":     entries,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Indexed %s across %s",
			ui.Count(entries, "entry", "entries"),
			ui.Count(len(paths), "collection", "collections")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
