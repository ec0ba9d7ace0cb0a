package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var convertForce bool

var convertCmd = &cobra.Command{
	Use:   "convert <collection> <new-name>",
	Short: "Convert a book collection to a bibliography",
	Long: `Creates a bibliography from a book collection. Book fields are mapped
to their BibTeX equivalents and entry values are carried over. The
source collection is left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}

		outPath := collectionPath(args[1])
		if _, err := os.Stat(outPath); err == nil && !convertForce {
			return fmt.Errorf("collection already exists: %s (use --force to overwrite)", outPath)
		}

		bc, err := model.ConvertBookCollection(loaded.Coll)
		if err != nil {
			return err
		}

		if err := saveCollection(outPath, bc.Collection, loaded.Images); err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"path":    outPath,
				"entries": bc.Collection.EntryCount(),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Converted %s to bibliography %s",
			ui.Title(loaded.Coll.Title()), outPath))
		fmt.Println(ui.Hint("  Export it with 'curio export " + args[1] + " --format bibtex'"))
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertForce, "force", false, "overwrite an existing collection")
	rootCmd.AddCommand(convertCmd)
}
