package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/index"
	"github.com/curiocat/curio/internal/ui"
)

var searchFields []string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed entries across the catalog",
	Long: `Searches field values across every indexed collection. Run
'curio reindex' first if collections have changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}

		db, err := index.Open(resolvedCatalog)
		if err != nil {
			return fmt.Errorf("failed to open index: %w (run 'curio reindex')", err)
		}
		defer db.Close()

		hits, err := db.Search(args[0], searchFields...)
		if err != nil {
			return err
		}

		// Resolve collection titles for display.
		titles := map[string]string{}
		if infos, err := db.Collections(); err == nil {
			for _, info := range infos {
				titles[info.ID] = info.Title
			}
		}

		if isJSONOutput() {
			data := make([]map[string]any, 0, len(hits))
			for _, hit := range hits {
				data = append(data, map[string]any{
					"collection": titles[hit.CollectionID],
					"entry_id":   hit.EntryID,
					"title":      hit.Title,
					"field":      hit.FieldName,
					"value":      hit.Value,
				})
			}
			outputSuccess(data, &Meta{Count: len(data)})
			return nil
		}

		if len(hits) == 0 {
			fmt.Println(ui.Hint("No matches. The index may be stale; run 'curio reindex'."))
			return nil
		}
		rows := make([][]string, 0, len(hits))
		for _, hit := range hits {
			rows = append(rows, []string{
				titles[hit.CollectionID],
				strconv.FormatInt(hit.EntryID, 10),
				hit.Title,
				hit.FieldName,
				hit.Value,
			})
		}
		fmt.Println(ui.RenderTable(
			[]string{"Collection", "ID", "Title", "Field", "Value"},
			rows,
			[]ui.Alignment{ui.AlignLeft, ui.AlignRight},
		))
		fmt.Println(ui.Hint(ui.Count(len(hits), "match", "matches")))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchFields, "fields", nil, "limit the search to these fields")
	rootCmd.AddCommand(searchCmd)
}
