package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <collection> <entry-id>...",
	Short: "Remove entries from a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}
		coll := loaded.Coll

		entries := make([]*model.Entry, 0, len(args)-1)
		for _, arg := range args[1:] {
			e, err := entryByArg(coll, arg)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}

		removed := coll.RemoveEntries(entries)
		if err := saveCollection(loaded.Path, coll, loaded.Images); err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"removed": removed}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed %s", ui.Count(removed, "entry", "entries")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
