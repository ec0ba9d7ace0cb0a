package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/atomicfile"
	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var (
	mergeMode string
	mergeUndo bool
)

// undoJournalPath returns the journal written next to a collection
// before a merge touches it.
func undoJournalPath(collPath string) string {
	return collPath + ".undo"
}

var mergeCmd = &cobra.Command{
	Use:   "merge <target> [source]",
	Short: "Merge one collection into another",
	Long: `Folds the source collection into the target. Modes:

  append   union the schemas, append every source entry
  merge    like append, but skip entries that look like duplicates and
           use them to fill empty fields on the entry they matched
  replace  discard the target's schema and entries entirely

The target's previous state is journaled next to it; 'curio merge
--undo <target>' restores it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := collectionPath(args[0])

		if mergeUndo {
			if len(args) != 1 {
				return fmt.Errorf("--undo takes only the target collection")
			}
			return undoMerge(targetPath)
		}
		if len(args) != 2 {
			return fmt.Errorf("merge needs a target and a source collection")
		}

		mode, err := model.ParseMergeMode(mergeMode)
		if err != nil {
			return err
		}

		target, err := loadCollection(targetPath)
		if err != nil {
			return err
		}
		source, err := loadCollection(collectionPath(args[1]))
		if err != nil {
			return err
		}

		// Journal the pre-merge state first so a failed save never
		// strands the target without a way back.
		before, err := os.ReadFile(targetPath)
		if err != nil {
			return fmt.Errorf("failed to journal %s: %w", targetPath, err)
		}
		if err := atomicfile.WriteFile(undoJournalPath(targetPath), before, 0o644); err != nil {
			return fmt.Errorf("failed to write undo journal: %w", err)
		}

		result, err := model.MergeCollections(target.Coll, source.Coll, mode)
		if err != nil {
			return err
		}
		if err := saveCollection(targetPath, target.Coll, target.Images); err != nil {
			result.Revert()
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"mode":          mode.String(),
				"added_entries": result.AddedEntryCount(),
				"added_fields":  result.AddedFieldCount(),
				"skipped":       result.SkippedCount(),
				"journal":       undoJournalPath(targetPath),
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Merged %s into %s (%s)",
			ui.Title(source.Coll.Title()), ui.Title(target.Coll.Title()), mode))
		fmt.Printf("  added %s", ui.Count(result.AddedEntryCount(), "entry", "entries"))
		if result.AddedFieldCount() > 0 {
			fmt.Printf(", %s", ui.Count(result.AddedFieldCount(), "field", "fields"))
		}
		if result.SkippedCount() > 0 {
			fmt.Printf(", skipped %d duplicates", result.SkippedCount())
		}
		fmt.Println()
		fmt.Println(ui.Hint("  Undo with 'curio merge --undo " + args[0] + "'"))
		return nil
	},
}

// undoMerge restores the journaled pre-merge state of a collection.
func undoMerge(targetPath string) error {
	journal := undoJournalPath(targetPath)
	data, err := os.ReadFile(journal)
	if os.IsNotExist(err) {
		return fmt.Errorf("no undo journal for %s", targetPath)
	}
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(targetPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Remove(journal); err != nil {
		return err
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{"restored": targetPath}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Restored %s from undo journal", targetPath))
	return nil
}

func init() {
	mergeCmd.Flags().StringVar(&mergeMode, "mode", "merge", "merge mode: append, merge, replace")
	mergeCmd.Flags().BoolVar(&mergeUndo, "undo", false, "restore the target's pre-merge state")
	rootCmd.AddCommand(mergeCmd)
}
