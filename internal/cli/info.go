package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <collection>",
	Short: "Show collection schema and stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}
		coll := loaded.Coll

		if isJSONOutput() {
			fields := make([]map[string]any, 0, len(coll.Fields()))
			for _, f := range coll.Fields() {
				fields = append(fields, map[string]any{
					"name":     f.Name(),
					"title":    f.Title(),
					"type":     f.Type().String(),
					"category": f.Category(),
				})
			}
			data := map[string]any{
				"title":   coll.Title(),
				"type":    coll.Type().String(),
				"entries": coll.EntryCount(),
				"fields":  fields,
			}
			if bc := model.BibtexOf(coll); bc != nil {
				data["macros"] = bc.MacroCount()
				data["preamble"] = bc.Preamble() != ""
			}
			outputSuccessWithWarnings(data, importWarnings(WarnImportMessage, loaded.Messages), nil)
			return nil
		}

		fmt.Println(ui.Header(coll.Title()))
		fmt.Printf("type:    %s\n", coll.Type())
		fmt.Printf("entries: %s\n", ui.Count(coll.EntryCount(), "entry", "entries"))
		if bc := model.BibtexOf(coll); bc != nil {
			fmt.Printf("macros:  %d\n", bc.MacroCount())
			if bc.Preamble() != "" {
				fmt.Println("preamble: yes")
			}
		}
		fmt.Println()

		rows := make([][]string, 0, len(coll.Fields()))
		for _, f := range coll.Fields() {
			flags := ""
			if f.HasFlag(model.AllowMultiple) {
				flags += "multi "
			}
			if f.HasFlag(model.AllowGrouped) {
				flags += "group "
			}
			if f.HasFlag(model.NoDelete) {
				flags += "protected"
			}
			rows = append(rows, []string{f.Name(), f.Title(), f.Type().String(), f.Category(), flags})
		}
		fmt.Println(ui.RenderTable(
			[]string{"Field", "Title", "Type", "Category", "Flags"},
			rows,
			nil,
		))

		for _, msg := range loaded.Messages {
			fmt.Println(ui.Warningf("%s", msg))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
