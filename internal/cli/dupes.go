package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var dupesField string

var dupesCmd = &cobra.Command{
	Use:   "dupes <collection>",
	Short: "Find duplicate citation keys or field values",
	Long: `Without --field, reports bibliography entries sharing a citation key.
With --field, reports entries sharing any value of that field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}
		coll := loaded.Coll

		if dupesField != "" {
			return dupesByField(coll, dupesField)
		}

		bc := model.BibtexOf(coll)
		if bc == nil {
			return fmt.Errorf("%q is not a bibliography; use --field for other collections", coll.Title())
		}
		entries := bc.DuplicateBibtexKeys()

		if isJSONOutput() {
			data := make([]map[string]any, 0, len(entries))
			for _, e := range entries {
				data = append(data, map[string]any{
					"id":    e.ID(),
					"title": e.Title(),
					"key":   bibtexKeyOf(bc, e),
				})
			}
			outputSuccess(data, &Meta{Count: len(data)})
			return nil
		}
		if len(entries) == 0 {
			fmt.Println(ui.Successf("No duplicate citation keys"))
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID(), 10),
				bibtexKeyOf(bc, e),
				e.Title(),
			})
		}
		fmt.Println(ui.RenderTable(
			[]string{"ID", "Key", "Title"},
			rows,
			[]ui.Alignment{ui.AlignRight},
		))
		fmt.Println(ui.Warningf("%s share a citation key", ui.Count(len(entries), "entry", "entries")))
		return nil
	},
}

func bibtexKeyOf(bc *model.BibtexCollection, e *model.Entry) string {
	f := bc.FieldByBibtexName("key")
	if f == nil {
		return ""
	}
	return e.Field(f.Name())
}

// dupesByField groups entries by individual field values and reports
// the values held by more than one entry.
func dupesByField(coll *model.Collection, name string) error {
	if !coll.HasField(name) {
		return fmt.Errorf("no field %q in collection %q", name, coll.Title())
	}
	groups := coll.ValueGroups(name)

	type dupe struct {
		Value   string   `json:"value"`
		Entries []string `json:"entries"`
	}
	var dupes []dupe
	for value, entries := range groups {
		if len(entries) < 2 {
			continue
		}
		titles := make([]string, 0, len(entries))
		for _, e := range entries {
			titles = append(titles, e.Title())
		}
		dupes = append(dupes, dupe{Value: value, Entries: titles})
	}

	if isJSONOutput() {
		outputSuccess(dupes, &Meta{Count: len(dupes)})
		return nil
	}
	if len(dupes) == 0 {
		fmt.Println(ui.Successf("No duplicate %s values", name))
		return nil
	}
	for _, d := range dupes {
		fmt.Printf("%s (%d)\n", ui.Header(d.Value), len(d.Entries))
		for _, title := range d.Entries {
			fmt.Printf("  %s\n", title)
		}
	}
	return nil
}

func init() {
	dupesCmd.Flags().StringVar(&dupesField, "field", "", "find duplicates of this field instead of citation keys")
	rootCmd.AddCommand(dupesCmd)
}
