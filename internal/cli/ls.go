package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var (
	lsFields  []string
	lsGroupBy string
)

var lsCmd = &cobra.Command{
	Use:   "ls [collection]",
	Short: "List collections, or the entries of one collection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}
		if len(args) == 0 {
			return listCollections()
		}
		return listEntries(args[0])
	},
}

func listCollections() error {
	paths, err := listCollectionFiles()
	if err != nil {
		return err
	}

	type collInfo struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Title   string `json:"title"`
		Entries int    `json:"entries"`
	}
	var infos []collInfo
	for _, path := range paths {
		loaded, err := loadCollection(path)
		if err != nil {
			return err
		}
		infos = append(infos, collInfo{
			Name:    collectionName(path),
			Type:    loaded.Coll.Type().String(),
			Title:   loaded.Coll.Title(),
			Entries: loaded.Coll.EntryCount(),
		})
	}

	if isJSONOutput() {
		outputSuccess(infos, &Meta{Count: len(infos)})
		return nil
	}
	if len(infos) == 0 {
		fmt.Println(ui.Hint("No collections. Create one with 'curio new book mybooks'"))
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Type, info.Title, strconv.Itoa(info.Entries)})
	}
	fmt.Println(ui.RenderTable(
		[]string{"Name", "Type", "Title", "Entries"},
		rows,
		[]ui.Alignment{ui.AlignLeft, ui.AlignLeft, ui.AlignLeft, ui.AlignRight},
	))
	return nil
}

func listEntries(arg string) error {
	loaded, err := loadCollection(collectionPath(arg))
	if err != nil {
		return err
	}
	coll := loaded.Coll

	if lsGroupBy != "" {
		return listGroups(arg, lsGroupBy)
	}

	columns := lsFields
	if len(columns) == 0 {
		columns = defaultColumns(coll)
	}
	for _, name := range columns {
		if !coll.HasField(name) {
			return fmt.Errorf("no field %q in collection %q", name, coll.Title())
		}
	}

	if isJSONOutput() {
		entries := make([]map[string]string, 0, coll.EntryCount())
		for _, e := range coll.Entries() {
			row := map[string]string{"id": strconv.FormatInt(e.ID(), 10)}
			for _, name := range columns {
				row[name] = e.Field(name)
			}
			entries = append(entries, row)
		}
		outputSuccess(entries, &Meta{Count: len(entries)})
		return nil
	}

	headers := append([]string{"ID"}, columns...)
	rows := make([][]string, 0, coll.EntryCount())
	for _, e := range coll.Entries() {
		row := []string{strconv.FormatInt(e.ID(), 10)}
		for _, name := range columns {
			row = append(row, e.FormattedField(name))
		}
		rows = append(rows, row)
	}
	fmt.Println(ui.RenderTable(headers, rows, []ui.Alignment{ui.AlignRight}))
	fmt.Println(ui.Hint(ui.Count(len(rows), "entry", "entries")))
	return nil
}

// listGroups prints entries grouped by a field's individual values.
func listGroups(arg, fieldName string) error {
	loaded, err := loadCollection(collectionPath(arg))
	if err != nil {
		return err
	}
	coll := loaded.Coll
	if !coll.HasField(fieldName) {
		return fmt.Errorf("no field %q in collection %q", fieldName, coll.Title())
	}

	groups := coll.ValueGroups(fieldName)
	if isJSONOutput() {
		data := make(map[string][]string, len(groups))
		for value, entries := range groups {
			titles := make([]string, 0, len(entries))
			for _, e := range entries {
				titles = append(titles, e.Title())
			}
			data[value] = titles
		}
		outputSuccess(data, &Meta{Count: len(data)})
		return nil
	}

	values := make([]string, 0, len(groups))
	for value := range groups {
		values = append(values, value)
	}
	sort.Strings(values)
	for _, value := range values {
		entries := groups[value]
		fmt.Printf("%s (%d)\n", ui.Header(value), len(entries))
		for _, e := range entries {
			fmt.Printf("  %s\n", e.Title())
		}
	}
	return nil
}

// defaultColumns picks the first few fields, skipping bookkeeping ones.
func defaultColumns(coll *model.Collection) []string {
	names := coll.FieldNames()
	columns := make([]string, 0, 4)
	for _, name := range names {
		if name == "id" || strings.HasPrefix(name, "cdate") || strings.HasPrefix(name, "mdate") {
			continue
		}
		columns = append(columns, name)
		if len(columns) == 4 {
			break
		}
	}
	return columns
}

func init() {
	lsCmd.Flags().StringSliceVar(&lsFields, "fields", nil, "fields to show as columns")
	lsCmd.Flags().StringVar(&lsGroupBy, "group-by", "", "group entries by a field's values")
	rootCmd.AddCommand(lsCmd)
}
