package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var getRaw bool

var getCmd = &cobra.Command{
	Use:   "get <collection> <entry-id> [field]",
	Short: "Show an entry, or one field of it",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}
		entry, err := entryByArg(loaded.Coll, args[1])
		if err != nil {
			return err
		}

		if len(args) == 3 {
			name := args[2]
			if !loaded.Coll.HasField(name) {
				return fmt.Errorf("no field %q in collection %q", name, loaded.Coll.Title())
			}
			value := entry.FormattedField(name)
			if getRaw {
				value = entry.Field(name)
			}
			if isJSONOutput() {
				outputSuccess(map[string]string{name: value}, nil)
				return nil
			}
			fmt.Println(value)
			return nil
		}

		if isJSONOutput() {
			values := map[string]string{}
			for _, name := range entry.FieldNames() {
				if getRaw {
					values[name] = entry.Field(name)
				} else {
					values[name] = entry.FormattedField(name)
				}
			}
			outputSuccess(map[string]any{
				"id":     entry.ID(),
				"values": values,
			}, nil)
			return nil
		}

		fmt.Println(ui.Title(entry.Title()))
		for _, name := range entry.FieldNames() {
			value := entry.FormattedField(name)
			if getRaw {
				value = entry.Field(name)
			}
			fmt.Printf("  %s: %s\n", name, value)
		}
		return nil
	},
}

// entryByArg resolves an entry by numeric ID.
func entryByArg(coll *model.Collection, arg string) (*model.Entry, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("entry ID must be a number, got %q", arg)
	}
	entry := coll.EntryByID(id)
	if entry == nil {
		return nil, fmt.Errorf("no entry %d in collection %q", id, coll.Title())
	}
	return entry, nil
}

func init() {
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print stored values without display formatting")
	rootCmd.AddCommand(getCmd)
}
