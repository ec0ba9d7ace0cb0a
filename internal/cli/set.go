package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var setNew bool

var setCmd = &cobra.Command{
	Use:   "set <collection> <entry-id> <field>=<value> [<field>=<value>...]",
	Short: "Set field values on an entry",
	Long: `Sets one or more field values on an entry. With --new the entry-id is
skipped and a fresh entry is created:

  curio set books 3 rating=4 'genre=Science Fiction'
  curio set --new books 'title=The Dispossessed' 'author=Le Guin, Ursula K.'

An empty value clears the field. Choice fields reject values outside
their allowed list.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}
		coll := loaded.Coll

		var entry *model.Entry
		assignments := args[1:]
		if setNew {
			entry = model.NewEntry(coll)
		} else {
			if len(args) < 3 {
				return fmt.Errorf("need an entry ID and at least one field=value pair")
			}
			entry, err = entryByArg(coll, args[1])
			if err != nil {
				return err
			}
			assignments = args[2:]
		}

		for _, assignment := range assignments {
			name, value, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", assignment)
			}
			f := coll.FieldByName(name)
			if f == nil {
				return fmt.Errorf("no field %q in collection %q", name, coll.Title())
			}
			if err := checkValue(f, value); err != nil {
				return err
			}
			if !entry.SetField(name, value) {
				return fmt.Errorf("failed to set %q", name)
			}
		}

		if setNew {
			coll.AddEntry(entry)
		}
		if err := saveCollection(loaded.Path, coll, loaded.Images); err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"id":      entry.ID(),
				"created": setNew,
			}, nil)
			return nil
		}
		if setNew {
			fmt.Println(ui.Successf("Added entry %d: %s", entry.ID(), ui.Title(entry.Title())))
		} else {
			fmt.Println(ui.Successf("Updated entry %d", entry.ID()))
		}
		return nil
	},
}

// checkValue validates a value against the field's type before storing.
func checkValue(f *model.Field, value string) error {
	if value == "" {
		return nil
	}
	switch f.Type() {
	case model.TypeChoice:
		for _, v := range model.SplitValues(value) {
			if !contains(f.Allowed(), v) {
				return fmt.Errorf("value %q not allowed for %q (allowed: %s)",
					v, f.Name(), strings.Join(f.Allowed(), ", "))
			}
		}
	case model.TypeBool:
		switch strings.ToLower(value) {
		case "true", "false":
		default:
			return fmt.Errorf("field %q takes true or false, got %q", f.Name(), value)
		}
	case model.TypeRating:
		if !isDigits(value) {
			return fmt.Errorf("field %q takes a numeric rating, got %q", f.Name(), value)
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func init() {
	setCmd.Flags().BoolVar(&setNew, "new", false, "create a new entry")
	rootCmd.AddCommand(setCmd)
}
