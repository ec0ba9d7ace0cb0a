package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [collection]",
	Short: "Validate collection values against their schemas",
	Long: `Checks every entry value against its field's type: choice values must
be in the allowed list, booleans must be true or false, ratings must be
numeric, table rows must not exceed the column count. Bibliographies are
also checked for duplicate citation keys.

With no argument, checks every collection in the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var paths []string
		if len(args) == 1 {
			paths = []string{collectionPath(args[0])}
		} else {
			if err := requireCatalog(); err != nil {
				return err
			}
			var err error
			paths, err = listCollectionFiles()
			if err != nil {
				return err
			}
		}

		var problems []Warning
		for _, path := range paths {
			loaded, err := loadCollection(path)
			if err != nil {
				return err
			}
			for _, msg := range loaded.Messages {
				problems = append(problems, Warning{Code: WarnImportMessage,
					Message: fmt.Sprintf("%s: %s", collectionName(path), msg)})
			}
			problems = append(problems, checkCollection(collectionName(path), loaded.Coll)...)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"collections": len(paths),
				"problems":    len(problems),
			}, problems, &Meta{Count: len(problems)})
			return nil
		}
		if len(problems) == 0 {
			fmt.Println(ui.Successf("%s checked, no problems",
				ui.Count(len(paths), "collection", "collections")))
			return nil
		}
		for _, p := range problems {
			fmt.Println(ui.Warningf("%s", p.Message))
		}
		return fmt.Errorf("%d problems found", len(problems))
	},
}

// checkCollection validates every stored value against its field.
func checkCollection(name string, coll *model.Collection) []Warning {
	var problems []Warning
	report := func(e *model.Entry, format string, args ...any) {
		problems = append(problems, Warning{
			Code:    WarnValueInvalid,
			Message: fmt.Sprintf("%s entry %d: %s", name, e.ID(), fmt.Sprintf(format, args...)),
		})
	}

	for _, e := range coll.Entries() {
		for _, fieldName := range e.FieldNames() {
			f := coll.FieldByName(fieldName)
			value := e.Field(fieldName)
			switch f.Type() {
			case model.TypeChoice:
				for _, v := range model.SplitValues(value) {
					if !contains(f.Allowed(), v) {
						report(e, "%s value %q not in allowed list", fieldName, v)
					}
				}
			case model.TypeBool:
				if v := strings.ToLower(value); v != "true" && v != "false" {
					report(e, "%s value %q is not a boolean", fieldName, value)
				}
			case model.TypeRating, model.TypeNumber:
				for _, v := range model.SplitValues(value) {
					if !isNumeric(v) {
						report(e, "%s value %q is not numeric", fieldName, v)
					}
				}
			case model.TypeTable:
				columns := f.Columns()
				for i, row := range model.SplitTable(value) {
					if len(model.SplitRow(row)) > columns {
						report(e, "%s row %d has more than %d columns", fieldName, i+1, columns)
					}
				}
			}
		}
	}

	if bc := model.BibtexOf(coll); bc != nil {
		for _, e := range bc.DuplicateBibtexKeys() {
			problems = append(problems, Warning{
				Code:    WarnDuplicateKey,
				Message: fmt.Sprintf("%s entry %d: duplicate citation key %q", name, e.ID(), bibtexKeyOf(bc, e)),
			})
		}
	}
	return problems
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0:
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
