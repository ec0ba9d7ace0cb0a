package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/ui"
)

var (
	newTitle    string
	newTemplate string
	newForce    bool
)

var newCmd = &cobra.Command{
	Use:   "new <type> <name>",
	Short: "Create a new collection",
	Long: `Creates a collection file of the given type in the catalog.

Types: ` + strings.Join(collectionTypeNames(), ", ") + `

A field template file (--template) adds custom fields on top of the
type's defaults.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}

		ctype, ok := model.ParseCollectionType(args[0])
		if !ok {
			return fmt.Errorf("unknown collection type %q\n\nTypes: %s", args[0], strings.Join(collectionTypeNames(), ", "))
		}

		name := args[1]
		path := collectionPath(name)
		if _, err := os.Stat(path); err == nil && !newForce {
			return fmt.Errorf("collection already exists: %s (use --force to overwrite)", path)
		}

		title := newTitle
		if title == "" {
			title = name
		}

		registry := model.NewRegistry()
		coll, err := registry.New(ctype, title, true)
		if err != nil {
			return err
		}

		if newTemplate != "" {
			fields, err := model.LoadFieldTemplate(newTemplate)
			if err != nil {
				return fmt.Errorf("failed to load field template: %w", err)
			}
			for _, f := range fields {
				if coll.HasField(f.Name()) {
					if err := coll.ModifyField(f); err != nil {
						return err
					}
					continue
				}
				if err := coll.AddField(f); err != nil {
					return err
				}
			}
		}

		if err := saveCollection(path, coll, nil); err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"path":   path,
				"type":   ctype.String(),
				"title":  title,
				"fields": len(coll.Fields()),
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Created %s collection %s", ctype, ui.Title(title)))
		fmt.Println(ui.Hint("  " + path))
		return nil
	},
}

func collectionTypeNames() []string {
	types := model.CollectionTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return names
}

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "collection title (default: the name)")
	newCmd.Flags().StringVar(&newTemplate, "template", "", "YAML field template file")
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite an existing collection")
	rootCmd.AddCommand(newCmd)
}
