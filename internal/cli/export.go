package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curiocat/curio/internal/atomicfile"
	"github.com/curiocat/curio/internal/translate"
	"github.com/curiocat/curio/internal/ui"
)

var (
	exportFormat    string
	exportOutput    string
	exportFormatted bool
)

var exportCmd = &cobra.Command{
	Use:   "export <collection>",
	Short: "Export a collection as xml, bibtex, or html",
	Long: `Exports a collection to another format.

  curio export refs --format bibtex -o refs.bib
  curio export books --format html -o books.html

BibTeX export requires a bibliography collection (or one converted with
'curio convert'). Quote style and macro expansion come from the bibtex
section of the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCollection(collectionPath(args[0]))
		if err != nil {
			return err
		}

		exporter, messages, err := buildExporter(exportFormat, loaded)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := exporter.Export(loaded.Coll, &buf); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput == "" {
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				return err
			}
		} else if err := atomicfile.WriteFile(exportOutput, buf.Bytes(), 0o644); err != nil {
			return err
		}

		warnings := importWarnings(WarnExportMessage, messages())
		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"format":  exportFormat,
				"output":  exportOutput,
				"entries": loaded.Coll.EntryCount(),
			}, warnings, nil)
			return nil
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, ui.Warningf("%s", w.Message))
		}
		if exportOutput != "" {
			fmt.Fprintln(os.Stderr, ui.Successf("Exported %s to %s",
				ui.Count(loaded.Coll.EntryCount(), "entry", "entries"), exportOutput))
		}
		return nil
	},
}

// buildExporter constructs the exporter for a format name. The returned
// func yields any messages the exporter accumulated during Export.
func buildExporter(format string, loaded *loadedCollection) (translate.Exporter, func() []string, error) {
	none := func() []string { return nil }
	switch format {
	case "xml":
		return &translate.XMLExporter{
			FormatValues: exportFormatted,
			Images:       loaded.Images,
		}, none, nil
	case "html":
		return &translate.HTMLExporter{FormatValues: exportFormatted}, none, nil
	case "bibtex", "bib":
		style, ok := translate.ParseQuoteStyle(cfg.Bibtex.QuoteStyle)
		if !ok {
			return nil, nil, fmt.Errorf("invalid quote_style %q in config (braces or quotes)", cfg.Bibtex.QuoteStyle)
		}
		x := &translate.BibtexExporter{
			FormatValues:  exportFormatted,
			ExpandMacros:  cfg.Bibtex.ExpandMacros,
			PackageURL:    cfg.Bibtex.UseURLPackage,
			SkipEmptyKeys: cfg.Bibtex.SkipEmptyKeys,
			Style:         style,
		}
		return x, x.Messages, nil
	default:
		return nil, nil, fmt.Errorf("unknown format %q (xml, bibtex, html)", format)
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "xml", "export format: xml, bibtex, html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportFormatted, "formatted", false, "export display-formatted values instead of raw ones")
	rootCmd.AddCommand(exportCmd)
}
