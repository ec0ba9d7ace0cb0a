package cli

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/curiocat/curio/docs"
	"github.com/curiocat/curio/internal/ui"
)

var docsRaw bool

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Show the bundled documentation",
	Long: `Shows a documentation topic rendered for the terminal, or lists the
available topics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docTopics()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Topics"))
			for _, topic := range topics {
				fmt.Printf("  %s\n", topic)
			}
			fmt.Println()
			fmt.Println(ui.Hint("Read one with 'curio docs <topic>'"))
			return nil
		}

		topic := strings.TrimSuffix(args[0], ".md")
		content, err := docs.FS.ReadFile("guide/" + topic + ".md")
		if err != nil {
			return fmt.Errorf("no docs topic %q\n\nTopics: %s", topic, strings.Join(topics, ", "))
		}

		if docsRaw || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(string(content))
			return nil
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(string(content), display.TermWidth)
		if err != nil {
			// Fall back to raw markdown if rendering fails
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func docTopics() ([]string, error) {
	entries, err := fs.ReadDir(docs.FS, "guide")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	docsCmd.Flags().BoolVar(&docsRaw, "raw", false, "print raw markdown without rendering")
	rootCmd.AddCommand(docsCmd)
}
