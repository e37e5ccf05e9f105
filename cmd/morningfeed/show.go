// ABOUTME: Show command for previewing the generated feed in the terminal
// ABOUTME: Renders entry descriptions from HTML to markdown with glamour, or prints raw HTML

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/morningfeed/internal/config"
	"github.com/harper/morningfeed/internal/content"
	"github.com/harper/morningfeed/internal/feed"
	"github.com/harper/morningfeed/internal/models"
	"github.com/harper/morningfeed/internal/parse"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview entries of the feed file",
	Long:  "Display the newest entries of the generated feed, converting descriptions to markdown for the terminal.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		raw, _ := cmd.Flags().GetBool("raw")

		store := feed.NewStore(cfg.GetOutputPath(), feed.DefaultChannel(cfg.GetSourceURL()))

		w := cmd.OutOrStdout()
		doc, err := store.Document()
		if err != nil || len(doc.Entries) == 0 {
			fmt.Fprintf(w, "No entries in %s. Run 'morningfeed run' first.\n", cfg.GetOutputPath())
			return nil
		}

		printChannel(w, doc)

		entries := doc.Entries

		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		for _, entry := range entries {
			printEntry(w, entry, raw)
		}

		return nil
	},
}

// printChannel writes the feed title, build stamp, and entry count
func printChannel(w io.Writer, doc *parse.ParsedFeed) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	title := doc.Title
	if title == "" {
		title = "Untitled feed"
	}
	fmt.Fprintf(w, "%s %s\n", bold(title), faint(fmt.Sprintf("(%d entries)", len(doc.Entries))))
	if doc.Description != "" {
		fmt.Fprintln(w, doc.Description)
	}
	if doc.LastBuildDate != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Built:"), doc.LastBuildDate)
	}
	if doc.Link != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Source:"), doc.Link)
	}
	fmt.Fprintln(w)
}

// printEntry writes one entry with a header block and its description
func printEntry(w io.Writer, entry models.FeedEntry, raw bool) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(w, strings.Repeat("─", config.SeparatorWidth))

	title := entry.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(w, "%s\n\n", bold(title))

	if entry.PubDate != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Published:"), entry.PubDate)
	}
	if entry.Link != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Link:"), cyan(entry.Link))
	}

	fmt.Fprintln(w, strings.Repeat("─", config.SeparatorWidth))

	switch {
	case entry.Description == "":
		fmt.Fprintln(w, "\n(No content available)")
	case raw:
		fmt.Fprintf(w, "\n%s\n", entry.Description)
	default:
		markdown := content.ToMarkdown(entry.Description)

		rendered, err := glamour.Render(markdown, "dark")
		if err != nil {
			// Fall back to plain markdown if rendering fails
			fmt.Fprintf(w, "%s\n", faint("(markdown rendering unavailable, showing plain text)"))
			fmt.Fprintf(w, "\n%s\n", markdown)
		} else {
			fmt.Fprint(w, rendered)
		}
	}

	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("limit", "n", config.DefaultShowLimit, "number of entries to show (0 for all)")
	showCmd.Flags().Bool("raw", false, "print descriptions as raw HTML")
}
