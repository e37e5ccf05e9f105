// ABOUTME: Run command performing one fetch-extract-persist pipeline invocation
// ABOUTME: Prints a coloured status line; fetch failures still exit 0 after writing an error entry

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/morningfeed/internal/config"
	"github.com/harper/morningfeed/internal/feed"
	"github.com/harper/morningfeed/internal/fetch"
	"github.com/harper/morningfeed/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch today's morning report into the feed",
	Long: `Fetch the news index, find today's football morning report, and prepend it
to the feed file, keeping at most --max-items entries.

If the report is missing or a request fails, a placeholder entry is written
instead so the feed always records the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		out, err := newDriver(cfg).Run(ctx)
		if err != nil {
			return err
		}

		reportOutcome(cmd, out, quiet)
		return nil
	},
}

// newDriver wires the HTTP fetcher and feed store described by c
func newDriver(c *config.Config) *pipeline.Driver {
	store := feed.NewStore(c.GetOutputPath(), feed.DefaultChannel(c.GetSourceURL()))
	client := fetch.NewClient(c.GetTimeout())
	client.UserAgent = userAgent()
	driver := pipeline.NewDriver(client, store, c.GetSourceURL(), c.GetMaxItems())
	driver.Sanitize = c.GetSanitize()
	return driver
}

// reportOutcome prints the status line for a finished run
func reportOutcome(cmd *cobra.Command, out *pipeline.Outcome, quiet bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	stamp := time.Now().Format(time.RFC3339)

	switch out.Status {
	case pipeline.StatusError:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s RSS feed updated with error: %v\n", red("x"), out.Err)
		return
	case pipeline.StatusNotFound:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s no morning report found for today\n", yellow("-"))
		}
	}

	if quiet {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s RSS feed updated successfully at %s. Total items: %d\n", green("v"), stamp, out.Total)
	if out.ContentMissing {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint("article content container not found"))
	}
	if out.Status == pipeline.StatusFound {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint(out.Entry.Title))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("quiet", "q", false, "suppress the success status line")
}
