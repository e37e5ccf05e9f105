// ABOUTME: Version command and build metadata for the morningfeed CLI
// ABOUTME: The build version also names the User-Agent sent to the news site

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/morningfeed/internal/feed"
)

// Version information set via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// userAgent identifies this build to the sites it fetches
func userAgent() string {
	return fmt.Sprintf("morningfeed/%s (RSS generator)", Version)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit, build date, and request User-Agent of morningfeed.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(w, Version)
			return
		}

		fmt.Fprintf(w, "morningfeed %s\n", Version)
		fmt.Fprintf(w, "  commit:  %s\n", Commit)
		fmt.Fprintf(w, "  built:   %s\n", BuildDate)
		fmt.Fprintf(w, "  agent:   %s\n", userAgent())
		fmt.Fprintf(w, "  writes:  RSS %s\n", feed.RSSVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print only the version number")
}
