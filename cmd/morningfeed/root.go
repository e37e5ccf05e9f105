// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads the config file and applies flag overrides before any subcommand runs

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/morningfeed/internal/config"
)

var (
	configPath string
	sourceURL  string
	outputPath string
	maxItems   int
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "morningfeed",
	Short: "Football morning report RSS generator",
	Long: `Football morning report RSS generator.

Finds today's morning report on the news index page, extracts the article,
and prepends it to a size-bounded RSS feed file. Meant to be run once per
day from cron or a CI schedule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags win over the config file
		flags := cmd.Flags()
		if flags.Changed("source") {
			loaded.SourceURL = sourceURL
		}
		if flags.Changed("output") {
			loaded.OutputPath = outputPath
		}
		if flags.Changed("max-items") {
			if maxItems <= 0 {
				return fmt.Errorf("%w: --max-items must be positive, got %d", config.ErrInvalid, maxItems)
			}
			loaded.MaxItems = maxItems
		}

		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/morningfeed/config.json)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source", "", "news index URL (default: "+config.DefaultSourceURL+")")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "feed file path (default: "+config.DefaultOutputPath+")")
	rootCmd.PersistentFlags().IntVar(&maxItems, "max-items", 0, fmt.Sprintf("entries kept in the feed (default: %d)", config.DefaultMaxItems))
}
