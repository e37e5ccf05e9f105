// ABOUTME: Init command writing a config file with the effective settings
// ABOUTME: Refuses to overwrite an existing config unless --force is given

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/morningfeed/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long:  "Write the effective settings (defaults plus any --source, --output, --max-items flags) to the config file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		sanitize := cfg.GetSanitize()
		out := &config.Config{
			SourceURL:      cfg.GetSourceURL(),
			OutputPath:     cfg.OutputPath,
			MaxItems:       cfg.GetMaxItems(),
			Sanitize:       &sanitize,
			TimeoutSeconds: int(cfg.GetTimeout().Seconds()),
		}
		if out.OutputPath == "" {
			out.OutputPath = config.DefaultOutputPath
		}

		if err := out.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")
}
