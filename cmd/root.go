// Package cmd contains the factory CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "factory",
	Short: "KIVOSY App Factory - generate self-contained web apps from a prompt",
	Long: `KIVOSY App Factory turns a one-line prompt into a complete, self-contained
HTML app. Generated apps are screened for dangerous patterns, stamped with
KIVOSY branding, and stored locally with a browsable history.

Run 'factory generate "<prompt>"' to build your first app.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
