package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print an app's HTML source to stdout",
	Long: `Print the stored HTML source of an app. The ID may be a full UUID or a
unique prefix from 'factory list'. With no ID the most recently generated
app is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	id, err := resolveAppID(rt.store.Index(), rt.cfg.SessionPath(), args)
	if err != nil {
		return err
	}

	html, err := rt.store.Get(id)
	if err != nil {
		return err
	}

	cmd.Print(html)
	return nil
}
