package cmd

import (
	"github.com/spf13/cobra"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's generation usage",
	Args:  cobra.NoArgs,
	RunE:  runQuota,
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	usage := rt.tracker.Usage()
	cmd.Printf("Date: %s\n", usage.Date)
	cmd.Printf("Used: %d of %d\n", usage.Count, rt.tracker.MaxPerDay())
	cmd.Printf("Remaining: %d\n", rt.tracker.Remaining())
	return nil
}
