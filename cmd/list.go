package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated apps, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	index := rt.store.Index()
	if len(index) == 0 {
		cmd.Println("No apps generated yet. Run 'factory generate \"<prompt>\"' to build one.")
		return nil
	}

	cmd.Printf("%-10s %-8s %-22s %s\n", "ID", "SIZE", "CREATED", "PROMPT")
	for _, entry := range index {
		short := entry.UUID
		if id, err := uuid.Parse(entry.UUID); err == nil {
			short = shortID(id)
		}
		cmd.Printf("%-10s %-8s %-22s %s\n", short, entry.SizeKB+"KB", entry.CreatedAt, entry.Prompt)
	}
	return nil
}
