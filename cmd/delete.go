package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kivosy/factory/internal/session"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an app and its history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	id, err := resolveAppID(rt.store.Index(), rt.cfg.SessionPath(), args)
	if err != nil {
		return err
	}

	if err := rt.store.Delete(id); err != nil {
		return err
	}

	// Forget the session default if it pointed at the deleted app.
	if last, err := session.LoadLastAppID(rt.cfg.SessionPath()); err == nil && last != nil && *last == id {
		if err := session.ClearLastAppID(rt.cfg.SessionPath()); err != nil {
			rt.logger.Warn("clearing session state", "error", err)
		}
	}

	cmd.Printf("Deleted app %s\n", shortID(id))
	return nil
}
