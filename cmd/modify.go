package cmd

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var modifyApp string

var modifyCmd = &cobra.Command{
	Use:   "modify <instruction>",
	Short: "Modify an existing app with an edit instruction",
	Long: `Regenerate an existing app according to an edit instruction, keeping its
ID and history entry. Targets the most recently generated app unless --app
is given. A modify counts against the daily quota like a generation.`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

func init() {
	modifyCmd.Flags().StringVarP(&modifyApp, "app", "a", "", "app ID to modify (default: last generated)")
	rootCmd.AddCommand(modifyCmd)
}

func runModify(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	if !rt.cfg.HasCredentials() {
		return errors.New("no API key configured; set GEMINI_API_KEY or GROQ_API_KEY " +
			"(or gemini_api_key / groq_api_key in ~/.kivosy/config.yaml)")
	}

	var idArgs []string
	if modifyApp != "" {
		idArgs = []string{modifyApp}
	}
	id, err := resolveAppID(rt.store.Index(), rt.cfg.SessionPath(), idArgs)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := rt.factory.Modify(ctx, id, args[0], printProgress(cmd))
	if err != nil {
		return err
	}

	rememberLastApp(rt, res)

	cmd.Printf("\nApp %s updated (%sKB)\n", res.ID, res.Meta.SizeKB)
	cmd.Printf("Remaining today: %d of %d\n", rt.tracker.Remaining(), rt.tracker.MaxPerDay())
	return nil
}
