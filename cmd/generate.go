package cmd

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kivosy/factory/internal/factory"
	"github.com/kivosy/factory/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a new app from a prompt",
	Long: `Generate a complete, self-contained HTML app from a one-line prompt.

The generated app is screened for dangerous patterns before it is saved.
Each successful generation counts against the daily quota.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	if !rt.cfg.HasCredentials() {
		return errors.New("no API key configured; set GEMINI_API_KEY or GROQ_API_KEY " +
			"(or gemini_api_key / groq_api_key in ~/.kivosy/config.yaml)")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := rt.factory.Generate(ctx, args[0], printProgress(cmd))
	if err != nil {
		return err
	}

	rememberLastApp(rt, res)

	cmd.Printf("\nApp %s saved (%sKB)\n", res.ID, res.Meta.SizeKB)
	cmd.Printf("Remaining today: %d of %d\n", rt.tracker.Remaining(), rt.tracker.MaxPerDay())
	cmd.Printf("Export it with: factory open %s\n", shortID(res.ID))
	return nil
}

// printProgress forwards pipeline status updates to the command output.
func printProgress(cmd *cobra.Command) factory.ProgressFunc {
	return func(status string) {
		cmd.Println(status)
	}
}

// rememberLastApp records the app ID so modify and open can default to it.
// Failure to write the state file is not fatal; the app itself is saved.
func rememberLastApp(rt *runtime, res *factory.Result) {
	if err := session.SaveLastAppID(rt.cfg.SessionPath(), res.ID); err != nil {
		rt.logger.Warn("saving session state", "error", err)
	}
}

func closeRuntime(rt *runtime) {
	if err := rt.Close(); err != nil {
		rt.logger.Warn("closing app database", "error", err)
	}
}
