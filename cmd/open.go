package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var openOutput string

var openCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Export an app to an HTML file for the browser",
	Long: `Write the stored HTML of an app to a file so it can be opened in a
browser. Defaults to <shortid>.html in the current directory; override
with --output. With no ID the most recently generated app is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openOutput, "output", "o", "", "output file path")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
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

	out := openOutput
	if out == "" {
		out = shortID(id) + ".html"
	}

	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	cmd.Printf("Exported app %s to %s\n", shortID(id), out)
	return nil
}
