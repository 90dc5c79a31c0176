package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/osintworks/recon-cli/internal/report"
)

var quickJSON bool

var quickCmd = &cobra.Command{
	Use:   "quick <target>",
	Short: "Run a trimmed-down investigation using search engines only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		outcome, err := env.Engine.RunQuick(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "quick")
		}

		if quickJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome)
		}

		fmt.Print(report.FormatAnalysis(outcome.Investigation, outcome.Analysis))
		return nil
	},
}

func init() {
	quickCmd.Flags().BoolVar(&quickJSON, "json", false, "print the raw outcome as JSON")
	rootCmd.AddCommand(quickCmd)
}
