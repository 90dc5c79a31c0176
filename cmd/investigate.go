package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/report"
)

var (
	investigateObjective    string
	investigatePriority     []string
	investigateUrgency      string
	investigateDepth        string
	investigateRisk         string
	investigateRequirements []string
	investigateJSON         bool
)

var investigateCmd = &cobra.Command{
	Use:   "investigate <target>",
	Short: "Run a full discovery investigation for a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		reqCtx := model.RequestContext{
			Objective:          investigateObjective,
			PriorityData:       investigatePriority,
			Urgency:            model.Urgency(investigateUrgency),
			SearchDepth:        model.SearchDepth(investigateDepth),
			RiskTolerance:      model.RiskTolerance(investigateRisk),
			CustomRequirements: investigateRequirements,
		}

		outcome, err := env.Engine.Run(ctx, args[0], reqCtx)
		if err != nil {
			return eris.Wrap(err, "investigate")
		}

		zap.L().Info("investigation finished",
			zap.String("investigation_id", outcome.Investigation.ID),
			zap.String("status", string(outcome.Investigation.Status)),
			zap.Int("results", len(outcome.Investigation.Results)),
		)

		if investigateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome)
		}

		fmt.Print(report.FormatAnalysis(outcome.Investigation, outcome.Analysis))
		return nil
	},
}

func init() {
	investigateCmd.Flags().StringVar(&investigateObjective, "objective", "", "what the investigation is for (e.g. sales_outreach, due_diligence)")
	investigateCmd.Flags().StringSliceVar(&investigatePriority, "priority", nil, "data types to prioritize (emails, phones, decision_makers, ...)")
	investigateCmd.Flags().StringVar(&investigateUrgency, "urgency", string(model.UrgencyStandard), "urgency level (immediate, standard, comprehensive)")
	investigateCmd.Flags().StringVar(&investigateDepth, "depth", string(model.DepthStandard), "search depth (quick, standard, comprehensive)")
	investigateCmd.Flags().StringVar(&investigateRisk, "risk", string(model.RiskMedium), "risk tolerance (low, medium, high)")
	investigateCmd.Flags().StringSliceVar(&investigateRequirements, "require", nil, "custom requirements")
	investigateCmd.Flags().BoolVar(&investigateJSON, "json", false, "print the raw outcome as JSON")
	rootCmd.AddCommand(investigateCmd)
}
