package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/report"
	"github.com/osintworks/recon-cli/internal/store"
)

var investigationsCmd = &cobra.Command{
	Use:   "investigations",
	Short: "Inspect investigation history",
	Long:  "Commands for listing, viewing and purging stored investigations.",
}

// -- investigations list --

var investigationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored investigations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		target, _ := cmd.Flags().GetString("target")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.InvestigationFilter{
			Status: model.InvestigationStatus(status),
			Target: target,
			Limit:  limit,
		}

		investigations, err := st.ListInvestigations(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "investigations list")
		}

		if len(investigations) == 0 {
			fmt.Fprintln(os.Stderr, "No investigations found.")
			return nil
		}

		formatInvestigationsList(os.Stdout, investigations)
		return nil
	},
}

// -- investigations show --

var investigationsShowCmd = &cobra.Command{
	Use:   "show <investigation-id>",
	Short: "Show an investigation with its results and analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		inv, err := st.GetInvestigation(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "investigations show")
		}
		results, err := st.GetResults(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "investigations show: results")
		}
		inv.Results = results

		analysis, err := st.GetAnalysis(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "investigations show: analysis")
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Investigation model.Investigation         `json:"investigation"`
				Analysis      *model.IntelligenceAnalysis `json:"analysis,omitempty"`
			}{*inv, analysis})
		}

		fmt.Print(report.FormatAnalysis(*inv, analysis))
		return nil
	},
}

// -- investigations status --

var investigationsStatusCmd = &cobra.Command{
	Use:   "status <investigation-id>",
	Short: "Show the progress of an investigation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		inv, err := st.GetInvestigation(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "investigations status")
		}
		results, err := st.GetResults(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "investigations status: results")
		}

		elapsed := time.Since(inv.StartedAt)
		if inv.EndedAt != nil {
			elapsed = inv.EndedAt.Sub(inv.StartedAt)
		}
		p := model.Progress{
			InvestigationID: inv.ID,
			Target:          inv.Strategy.Target.PrimaryIdentifier,
			Status:          inv.Status,
			StartedAt:       inv.StartedAt,
			EndedAt:         inv.EndedAt,
			Elapsed:         elapsed,
			ResultCount:     len(results),
			Methods:         inv.Strategy.CollectionMethods,
			KeywordCount:    len(inv.Strategy.SearchKeywords),
		}

		fmt.Print(report.FormatProgress(p))
		return nil
	},
}

// -- investigations cancel --

var investigationsCancelCmd = &cobra.Command{
	Use:   "cancel <investigation-id>",
	Short: "Cancel a running investigation via the API server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		if server == "" {
			server = fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
		}

		url := fmt.Sprintf("%s/investigations/%s/cancel", server, args[0])
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, nil)
		if err != nil {
			return eris.Wrap(err, "investigations cancel")
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return eris.Wrap(err, "investigations cancel: is the server running?")
		}
		defer resp.Body.Close() //nolint:errcheck

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if resp.StatusCode != http.StatusOK {
			return eris.Errorf("investigations cancel: %s: %s", resp.Status, string(body))
		}

		zap.L().Info("investigation cancelled", zap.String("investigation_id", args[0]))
		fmt.Printf("Cancelled %s.\n", args[0])
		return nil
	},
}

// -- investigations purge --

var investigationsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete finished investigations past the retention window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan == 0 {
			olderThan = time.Duration(cfg.Discovery.PurgeAfterHours) * time.Hour
		}

		removed, err := st.PurgeOlderThan(ctx, time.Now().UTC().Add(-olderThan))
		if err != nil {
			return eris.Wrap(err, "investigations purge")
		}

		zap.L().Info("purge complete", zap.Int("removed", removed))
		fmt.Printf("Removed %d investigations.\n", removed)
		return nil
	},
}

func init() {
	investigationsListCmd.Flags().String("status", "", "filter by status (running, completed, cancelled, failed)")
	investigationsListCmd.Flags().String("target", "", "filter by target substring")
	investigationsListCmd.Flags().Int("limit", 50, "max number of investigations to display")

	investigationsShowCmd.Flags().Bool("json", false, "print as JSON")

	investigationsCancelCmd.Flags().String("server", "", "API server base URL (default http://127.0.0.1:<config port>)")

	investigationsPurgeCmd.Flags().Duration("older-than", 0, "retention window (default from config)")

	investigationsCmd.AddCommand(investigationsListCmd)
	investigationsCmd.AddCommand(investigationsShowCmd)
	investigationsCmd.AddCommand(investigationsStatusCmd)
	investigationsCmd.AddCommand(investigationsCancelCmd)
	investigationsCmd.AddCommand(investigationsPurgeCmd)
	rootCmd.AddCommand(investigationsCmd)
}

// formatInvestigationsList writes a tabular list of investigations to w.
func formatInvestigationsList(out io.Writer, investigations []model.Investigation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTARGET\tSTATUS\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t------\t------\t-------\t--------")

	for _, inv := range investigations {
		dur := ""
		if inv.EndedAt != nil {
			dur = inv.EndedAt.Sub(inv.StartedAt).Round(time.Second).String()
		}

		target := inv.Strategy.Target.PrimaryIdentifier
		if len(target) > 40 {
			target = target[:37] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(inv.ID),
			target,
			inv.Status,
			inv.StartedAt.Format("2006-01-02 15:04"),
			dur,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
