package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/export"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export <investigation-id>",
	Short: "Export an investigation to JSON, CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

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
			return eris.Wrap(err, "export")
		}
		results, err := st.GetResults(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export: results")
		}
		inv.Results = results

		analysis, err := st.GetAnalysis(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export: analysis")
		}

		dir := exportDir
		if dir == "" {
			dir = cfg.Export.Dir
		}

		path, err := export.Write(export.Bundle{Investigation: *inv, Analysis: analysis}, dir, format)
		if err != nil {
			return eris.Wrap(err, "export: write")
		}

		zap.L().Info("export written",
			zap.String("investigation_id", inv.ID),
			zap.String("path", path),
			zap.Int("results", len(results)),
		)
		fmt.Println(path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, csv, xlsx)")
	exportCmd.Flags().StringVar(&exportDir, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}
