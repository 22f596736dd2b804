package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dorkx-sec/dorkx-cli/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <scan-id>",
	Short: "Export a scan's findings as csv, html or pdf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		includeLowRisk, _ := cmd.Flags().GetBool("include-low-risk")
		includeInfo, _ := cmd.Flags().GetBool("include-info")

		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sc, err := app.ScanService.GetScan(ctx, args[0])
		if err != nil {
			return &ScanNotFoundError{ID: args[0]}
		}

		findings, _, err := app.ScanService.Findings(ctx, sc.ID())
		if err != nil {
			return err
		}

		queries, err := app.ScanService.Queries(ctx, sc.ID())
		if err != nil {
			return err
		}
		queryText := make(map[string]string, len(queries))
		for _, q := range queries {
			queryText[q.ID()] = q.Text()
		}

		path, err := app.ReportWriter.Generate(ctx, sc, findings, queryText, report.Options{
			Format:         format,
			IncludeLowRisk: includeLowRisk,
			IncludeInfo:    includeInfo,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Report written to %s\n", colorSuccess("✓"), path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "csv", "Report format: csv, html or pdf")
	reportCmd.Flags().Bool("include-low-risk", false, "Include LOW risk findings")
	reportCmd.Flags().Bool("include-info", false, "Include INFO findings")
}
