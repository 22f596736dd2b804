package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domainscan "github.com/dorkx-sec/dorkx-cli/internal/domain/scan"
	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Create, run and inspect reconnaissance scans",
}

var scanRunCmd = &cobra.Command{
	Use:   "run <domain>",
	Short: "Create a scan for a target domain and execute it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		consent, _ := cmd.Flags().GetBool("consent")
		showProgress, _ := cmd.Flags().GetBool("progress")

		if !consent {
			fmt.Printf("%s You must confirm you are authorized to assess this domain.\n", colorError("✗"))
			fmt.Println("  Re-run with --consent to confirm authorization.")
			return fmt.Errorf("consent required")
		}

		ctx := cmd.Context()
		sc, err := app.ScanService.CreateScan(ctx, args[0], profile, operator, consent)
		if err != nil {
			return err
		}

		fmt.Printf("%s Scan %s created for %s (profile: %s, %d queries)\n",
			colorSuccess("✓"), sc.ID(), sc.TargetDomain(), sc.Profile(), sc.TotalQueries())

		if !app.Provider.Configured() {
			fmt.Printf("%s No search credentials configured; synthetic findings will be generated\n", colorWarn("!"))
		}

		var printer *progressPrinter
		if showProgress {
			printer = newProgressPrinter(sc.TotalQueries(), sc.TargetDomain())
			printer.Start()
			app.Executor.SetProgress(func(q *domainscan.Query, findings int, failed bool) {
				printer.Increment(!failed, findings)
			})
			defer app.Executor.SetProgress(nil)
		}

		runErr := app.ScanService.Run(ctx, sc.ID())
		if printer != nil {
			printer.Stop()
		}
		if runErr != nil {
			return runErr
		}

		final, err := app.ScanService.GetScan(ctx, sc.ID())
		if err != nil {
			return err
		}
		fmt.Printf("%s Scan %s %s: %d findings across %d queries\n",
			colorSuccess("✓"), final.ID(), formatStatusWithColor(string(final.Status())),
			final.TotalFindings(), final.TotalQueries())
		fmt.Printf("  Inspect with: dorkx scan findings %s\n", final.ID())
		return nil
	},
}

var scanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		scans, total, err := app.ScanService.ListScans(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		if total == 0 {
			fmt.Println("No scans found.")
			return nil
		}

		fmt.Printf("%-24s %-28s %-10s %-10s %8s %9s  %s\n",
			"ID", "TARGET", "PROFILE", "STATUS", "QUERIES", "FINDINGS", "STARTED")
		for _, sc := range scans {
			fmt.Printf("%-24s %-28s %-10s %-10s %8d %9d  %s\n",
				sc.ID(), sc.TargetDomain(), sc.Profile(), formatStatusWithColor(string(sc.Status())),
				sc.TotalQueries(), sc.TotalFindings(), sc.StartedAt().Format(time.RFC3339))
		}
		fmt.Printf("\nPage %d (%d total scans)\n", page, total)
		return nil
	},
}

var scanShowCmd = &cobra.Command{
	Use:   "show <scan-id>",
	Short: "Show one scan with its query breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sc, err := app.ScanService.GetScan(ctx, args[0])
		if err != nil {
			return &ScanNotFoundError{ID: args[0]}
		}

		fmt.Printf("Scan:     %s\n", sc.ID())
		fmt.Printf("Target:   %s\n", sc.TargetDomain())
		fmt.Printf("Profile:  %s\n", sc.Profile())
		fmt.Printf("Status:   %s\n", formatStatusWithColor(string(sc.Status())))
		fmt.Printf("Operator: %s\n", sc.UserID())
		fmt.Printf("Started:  %s\n", sc.StartedAt().Format(time.RFC3339))
		if !sc.CompletedAt().IsZero() {
			fmt.Printf("Finished: %s\n", sc.CompletedAt().Format(time.RFC3339))
		}
		if sc.ErrorMessage() != "" {
			fmt.Printf("Error:    %s\n", colorError(sc.ErrorMessage()))
		}
		fmt.Printf("Queries:  %d  Findings: %d\n", sc.TotalQueries(), sc.TotalFindings())

		queries, err := app.ScanService.Queries(ctx, sc.ID())
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return nil
		}

		fmt.Printf("\n%-24s %-26s %4s %-10s %8s\n", "QUERY", "CATEGORY", "PRIO", "STATUS", "RESULTS")
		for _, q := range queries {
			fmt.Printf("%-24s %-26s %4d %-10s %8d\n",
				q.ID(), q.Category(), q.Priority(), formatStatusWithColor(string(q.Status())), q.ResultCount())
			if q.ErrorMessage() != "" {
				fmt.Printf("    %s %s\n", colorError("error:"), q.ErrorMessage())
			}
		}
		return nil
	},
}

var scanDeleteCmd = &cobra.Command{
	Use:   "delete <scan-id>",
	Short: "Delete a scan with its queries and findings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("%s This removes the scan, its queries and all findings. Re-run with --force to confirm.\n", colorWarn("!"))
			return nil
		}
		if err := app.ScanService.DeleteScan(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Scan %s deleted\n", colorSuccess("✓"), args[0])
		return nil
	},
}

var scanFindingsCmd = &cobra.Command{
	Use:   "findings <scan-id>",
	Short: "List a scan's findings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tierFilter, _ := cmd.Flags().GetString("tier")
		categoryFilter, _ := cmd.Flags().GetString("category")
		showAll, _ := cmd.Flags().GetBool("all")
		verbose, _ := cmd.Flags().GetBool("verbose")

		findings, distribution, err := app.ScanService.Findings(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printed := 0
		for _, f := range findings {
			if tierFilter != "" && !strings.EqualFold(string(f.RiskTier()), tierFilter) {
				continue
			}
			if categoryFilter != "" && f.Category() != categoryFilter {
				continue
			}
			if f.IsFalsePositive() && !showAll {
				continue
			}
			printed++

			fmt.Printf("[%s] %s\n", formatTierWithColor(f.RiskTier()), f.URL())
			fmt.Printf("    id: %s  category: %s", f.ID(), f.Category())
			if f.FileType() != "" {
				fmt.Printf("  type: .%s", f.FileType())
			}
			if f.IsFalsePositive() {
				fmt.Printf("  %s", colorWarn("(false positive)"))
			}
			fmt.Println()
			if verbose {
				if f.Title() != "" {
					fmt.Printf("    title: %s\n", f.Title())
				}
				if f.RiskRationale() != "" {
					fmt.Printf("    rationale: %s\n", f.RiskRationale())
				}
				if f.Compliance() != "" {
					fmt.Printf("    compliance: %s\n", f.Compliance())
				}
				if f.Remediation() != "" {
					fmt.Printf("    remediation: %s\n", f.Remediation())
				}
			}
		}

		if printed == 0 {
			fmt.Println("No findings matched.")
			return nil
		}

		fmt.Printf("\n%d findings shown", printed)
		parts := make([]string, 0, 5)
		for _, tier := range []risk.Tier{risk.TierCritical, risk.TierHigh, risk.TierMedium, risk.TierLow, risk.TierInfo} {
			if n := distribution[tier]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s:%d", tier.Label(), n))
			}
		}
		if len(parts) > 0 {
			fmt.Printf("  (%s)", strings.Join(parts, " "))
		}
		fmt.Println()
		return nil
	},
}

var scanStatsCmd = &cobra.Command{
	Use:   "stats <scan-id>",
	Short: "Show aggregate statistics for a scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.ScanService.GetStatistics(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Total findings: %d\n\n", stats.TotalFindings)
		fmt.Println("Risk distribution:")
		for _, tier := range []risk.Tier{risk.TierCritical, risk.TierHigh, risk.TierMedium, risk.TierLow, risk.TierInfo} {
			fmt.Printf("  %-10s %d\n", formatTierWithColor(tier), stats.RiskDistribution[tier])
		}

		if len(stats.Categories) > 0 {
			fmt.Println("\nFindings per category:")
			for category, n := range stats.Categories {
				fmt.Printf("  %-26s %d\n", category, n)
			}
		}

		if len(stats.TopRisks) > 0 {
			fmt.Println("\nTop risks:")
			for _, tr := range stats.TopRisks {
				fmt.Printf("  [%s] %s (%s)\n", formatTierWithColor(tr.Tier), tr.URL, tr.Category)
			}
		}
		return nil
	},
}

var scanFalsePositiveCmd = &cobra.Command{
	Use:   "fp <scan-id> <finding-id>",
	Short: "Mark a finding as a false positive (or clear with --clear)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clear, _ := cmd.Flags().GetBool("clear")
		if err := app.ScanService.MarkFalsePositive(cmd.Context(), args[0], args[1], !clear); err != nil {
			return err
		}
		if clear {
			fmt.Printf("%s Finding %s no longer marked as false positive\n", colorSuccess("✓"), args[1])
		} else {
			fmt.Printf("%s Finding %s marked as false positive\n", colorSuccess("✓"), args[1])
		}
		return nil
	},
}

func init() {
	scanRunCmd.Flags().String("profile", "standard", "Scan profile: quick, standard or deep")
	scanRunCmd.Flags().Bool("consent", false, "Confirm you are authorized to assess the target")
	scanRunCmd.Flags().Bool("progress", true, "Show live progress")

	scanListCmd.Flags().Int("page", 1, "Page number")
	scanListCmd.Flags().Int("page-size", 20, "Scans per page")

	scanDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	scanFindingsCmd.Flags().String("tier", "", "Only show findings of this risk tier")
	scanFindingsCmd.Flags().String("category", "", "Only show findings of this category")
	scanFindingsCmd.Flags().Bool("all", false, "Include findings marked as false positives")
	scanFindingsCmd.Flags().BoolP("verbose", "v", false, "Show rationale, compliance and remediation")

	scanFalsePositiveCmd.Flags().Bool("clear", false, "Clear the false positive flag instead of setting it")

	scanCmd.AddCommand(scanRunCmd)
	scanCmd.AddCommand(scanListCmd)
	scanCmd.AddCommand(scanShowCmd)
	scanCmd.AddCommand(scanDeleteCmd)
	scanCmd.AddCommand(scanFindingsCmd)
	scanCmd.AddCommand(scanStatsCmd)
	scanCmd.AddCommand(scanFalsePositiveCmd)
}
