package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the20100/meta-ads-cli/internal/api"
	"github.com/the20100/meta-ads-cli/internal/output"
)

var adsetsCmd = &cobra.Command{
	Use:   "adsets",
	Short: "Manage Meta ad sets",
}

var (
	adsetCampaignID string
	adsetID         string
)

// ---- adsets list ----

var adsetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ad sets in a campaign",
	Long: `List all ad sets in a campaign.

Examples:
  meta-ads-cli adsets list --campaign=111222333
  meta-ads-cli adsets list --campaign=111222333 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adsetCampaignID == "" {
			return fmt.Errorf("--campaign is required")
		}

		adsets, err := apiClient.ListAdSets(adsetCampaignID)
		if err != nil {
			return err
		}

		if output.IsJSON(cmd) {
			return output.PrintJSON(adsets, output.IsPretty(cmd))
		}
		if len(adsets) == 0 {
			fmt.Println("No ad sets found.")
			return nil
		}

		headers := []string{"ID", "NAME", "STATUS", "OPT GOAL", "BILLING", "DAILY BUDGET"}
		rows := make([][]string, len(adsets))
		for i, a := range adsets {
			rows[i] = []string{
				a.ID,
				output.Truncate(a.Name, 36),
				a.Status,
				a.OptimizationGoal,
				a.BillingEvent,
				api.MinorUnitsToCurrency(a.DailyBudget),
			}
		}
		output.PrintTable(headers, rows)
		return nil
	},
}

// ---- adsets pause ----

var adsetsPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause an ad set",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adsetID == "" {
			return fmt.Errorf("--adset is required")
		}
		if err := apiClient.UpdateStatus(adsetID, "PAUSED"); err != nil {
			return err
		}
		fmt.Printf("Ad set %s status set to PAUSED.\n", adsetID)
		return nil
	},
}

func init() {
	adsetsListCmd.Flags().StringVar(&adsetCampaignID, "campaign", "", "Campaign ID (required)")
	adsetsPauseCmd.Flags().StringVar(&adsetID, "adset", "", "Ad set ID (required)")

	adsetsCmd.AddCommand(adsetsListCmd, adsetsPauseCmd)
	rootCmd.AddCommand(adsetsCmd)
}
