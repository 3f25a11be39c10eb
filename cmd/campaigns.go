package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/the20100/meta-ads-cli/internal/api"
	"github.com/the20100/meta-ads-cli/internal/output"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage Meta campaigns",
}

var (
	campaignAccount  string
	campaignID       string
	campaignBudgetAm int64
)

// ---- campaigns list ----

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns in an ad account",
	Long: `List campaigns with status, objective, and budget.

Examples:
  meta-ads-cli campaigns list --account=1234567890
  meta-ads-cli campaigns list --account=1234567890 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if campaignAccount == "" {
			return fmt.Errorf("--account is required")
		}

		campaigns, err := apiClient.ListCampaigns(campaignAccount)
		if err != nil {
			return err
		}

		if output.IsJSON(cmd) {
			return output.PrintJSON(campaigns, output.IsPretty(cmd))
		}
		if len(campaigns) == 0 {
			fmt.Println("No campaigns found.")
			return nil
		}

		headers := []string{"ID", "NAME", "STATUS", "OBJECTIVE", "DAILY BUDGET", "START", "STOP"}
		rows := make([][]string, len(campaigns))
		for i, c := range campaigns {
			rows[i] = []string{
				c.ID,
				output.Truncate(c.Name, 36),
				c.Status,
				formatObjective(c.Objective),
				api.MinorUnitsToCurrency(c.DailyBudget),
				emptyOrValue(c.StartTime),
				emptyOrValue(c.StopTime),
			}
		}
		output.PrintTable(headers, rows)
		return nil
	},
}

// ---- campaigns get ----

var campaignsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get full details of a campaign",
	Long: `Get detailed information about a specific campaign.

Examples:
  meta-ads-cli campaigns get --campaign=111222333`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if campaignID == "" {
			return fmt.Errorf("--campaign is required")
		}

		camp, err := apiClient.GetCampaign(campaignID)
		if err != nil {
			return err
		}

		if output.IsJSON(cmd) {
			return output.PrintJSON(camp, output.IsPretty(cmd))
		}

		output.PrintKeyValue([][]string{
			{"ID", camp.ID},
			{"Name", camp.Name},
			{"Status", camp.Status},
			{"Effective Status", emptyOrValue(camp.EffectiveStatus)},
			{"Objective", formatObjective(camp.Objective)},
			{"Buying Type", emptyOrValue(camp.BuyingType)},
			{"Daily Budget", api.MinorUnitsToCurrency(camp.DailyBudget)},
			{"Lifetime Budget", api.MinorUnitsToCurrency(camp.LifetimeBudget)},
			{"Start Time", emptyOrValue(camp.StartTime)},
			{"Stop Time", emptyOrValue(camp.StopTime)},
		})
		return nil
	},
}

// ---- campaigns pause ----

var campaignsPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause a campaign",
	Long: `Set a campaign status to PAUSED.

Examples:
  meta-ads-cli campaigns pause --campaign=111222333`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCampaignStatus(campaignID, "PAUSED")
	},
}

// ---- campaigns enable ----

var campaignsEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable a campaign",
	Long: `Set a campaign status to ACTIVE.

Examples:
  meta-ads-cli campaigns enable --campaign=111222333`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCampaignStatus(campaignID, "ACTIVE")
	},
}

func setCampaignStatus(campID, status string) error {
	if campID == "" {
		return fmt.Errorf("--campaign is required")
	}
	if err := apiClient.UpdateStatus(campID, status); err != nil {
		return err
	}
	fmt.Printf("Campaign %s status set to %s.\n", campID, status)
	return nil
}

// ---- campaigns budget ----

var campaignsBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Update the daily budget of a campaign",
	Long: `Update the daily budget for a campaign. Amount is in minor currency
units (cents: 5000 = 50.00).

Examples:
  meta-ads-cli campaigns budget --campaign=111222333 --amount=5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if campaignID == "" {
			return fmt.Errorf("--campaign is required")
		}
		if campaignBudgetAm <= 0 {
			return fmt.Errorf("--amount is required and must be positive (in minor units)")
		}
		if err := apiClient.UpdateCampaignBudget(campaignID, campaignBudgetAm); err != nil {
			return err
		}
		fmt.Printf("Campaign %s daily budget updated to %s.\n",
			campaignID, api.MinorUnitsToCurrency(fmt.Sprintf("%d", campaignBudgetAm)))
		return nil
	},
}

func init() {
	campaignsListCmd.Flags().StringVar(&campaignAccount, "account", "", "Ad account ID (required)")
	for _, c := range []*cobra.Command{campaignsGetCmd, campaignsPauseCmd, campaignsEnableCmd, campaignsBudgetCmd} {
		c.Flags().StringVar(&campaignID, "campaign", "", "Campaign ID (required)")
	}
	campaignsBudgetCmd.Flags().Int64Var(&campaignBudgetAm, "amount", 0, "New daily budget in minor units (e.g. 5000 = 50.00)")

	campaignsCmd.AddCommand(campaignsListCmd, campaignsGetCmd, campaignsPauseCmd, campaignsEnableCmd, campaignsBudgetCmd)
	rootCmd.AddCommand(campaignsCmd)
}

func formatObjective(o string) string {
	return strings.ToLower(strings.TrimPrefix(o, "OUTCOME_"))
}
