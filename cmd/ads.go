package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the20100/meta-ads-cli/internal/output"
)

var adsCmd = &cobra.Command{
	Use:   "ads",
	Short: "View Meta ads",
}

var adsAdSetID string

// ---- ads list ----

var adsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ads in an ad set",
	Long: `List ads with their status and delivery state.

Examples:
  meta-ads-cli ads list --adset=444555666
  meta-ads-cli ads list --adset=444555666 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adsAdSetID == "" {
			return fmt.Errorf("--adset is required")
		}

		ads, err := apiClient.ListAds(adsAdSetID)
		if err != nil {
			return err
		}

		if output.IsJSON(cmd) {
			return output.PrintJSON(ads, output.IsPretty(cmd))
		}
		if len(ads) == 0 {
			fmt.Println("No ads found.")
			return nil
		}

		headers := []string{"ID", "NAME", "STATUS", "EFFECTIVE", "CREATED"}
		rows := make([][]string, len(ads))
		for i, a := range ads {
			rows[i] = []string{
				a.ID,
				output.Truncate(a.Name, 36),
				a.Status,
				emptyOrValue(a.EffectiveStatus),
				emptyOrValue(a.CreatedTime),
			}
		}
		output.PrintTable(headers, rows)
		return nil
	},
}

func init() {
	adsListCmd.Flags().StringVar(&adsAdSetID, "adset", "", "Ad set ID (required)")

	adsCmd.AddCommand(adsListCmd)
	rootCmd.AddCommand(adsCmd)
}
