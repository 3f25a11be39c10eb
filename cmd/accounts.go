package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/the20100/meta-ads-cli/internal/api"
	"github.com/the20100/meta-ads-cli/internal/output"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage Meta ad accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ad accounts accessible to the token",
	Long: `List all ad accounts the stored access token can manage.

Examples:
  meta-ads-cli accounts list
  meta-ads-cli accounts list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := apiClient.ListAdAccounts()
		if err != nil {
			return err
		}

		if output.IsJSON(cmd) {
			return output.PrintJSON(accounts, output.IsPretty(cmd))
		}
		if len(accounts) == 0 {
			fmt.Println("No accessible ad accounts found.")
			return nil
		}

		headers := []string{"ID", "NAME", "CURRENCY", "TIMEZONE", "STATUS", "SPENT"}
		rows := make([][]string, len(accounts))
		for i, a := range accounts {
			rows[i] = []string{
				api.CleanAccountID(a.ID),
				output.Truncate(a.Name, 36),
				a.Currency,
				a.TimezoneName,
				formatAccountStatus(a.Status),
				api.MinorUnitsToCurrency(a.AmountSpent),
			}
		}
		output.PrintTable(headers, rows)
		return nil
	},
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	rootCmd.AddCommand(accountsCmd)
}

func formatAccountStatus(s int) string {
	switch s {
	case 1:
		return "active"
	case 2:
		return "disabled"
	case 3:
		return "unsettled"
	case 7:
		return "pending review"
	case 9:
		return "in grace period"
	case 101:
		return "closed"
	default:
		return strconv.Itoa(s)
	}
}
