package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the20100/meta-ads-cli/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Meta Marketing API authentication",
}

// ---- auth login ----

var (
	authToken      string
	authAccountID  string
	authAPIVersion string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Meta system user access token",
	Long: `Store a long-lived access token for the Meta Marketing API.

You need:
  1. A system user token from Meta Business Settings with the
     ads_management permission:
     https://business.facebook.com/settings/system-users
  2. Optionally, a default ad account ID.

Run with flags:
  meta-ads-cli auth login --token=<token> --account=1234567890

Or provide values interactively when prompted.`,
	RunE: runAuthLogin,
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	creds, err := config.Load()
	if err != nil {
		creds = &config.Credentials{}
	}

	if authToken != "" {
		creds.AccessToken = authToken
	} else if creds.AccessToken == "" {
		creds.AccessToken = promptRequired("Access Token: ")
	}
	if authAccountID != "" {
		creds.AccountID = authAccountID
	} else if creds.AccountID == "" {
		creds.AccountID = prompt("Default Ad Account ID (optional): ")
	}
	if authAPIVersion != "" {
		creds.APIVersion = authAPIVersion
	}

	// Verify the token before storing it.
	client := newClient(creds.AccessToken, creds.APIVersion)
	user, err := client.Me()
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	if err := config.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Printf("Authenticated as %s (%s).\n", user.Name, user.ID)
	fmt.Printf("Credentials saved to: %s\n", config.Path())
	return nil
}

// ---- auth status ----

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := config.Load()
		if err != nil || creds.AccessToken == "" {
			fmt.Println("Not authenticated. Run: meta-ads-cli auth login")
			return nil
		}
		fmt.Printf("Access token:     %s\n", maskString(creds.AccessToken))
		fmt.Printf("Default account:  %s\n", emptyOrValue(creds.AccountID))

		client := newClient(creds.AccessToken, creds.APIVersion)
		user, err := client.Me()
		if err != nil {
			fmt.Printf("Token check:      FAILED (%v)\n", err)
			return nil
		}
		fmt.Printf("Token check:      ok — %s (%s)\n", user.Name, user.ID)
		return nil
	},
}

// ---- auth logout ----

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Clear(); err != nil {
			return fmt.Errorf("removing credentials: %w", err)
		}
		fmt.Println("Credentials removed.")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&authToken, "token", "", "System user access token")
	authLoginCmd.Flags().StringVar(&authAccountID, "account", "", "Default ad account ID")
	authLoginCmd.Flags().StringVar(&authAPIVersion, "api-version", "", "Graph API version (e.g. v21.0)")

	authCmd.AddCommand(authLoginCmd, authStatusCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
