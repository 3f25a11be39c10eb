package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/the20100/meta-ads-cli/internal/api"
	"github.com/the20100/meta-ads-cli/internal/config"
)

var (
	jsonFlag   bool
	prettyFlag bool
	apiClient  *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "meta-ads-cli",
	Short: "Meta Ads CLI — manage Meta Marketing API resources",
	Long: `meta-ads-cli is a command-line tool for the Meta Marketing API.

It outputs JSON when piped (for agent/script use) and human-readable
tables when running in a terminal.

Authenticate first:
  meta-ads-cli auth login

Then explore your accounts:
  meta-ads-cli accounts list
  meta-ads-cli campaigns list --account=<id>

Materialize a campaign spec (paused, never live):
  meta-ads-cli apply campaign.json

Credential file: ~/.config/meta-ads/credentials.json`,
	SilenceUsage: true,
}

// Execute is the entrypoint called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", false, "Force pretty-printed JSON output (implies --json)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if isSkipPreRunCommand(cmd) {
			return nil
		}
		return initAPIClient()
	}

	rootCmd.AddCommand(infoCmd)
}

// initAPIClient builds the shared client from the stored credentials.
func initAPIClient() error {
	creds, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds.AccessToken == "" {
		return fmt.Errorf("not authenticated — run: meta-ads-cli auth login")
	}
	apiClient = newClient(creds.AccessToken, creds.APIVersion)
	return nil
}

// newClient builds an API client whose HTTP transport carries the bearer
// token on every request.
func newClient(token, apiVersion string) *api.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	return api.New(httpClient, apiVersion)
}

// isSkipPreRunCommand returns true for commands that don't need the stored
// credentials. The apply command resolves its own token from the
// environment variable named inside the spec document.
func isSkipPreRunCommand(cmd *cobra.Command) bool {
	if isAuthCommand(cmd) {
		return true
	}
	name := cmd.Name()
	return name == "apply" || name == "info" || name == "help" || name == "completion"
}

// isAuthCommand returns true if cmd is in the auth subtree.
func isAuthCommand(cmd *cobra.Command) bool {
	for cmd != nil {
		if cmd.Name() == "auth" {
			return true
		}
		cmd = cmd.Parent()
	}
	return false
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show config path, auth status, and environment",
	Run: func(cmd *cobra.Command, args []string) {
		printInfo()
	},
}

func printInfo() {
	exe, _ := os.Executable()
	fmt.Printf("meta-ads-cli — Meta Ads CLI\n\n")
	fmt.Printf("  binary:  %s\n", exe)
	fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("  config paths by OS:")
	fmt.Printf("    macOS:   ~/Library/Application Support/meta-ads/credentials.json\n")
	fmt.Printf("    Linux:   ~/.config/meta-ads/credentials.json\n")
	fmt.Printf("    Windows: %%AppData%%\\meta-ads\\credentials.json\n")
	fmt.Printf("  config:  %s\n", config.Path())
	fmt.Println()

	creds, err := config.Load()
	if err != nil || creds.AccessToken == "" {
		fmt.Println("  status:  not authenticated (run: meta-ads-cli auth login)")
		return
	}
	fmt.Printf("  status:           authenticated\n")
	fmt.Printf("  access token:     %s\n", maskString(creds.AccessToken))
	if creds.AccountID != "" {
		fmt.Printf("  default account:  %s\n", creds.AccountID)
	}
	if creds.APIVersion != "" {
		fmt.Printf("  api version:      %s\n", creds.APIVersion)
	}
}
