package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/the20100/meta-ads-cli/internal/apply"
	"github.com/the20100/meta-ads-cli/internal/output"
	"github.com/the20100/meta-ads-cli/internal/spec"
)

var (
	applyDryRun      bool
	applyAPIVersion  string
	applySaveResults bool
	applyVerbose     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <spec-file>",
	Short: "Create a campaign, ad sets, and ads from a spec document",
	Long: `Apply a declarative campaign-spec JSON document against the Meta
Marketing API. Resources are created in dependency order — images, then
the campaign, then ad sets, then creatives and ads — and every one of
them is created PAUSED. Nothing goes live.

The access token is read from the environment variable named by
meta.systemUserTokenEnv inside the document.

On a remote failure the run stops immediately. Resources created before
the failure are left in place (paused) and reported; nothing is rolled
back or retried.

Examples:
  meta-ads-cli apply campaign.json
  meta-ads-cli apply campaign.json --dry-run
  meta-ads-cli apply campaign.json --save-results`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	specPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	doc, raw, err := spec.Load(specPath)
	if err != nil {
		return err
	}
	if err := spec.Validate(raw, doc); err != nil {
		return fmt.Errorf("spec validation failed: %w", err)
	}

	repoRoot, err := os.Getwd()
	if err != nil {
		return err
	}
	images, err := spec.ResolveImages(doc, repoRoot, filepath.Dir(specPath))
	if err != nil {
		return err
	}

	if applyDryRun {
		sum := apply.Summarize(doc, images)
		if output.IsJSON(cmd) {
			return output.PrintJSON(sum, output.IsPretty(cmd))
		}
		sum.WriteReport(os.Stdout)
		return nil
	}

	token, err := apply.ResolveCredential(doc.Meta.SystemUserTokenEnv)
	if err != nil {
		return err
	}

	apiVersion := applyAPIVersion
	if apiVersion == "" {
		apiVersion = doc.Meta.APIVersion
	}
	client := newClient(token, apiVersion)

	logger := zap.NewNop()
	if applyVerbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint
	}

	engine := apply.NewEngine(client, doc.Meta.AccountID, logger)
	result, err := engine.Apply(doc, images)
	if err != nil {
		if !result.Empty() {
			fmt.Fprintln(os.Stderr, "Apply failed partway through.")
			result.WritePartialReport(os.Stderr)
		}
		return err
	}

	if output.IsJSON(cmd) {
		if err := output.PrintJSON(result, output.IsPretty(cmd)); err != nil {
			return err
		}
	} else {
		result.WriteReport(os.Stdout)
	}

	if applySaveResults {
		path, err := apply.SaveResult(result, specPath)
		if err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		if !output.IsJSON(cmd) {
			fmt.Printf("\nResults written to %s\n", path)
		}
	}
	return nil
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Validate and resolve assets only; no network calls")
	applyCmd.Flags().StringVar(&applyAPIVersion, "api-version", "", "Override the Graph API version from the spec")
	applyCmd.Flags().BoolVar(&applySaveResults, "save-results", false, "Write results.json next to the spec file")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "Log each creation step")

	rootCmd.AddCommand(applyCmd)
}
