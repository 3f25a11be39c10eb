package apply

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

// ResultsFileName is the file SaveResult writes next to the spec.
const ResultsFileName = "results.json"

// WriteReport writes the human-readable apply report.
func (r *Result) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "Campaign:  %s  (id: %s)\n", r.CampaignName, r.CampaignID)

	if len(r.AdGroups) > 0 {
		fmt.Fprintf(w, "\nAd groups (%d):\n", len(r.AdGroups))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  REF\tNAME\tREMOTE ID")
		for _, g := range r.AdGroups {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", g.Ref, g.Name, g.RemoteID)
		}
		tw.Flush()
	}

	if len(r.Images) > 0 {
		fmt.Fprintf(w, "\nImages (%d):\n", len(r.Images))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  PATH\tHASH")
		for _, img := range r.Images {
			fmt.Fprintf(tw, "  %s\t%s\n", img.DeclaredPath, img.RemoteHash)
		}
		tw.Flush()
	}

	if len(r.Ads) > 0 {
		fmt.Fprintf(w, "\nAds (%d):\n", len(r.Ads))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tAD GROUP\tAD ID\tCREATIVE ID")
		for _, ad := range r.Ads {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ad.Name, ad.AdGroupRef, ad.RemoteAdID, ad.RemoteCreativeID)
		}
		tw.Flush()
	}
}

// WritePartialReport writes whatever the failed run managed to create,
// so operators don't have to re-derive progress from logs.
func (r *Result) WritePartialReport(w io.Writer) {
	var created []string
	if r.CampaignID != "" {
		created = append(created, fmt.Sprintf("campaign %s", r.CampaignID))
	}
	if n := len(r.Images); n > 0 {
		created = append(created, fmt.Sprintf("%d image(s)", n))
	}
	if n := len(r.AdGroups); n > 0 {
		created = append(created, fmt.Sprintf("%d ad group(s)", n))
	}
	if n := len(r.Ads); n > 0 {
		created = append(created, fmt.Sprintf("%d ad(s)", n))
	}
	fmt.Fprintf(w, "Created before the failure: %s.\n", strings.Join(created, ", "))
	fmt.Fprintln(w, "These resources still exist remotely (paused) and were NOT cleaned up.")
	fmt.Fprintln(w)
	r.WriteReport(w)
}

// WriteReport writes the dry-run summary.
func (s *Summary) WriteReport(w io.Writer) {
	fmt.Fprintln(w, "Dry run — nothing will be created.")
	fmt.Fprintf(w, "  Campaign:   %s (%s)\n", s.CampaignName, s.Objective)
	fmt.Fprintf(w, "  Ad groups:  %d\n", s.AdGroupCount)
	fmt.Fprintf(w, "  Ads:        %d\n", s.AdCount)
	fmt.Fprintf(w, "  Images:     %d distinct\n", s.ImageCount)
}

// SaveResult writes the result as results.json in the spec file's
// directory, overwriting any previous run's file. Returns the written path.
func SaveResult(r *Result, specPath string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(filepath.Dir(specPath), ResultsFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
