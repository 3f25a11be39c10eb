package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// IsJSON reports whether output should be JSON: either --json/--pretty was
// passed, or stdout is not a terminal (piped/agent use).
func IsJSON(cmd *cobra.Command) bool {
	if IsPretty(cmd) {
		return true
	}
	if v, err := cmd.Flags().GetBool("json"); err == nil && v {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsPretty reports whether --pretty was passed.
func IsPretty(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("pretty")
	return err == nil && v
}

// PrintJSON writes v as JSON to stdout.
func PrintJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// PrintTable writes an aligned table with an uppercase header row.
func PrintTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// PrintKeyValue writes aligned key/value pairs, one per line.
func PrintKeyValue(pairs [][]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		fmt.Printf("%-*s  %s\n", width+1, p[0]+":", p[1])
	}
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
