package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// renderTable prints a titled table followed by a one-line summary. Empty
// result sets print only the title and summary.
func renderTable(out io.Writer, title string, headers []string, rows [][]string, summary string) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", len([]rune(title))))

	if len(rows) > 0 {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		w.Flush()
	}

	fmt.Fprintln(out, summary)
}
