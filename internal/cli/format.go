package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/comments/internal/comment"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCommentTable prints comments as a formatted table.
func printCommentTable(out io.Writer, comments []*comment.Comment) error {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tAUTHOR\tCREATED\tTEXT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t------\t-------\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.ID, truncate(c.Author, 20), c.CreatedAt.Format("2006-01-02 15:04"), truncate(firstLine(c.Text), 50)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d comments\n", len(comments))
	return nil
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(w io.Writer, c *comment.Comment) {
	fmt.Fprintf(w, "Comment %s added by %s.\n  %s\n", c.ID, c.Author, c.Text)
}

// firstLine returns s up to the first newline, marking any cut.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
