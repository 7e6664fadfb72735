// Package report renders quality reports as markdown tables and HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"baacprep/domain/validate"
)

// Markdown renders the quality report as a GitHub-style markdown table
func Markdown(r *validate.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Data Quality Report\n\n")
	fmt.Fprintf(&b, "%d rows, %d columns\n\n", r.RowCount, len(r.Columns))
	b.WriteString("| column | type | non-null | null % | unique | examples | mean | median | min | max |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range r.Columns {
		fmt.Fprintf(&b, "| %s | %s | %d | %.2f | %s | %s | %s | %s | %s | %s |\n",
			c.Column, c.InferredType, c.NonNull, c.NullPct,
			intOrDash(c.UniqueCount),
			strings.Join(c.ExampleValues, ", "),
			numOrDash(c.Mean, c.InferredType),
			numOrDash(c.Median, c.InferredType),
			numOrDash(c.Min, c.InferredType),
			numOrDash(c.Max, c.InferredType),
		)
	}
	return b.String()
}

// HTML converts the markdown report to a standalone HTML fragment
func HTML(r *validate.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}

func intOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func numOrDash(f float64, inferredType string) string {
	if inferredType != "numeric" {
		return "-"
	}
	return fmt.Sprintf("%.4g", f)
}
