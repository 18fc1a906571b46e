package render

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"unipower/domain/power"
	"unipower/ports"
)

// ReportRenderer writes an HTML study report: per-test power summaries
// and the full table, composed as markdown and rendered with
// gomarkdown.
type ReportRenderer struct {
	Path  string
	Title string
}

// NewReportRenderer creates an HTML report renderer targeting path
func NewReportRenderer(path, title string) *ReportRenderer {
	return &ReportRenderer{Path: path, Title: title}
}

var _ ports.Renderer = (*ReportRenderer)(nil)

// Render implements ports.Renderer
func (r *ReportRenderer) Render(ctx context.Context, label string, table *power.Table) error {
	if table == nil || len(table.Rows) == 0 {
		return fmt.Errorf("render %s: empty power table", label)
	}
	md, err := r.composeMarkdown(label, table)
	if err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return os.WriteFile(r.Path, out, 0o644)
}

func (r *ReportRenderer) composeMarkdown(label string, table *power.Table) (string, error) {
	summaries, err := table.Summaries()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "Sweep `%s`: %d power estimates across %d tests.\n\n", label, len(table.Rows), len(summaries))

	b.WriteString("## Power by test\n\n")
	b.WriteString("| test | min | mean | max |\n|---|---|---|---|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4f |\n", s.Test, s.Min, s.Mean, s.Max)
	}

	b.WriteString("\n## Full table\n\n")
	b.WriteString("| sample size | bins | test | power |\n|---|---|---|---|\n")
	for _, row := range table.Rows {
		fmt.Fprintf(&b, "| %d | %d | %s | %.4f |\n", row.SampleSize, row.Bins, row.Test, row.Power)
	}
	return b.String(), nil
}
