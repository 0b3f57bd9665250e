package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"HeadlineSync/internal/domain"
)

// PrintReport renders the run summary the job always emits: counts, created
// articles, and per-row errors.
func PrintReport(p *Printer, report domain.Report) {
	if report.DryRun {
		p.Header("DRY RUN — no changes made")
		p.Print("approved headlines: %d", report.Approved)
		p.Print("already transferred: %d", report.Skipped)
		p.Print("would transfer: %d", len(report.Planned))
		for _, title := range report.Planned {
			p.Print("  → %s (pipeline_status: queued)", title)
		}
		p.Print("\nRemove --dry-run to execute.")
		return
	}

	p.Header("TRANSFER COMPLETE")
	if !report.StartedAt.IsZero() {
		p.Print("started: %s", report.StartedAt.Format("2006-01-02 15:04 UTC"))
	}
	renderCounts(p.Out(), report)

	if len(report.Created) > 0 {
		p.Header("Articles queued for the News Agent")
		renderCreated(p.Out(), report.Created)
	}

	for _, rowErr := range report.Errors {
		p.Error("row %s (%s): %v", rowErr.HeadlineID, rowErr.Title, rowErr.Err)
	}

	if len(report.Errors) == 0 && report.Approved > 0 {
		p.Success("run %s finished cleanly", report.RunID)
	}
}

func renderCounts(w io.Writer, report domain.Report) {
	renderTable(w, []string{"Metric", "Count"}, [][]string{
		{"approved", strconv.Itoa(report.Approved)},
		{"transferred", strconv.Itoa(report.Transferred())},
		{"skipped (duplicate)", strconv.Itoa(report.Skipped)},
		{"reconciled", strconv.Itoa(report.Reconciled)},
		{"errors", strconv.Itoa(len(report.Errors))},
	})
}

func renderCreated(w io.Writer, created []domain.CreatedArticle) {
	rows := make([][]string, 0, len(created))
	for _, article := range created {
		rows = append(rows, []string{article.Title, article.ID})
	}
	renderTable(w, []string{"Title", "Record ID"}, rows)
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	table.Bulk(rows)
	table.Render()
}
