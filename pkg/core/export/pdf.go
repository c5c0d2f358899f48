package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"finsight/pkg/core/utils"
)

// renderPDF produces a real PDF document for the analysis report.
func renderPDF(data *ExportData) (*Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Title, true)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, data.Title, "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Generated "+data.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	section("Summary")
	pdf.MultiCell(0, 5.5, utils.MarkdownToPlain(data.Summary), "", "L", false)
	pdf.Ln(3)

	section("Key Performance Indicators")
	for _, row := range kpiRows(data.KPIs) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "B", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	listSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		section(title)
		for _, item := range items {
			pdf.MultiCell(0, 5.5, "- "+item, "", "L", false)
		}
		pdf.Ln(3)
	}

	listSection("Risks", data.Risks)
	listSection("Opportunities", data.Opportunities)
	listSection("Recommendations", data.Recommendations)

	if len(data.Insights) > 0 {
		section("Insights")
		for _, insight := range data.Insights {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s, %s importance)", insight.Title, insight.Type, insight.Importance), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5.5, insight.Description, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return &Artifact{
		Bytes:       buf.Bytes(),
		FileName:    suggestedName(data.Title, ".pdf"),
		ContentType: "application/pdf",
	}, nil
}
