package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"finsight/pkg/core/utils"
)

// renderDocx produces a real Word (OOXML) document for the analysis report.
func renderDocx(data *ExportData) (*Artifact, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(data.Title).Size("36").Bold()
	doc.AddParagraph().AddText("Generated " + data.GeneratedAt.Format("2006-01-02 15:04 MST")).Size("18")
	doc.AddParagraph()

	heading := func(text string) {
		doc.AddParagraph().AddText(text).Size("28").Bold()
	}

	heading("Summary")
	doc.AddParagraph().AddText(utils.MarkdownToPlain(data.Summary))
	doc.AddParagraph()

	heading("Key Performance Indicators")
	for _, row := range kpiRows(data.KPIs) {
		p := doc.AddParagraph()
		p.AddText(row[0] + ": ").Bold()
		p.AddText(row[1])
	}
	doc.AddParagraph()

	listSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		heading(title)
		for _, item := range items {
			doc.AddParagraph().AddText("- " + item)
		}
		doc.AddParagraph()
	}

	listSection("Risks", data.Risks)
	listSection("Opportunities", data.Opportunities)
	listSection("Recommendations", data.Recommendations)

	if len(data.Insights) > 0 {
		heading("Insights")
		for _, insight := range data.Insights {
			p := doc.AddParagraph()
			p.AddText(fmt.Sprintf("%s (%s, %s importance): ", insight.Title, insight.Type, insight.Importance)).Bold()
			p.AddText(insight.Description)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render DOCX: %w", err)
	}

	return &Artifact{
		Bytes:       buf.Bytes(),
		FileName:    suggestedName(data.Title, ".docx"),
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}, nil
}
