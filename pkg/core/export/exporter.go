// Package export renders an analysis plus its dashboard into downloadable
// document artifacts. Rendering is deterministic templating over the export
// data; no external calls.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finsight/pkg/core/analyze"
	"finsight/pkg/core/dashboard"
)

// Supported output formats.
const (
	FormatPDF    = "pdf"
	FormatWord   = "word"
	FormatNotion = "notion"
)

// ErrUnsupportedFormat is returned for any format outside pdf/word/notion.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportData is the flat shape every formatter renders.
type ExportData struct {
	Title           string              `json:"title"`
	Summary         string              `json:"summary"`
	KPIs            analyze.KPIs        `json:"kpis"`
	Insights        []dashboard.Insight `json:"insights"`
	Risks           []string            `json:"risks"`
	Opportunities   []string            `json:"opportunities"`
	Recommendations []string            `json:"recommendations"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

// Artifact is the rendered document plus the filename the storage layer
// should serve it under.
type Artifact struct {
	Bytes       []byte
	FileName    string
	ContentType string
}

// Render produces the artifact for the requested format.
func Render(data *ExportData, format string) (*Artifact, error) {
	switch format {
	case FormatPDF:
		return renderPDF(data)
	case FormatWord:
		return renderDocx(data)
	case FormatNotion:
		return renderNotion(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// suggestedName builds a filesystem-safe filename from the report title.
func suggestedName(title, ext string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	if base == "" {
		base = "financial-analysis"
	}
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteByte('-')
		}
	}
	name := strings.Trim(sb.String(), "-")
	if name == "" {
		name = "financial-analysis"
	}
	return name + ext
}

// kpiRows returns the KPI table in a fixed presentation order.
func kpiRows(kpis analyze.KPIs) [][2]string {
	return [][2]string{
		{"Revenue", kpis.Revenue},
		{"Expenses", kpis.Expenses},
		{"Net Profit", kpis.NetProfit},
		{"Growth Rate", kpis.GrowthRate},
		{"Total Assets", kpis.TotalAssets},
		{"Total Liabilities", kpis.TotalLiabilities},
		{"Cash Flow", kpis.CashFlow},
		{"Debt-to-Equity Ratio", kpis.DebtToEquityRatio},
		{"Return on Investment", kpis.ReturnOnInvestment},
		{"Profit Margin", kpis.ProfitMargin},
	}
}
