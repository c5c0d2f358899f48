// Package dashboard derives chart datasets and qualitative insights from a
// validated AnalysisResult. Generation is a pure function: same input, same
// output, no I/O.
package dashboard

// Chart types understood by the frontend.
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartArea = "area"
	ChartLine = "line"
)

// ChartPoint is one entry in a chart dataset. Value carries the parsed
// number; Formatted preserves the original display string.
type ChartPoint struct {
	Category  string  `json:"category,omitempty"`
	Name      string  `json:"name,omitempty"`
	Metric    string  `json:"metric,omitempty"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted,omitempty"`
}

// ChartData is one derived chart dataset.
type ChartData struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Data     []ChartPoint `json:"data"`
	XAxisKey string       `json:"xAxisKey,omitempty"`
	YAxisKey string       `json:"yAxisKey,omitempty"`
	DataKey  string       `json:"dataKey,omitempty"`
}

// Insight classification.
const (
	InsightPositive = "positive"
	InsightNegative = "negative"
	InsightNeutral  = "neutral"

	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Insight is a qualitative signal derived from the KPIs via fixed thresholds.
type Insight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Importance  string `json:"importance"`
}

// Dashboard bundles the derived data for one analysis.
type Dashboard struct {
	ChartData []ChartData `json:"chartData"`
	Insights  []Insight   `json:"insights"`
}
