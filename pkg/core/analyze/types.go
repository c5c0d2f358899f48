// Package analyze implements the prompt contract with the LLM and the
// normalization of its JSON reply into a typed AnalysisResult.
package analyze

import (
	"fmt"
)

// KPIUnavailable is the sentinel for a metric the document does not support.
// The prompt instructs the model to use it instead of inventing values.
const KPIUnavailable = "N/A"

// KPIs is the fixed set of named financial metrics. Every field is a
// formatted display string (e.g. "$1.2M", "15%") or KPIUnavailable; consumers
// never see a missing field.
type KPIs struct {
	Revenue            string `json:"revenue"`
	Expenses           string `json:"expenses"`
	NetProfit          string `json:"netProfit"`
	GrowthRate         string `json:"growthRate"`
	TotalAssets        string `json:"totalAssets"`
	TotalLiabilities   string `json:"totalLiabilities"`
	CashFlow           string `json:"cashFlow"`
	DebtToEquityRatio  string `json:"debtToEquityRatio"`
	ReturnOnInvestment string `json:"returnOnInvestment"`
	ProfitMargin       string `json:"profitMargin"`
}

// AnalysisResult is the structured output of one (file, prompt) pair.
// Immutable once created; regeneration with a different prompt produces a new
// instance.
type AnalysisResult struct {
	Summary         string   `json:"summary"`
	KPIs            KPIs     `json:"kpis"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
}

// AIServiceError marks a failure of the upstream completion call. The core
// does not retry; retry/backoff policy belongs to the caller.
type AIServiceError struct {
	Err error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("AI service call failed: %v", e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// ResponseParseError marks model output that could not be shaped into an
// AnalysisResult. The analysis path recovers with a fallback; the chat path
// propagates.
type ResponseParseError struct {
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}
