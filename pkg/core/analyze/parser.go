package analyze

import (
	"fmt"
	"strings"

	"finsight/pkg/core/utils"
)

// Fixed strings for the degrade-gracefully path. Malformed model output must
// never crash the request pipeline.
const (
	summaryUnavailable = "Summary not available."
	fallbackSummary    = "We were unable to analyze this document automatically. Please try again or review the document manually."
	fallbackAdvisory   = "Analysis unavailable - please review manually"
)

// rawAnalysis tolerates the loosely typed shapes models actually return; the
// strict contract is enforced during normalization.
type rawAnalysis struct {
	Summary         interface{}            `json:"summary"`
	KPIs            map[string]interface{} `json:"kpis"`
	Risks           interface{}            `json:"risks"`
	Opportunities   interface{}            `json:"opportunities"`
	Recommendations interface{}            `json:"recommendations"`
}

// ParseAnalysisResponse shapes a raw model completion into an AnalysisResult.
// It extracts the first top-level JSON object (models wrap JSON in prose or
// code fences), repairs it if needed, then normalizes every field so the
// consumer never sees a missing value. Returns *ResponseParseError when no
// JSON object can be recovered at all.
func ParseAnalysisResponse(response string) (*AnalysisResult, error) {
	obj, err := utils.ExtractJSONObject(response)
	if err != nil {
		return nil, &ResponseParseError{Err: err}
	}

	var raw rawAnalysis
	if _, err := utils.SmartParse(obj, &raw); err != nil {
		return nil, &ResponseParseError{Err: fmt.Errorf("invalid JSON object: %w", err)}
	}

	return normalize(&raw), nil
}

// FallbackResult is the well-typed but semantically empty result substituted
// when the model response cannot be parsed.
func FallbackResult() *AnalysisResult {
	return &AnalysisResult{
		Summary:         fallbackSummary,
		KPIs:            emptyKPIs(),
		Risks:           []string{fallbackAdvisory},
		Opportunities:   []string{fallbackAdvisory},
		Recommendations: []string{fallbackAdvisory},
	}
}

func emptyKPIs() KPIs {
	return KPIs{
		Revenue:            KPIUnavailable,
		Expenses:           KPIUnavailable,
		NetProfit:          KPIUnavailable,
		GrowthRate:         KPIUnavailable,
		TotalAssets:        KPIUnavailable,
		TotalLiabilities:   KPIUnavailable,
		CashFlow:           KPIUnavailable,
		DebtToEquityRatio:  KPIUnavailable,
		ReturnOnInvestment: KPIUnavailable,
		ProfitMargin:       KPIUnavailable,
	}
}

func normalize(raw *rawAnalysis) *AnalysisResult {
	result := &AnalysisResult{
		Summary:         summaryUnavailable,
		KPIs:            emptyKPIs(),
		Risks:           stringList(raw.Risks),
		Opportunities:   stringList(raw.Opportunities),
		Recommendations: stringList(raw.Recommendations),
	}

	if s, ok := raw.Summary.(string); ok && strings.TrimSpace(s) != "" {
		result.Summary = s
	}

	result.KPIs.Revenue = kpiField(raw.KPIs, "revenue")
	result.KPIs.Expenses = kpiField(raw.KPIs, "expenses")
	result.KPIs.NetProfit = kpiField(raw.KPIs, "netProfit")
	result.KPIs.GrowthRate = kpiField(raw.KPIs, "growthRate")
	result.KPIs.TotalAssets = kpiField(raw.KPIs, "totalAssets")
	result.KPIs.TotalLiabilities = kpiField(raw.KPIs, "totalLiabilities")
	result.KPIs.CashFlow = kpiField(raw.KPIs, "cashFlow")
	result.KPIs.DebtToEquityRatio = kpiField(raw.KPIs, "debtToEquityRatio")
	result.KPIs.ReturnOnInvestment = kpiField(raw.KPIs, "returnOnInvestment")
	result.KPIs.ProfitMargin = kpiField(raw.KPIs, "profitMargin")

	return result
}

// kpiField extracts a display string from the raw kpis map, defaulting to
// "N/A". Numeric values are formatted as-is since some models ignore the
// string instruction.
func kpiField(kpis map[string]interface{}, key string) string {
	if kpis == nil {
		return KPIUnavailable
	}
	switch v := kpis[key].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return KPIUnavailable
		}
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return KPIUnavailable
	}
}

// stringList coerces a raw value into a string slice, defaulting to an empty
// list when the value is absent or not list-typed.
func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
