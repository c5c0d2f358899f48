package dashboard

import (
	"fmt"

	"github.com/google/uuid"

	"finsight/pkg/core/analyze"
)

// Generate derives the chart datasets and insights for one analysis.
// Deterministic; charts appear in a fixed order.
func Generate(analysis *analyze.AnalysisResult) *Dashboard {
	return &Dashboard{
		ChartData: deriveCharts(analysis),
		Insights:  deriveInsights(analysis),
	}
}

func deriveCharts(analysis *analyze.AnalysisResult) []ChartData {
	kpis := analysis.KPIs
	charts := make([]ChartData, 0, 4)

	// 1. Financial Overview: always emitted
	overview := ChartData{
		Type:     ChartBar,
		Title:    "Financial Overview",
		XAxisKey: "category",
		DataKey:  "value",
	}
	for _, entry := range []struct {
		category  string
		formatted string
	}{
		{"Revenue", kpis.Revenue},
		{"Expenses", kpis.Expenses},
		{"Net Profit", kpis.NetProfit},
	} {
		value := 0.0
		if v := ExtractNumeric(entry.formatted); v != nil {
			value = *v
		}
		overview.Data = append(overview.Data, ChartPoint{
			Category:  entry.category,
			Value:     value,
			Formatted: entry.formatted,
		})
	}
	charts = append(charts, overview)

	// 2. Balance Sheet Composition: only with real asset/liability figures
	assets := ExtractNumeric(kpis.TotalAssets)
	liabilities := ExtractNumeric(kpis.TotalLiabilities)
	if assets != nil && liabilities != nil && *assets > 0 {
		equity := *assets - *liabilities
		if equity < 0 {
			equity = 0
		}
		charts = append(charts, ChartData{
			Type:    ChartPie,
			Title:   "Balance Sheet Composition",
			DataKey: "value",
			Data: []ChartPoint{
				{Name: "Assets", Value: *assets, Formatted: kpis.TotalAssets},
				{Name: "Liabilities", Value: *liabilities, Formatted: kpis.TotalLiabilities},
				{Name: "Equity", Value: equity},
			},
		})
	}

	// 3. Performance Metrics: include only non-null entries, omit when empty
	performance := ChartData{
		Type:     ChartArea,
		Title:    "Performance Metrics",
		XAxisKey: "metric",
		DataKey:  "value",
	}
	for _, entry := range []struct {
		metric    string
		formatted string
	}{
		{"Growth Rate", kpis.GrowthRate},
		{"Profit Margin", kpis.ProfitMargin},
		{"ROI", kpis.ReturnOnInvestment},
	} {
		if v := ExtractNumeric(entry.formatted); v != nil {
			performance.Data = append(performance.Data, ChartPoint{
				Metric:    entry.metric,
				Value:     *v,
				Formatted: entry.formatted,
			})
		}
	}
	if len(performance.Data) > 0 {
		charts = append(charts, performance)
	}

	// 4. Risk vs Opportunity: counts, not content; always emitted
	charts = append(charts, ChartData{
		Type:     ChartBar,
		Title:    "Risk vs Opportunity Analysis",
		XAxisKey: "category",
		DataKey:  "value",
		Data: []ChartPoint{
			{Category: "Risks", Value: float64(len(analysis.Risks))},
			{Category: "Opportunities", Value: float64(len(analysis.Opportunities))},
			{Category: "Recommendations", Value: float64(len(analysis.Recommendations))},
		},
	})

	return charts
}

func deriveInsights(analysis *analyze.AnalysisResult) []Insight {
	kpis := analysis.KPIs
	insights := make([]Insight, 0, 6)

	// Name-based IDs keep generation deterministic: the same analysis always
	// yields structurally identical output.
	add := func(title, description, insightType, importance string) {
		insights = append(insights, Insight{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("insight:"+title)).String(),
			Title:       title,
			Description: description,
			Type:        insightType,
			Importance:  importance,
		})
	}

	// Profitability
	if netProfit := ExtractNumeric(kpis.NetProfit); netProfit != nil {
		insightType := InsightNegative
		if *netProfit > 0 {
			insightType = InsightPositive
		}
		add("Profitability",
			fmt.Sprintf("Net profit of %s reported for the period.", kpis.NetProfit),
			insightType, ImportanceHigh)
	}

	// Growth
	if growth := ExtractNumeric(kpis.GrowthRate); growth != nil {
		insightType := InsightNeutral
		switch {
		case *growth > 5:
			insightType = InsightPositive
		case *growth < 0:
			insightType = InsightNegative
		}
		add("Growth",
			fmt.Sprintf("Growth rate of %s indicates the current trajectory.", kpis.GrowthRate),
			insightType, ImportanceHigh)
	}

	// Cash flow
	if cashFlow := ExtractNumeric(kpis.CashFlow); cashFlow != nil {
		insightType := InsightNegative
		if *cashFlow > 0 {
			insightType = InsightPositive
		}
		add("Cash Flow",
			fmt.Sprintf("Reported cash flow of %s.", kpis.CashFlow),
			insightType, ImportanceHigh)
	}

	// Risk assessment
	if riskCount := len(analysis.Risks); riskCount > 0 {
		insightType := InsightNeutral
		importance := ImportanceMedium
		if riskCount > 3 {
			insightType = InsightNegative
			importance = ImportanceHigh
		}
		add("Risk Assessment",
			fmt.Sprintf("%d risk factors identified in the document.", riskCount),
			insightType, importance)
	}

	// Opportunities
	if oppCount := len(analysis.Opportunities); oppCount > 0 {
		add("Opportunities",
			fmt.Sprintf("%d growth opportunities identified.", oppCount),
			InsightPositive, ImportanceMedium)
	}

	// Leverage
	if ratio := ExtractNumeric(kpis.DebtToEquityRatio); ratio != nil {
		insightType := InsightPositive
		importance := ImportanceMedium
		switch {
		case *ratio > 1.5:
			insightType = InsightNegative
			importance = ImportanceHigh
		case *ratio > 1:
			insightType = InsightNeutral
		}
		add("Leverage",
			fmt.Sprintf("Debt-to-equity ratio of %s.", kpis.DebtToEquityRatio),
			insightType, importance)
	}

	return insights
}
