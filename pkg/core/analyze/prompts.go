package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"finsight/pkg/core/prompt"
)

// defaultAnalystPersona is used when no prompt library is loaded and the
// caller supplies no custom prompt.
const defaultAnalystPersona = `You are a senior financial analyst. Analyze the following financial document
and produce a concise, factual assessment. Focus on profitability, growth,
leverage and cash flow. Do not speculate beyond what the document supports.`

// schemaInstruction pins the output contract. Any KPI the document does not
// support must be the literal string "N/A" rather than an invented value.
const schemaInstruction = `Respond with a single JSON object and nothing else. The object must have exactly these keys:
{
  "summary": "<2-4 sentence summary of the document>",
  "kpis": {
    "revenue": "<formatted value or \"N/A\">",
    "expenses": "<formatted value or \"N/A\">",
    "netProfit": "<formatted value or \"N/A\">",
    "growthRate": "<formatted value or \"N/A\">",
    "totalAssets": "<formatted value or \"N/A\">",
    "totalLiabilities": "<formatted value or \"N/A\">",
    "cashFlow": "<formatted value or \"N/A\">",
    "debtToEquityRatio": "<formatted value or \"N/A\">",
    "returnOnInvestment": "<formatted value or \"N/A\">",
    "profitMargin": "<formatted value or \"N/A\">"
  },
  "risks": ["<risk>", ...],
  "opportunities": ["<opportunity>", ...],
  "recommendations": ["<recommendation>", ...]
}
Rules:
1. Use the literal string "N/A" for any KPI not derivable from the document. Never invent values.
2. Keep KPI values formatted as they appear in the document (e.g. "$1.2M", "15%").
3. Return ONLY the JSON object, no markdown fences or commentary.`

// maxExcerptLen bounds how much of the original document rides along with a
// chat question.
const maxExcerptLen = 2000

// buildAnalysisPrompt assembles the extraction prompt. The persona (custom,
// library or default) travels as the system prompt so providers can adapt it;
// the user prompt carries the file name, document text and schema instruction.
func buildAnalysisPrompt(text, fileName, customPrompt string) (systemPrompt, userPrompt string) {
	persona := customPrompt
	if persona == "" {
		if p, err := prompt.GetAnalysisPrompt(); err == nil && p != "" {
			persona = p
		} else {
			persona = defaultAnalystPersona
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document: %s\n\n", fileName))
	sb.WriteString(text)
	sb.WriteString("\n\n")
	sb.WriteString(schemaInstruction)
	return persona, sb.String()
}

// buildChatPrompt embeds the prior analysis context and an optional excerpt
// of the original document into a conversational prompt.
func buildChatPrompt(message string, analysisCtx *AnalysisResult, reportExcerpt string) (systemPrompt, userPrompt string) {
	persona := "You are a financial analysis assistant answering questions about a previously analyzed document."
	if p, err := prompt.GetChatPrompt(); err == nil && p != "" {
		persona = p
	}

	var sb strings.Builder
	if analysisCtx != nil {
		sb.WriteString("Analysis context:\n")
		sb.WriteString(fmt.Sprintf("Summary: %s\n", analysisCtx.Summary))
		sb.WriteString(fmt.Sprintf("Revenue: %s, Net Profit: %s, Growth Rate: %s, Cash Flow: %s\n",
			analysisCtx.KPIs.Revenue, analysisCtx.KPIs.NetProfit, analysisCtx.KPIs.GrowthRate, analysisCtx.KPIs.CashFlow))
		if len(analysisCtx.Risks) > 0 {
			sb.WriteString(fmt.Sprintf("Risks: %s\n", strings.Join(analysisCtx.Risks, "; ")))
		}
		if len(analysisCtx.Opportunities) > 0 {
			sb.WriteString(fmt.Sprintf("Opportunities: %s\n", strings.Join(analysisCtx.Opportunities, "; ")))
		}
		sb.WriteString("\n")
	}

	if reportExcerpt != "" {
		sb.WriteString("Document excerpt:\n")
		sb.WriteString(truncateOnRune(reportExcerpt, maxExcerptLen))
		sb.WriteString("\n\n")
	}

	sb.WriteString("User question: ")
	sb.WriteString(message)
	return persona, sb.String()
}

// truncateOnRune cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateOnRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
