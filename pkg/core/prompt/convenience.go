package prompt

// Convenience functions for common prompt operations

// GetAnalysisPrompt returns the analyst persona system prompt, or an error if
// no prompt library has been loaded. Callers fall back to hardcoded defaults.
func GetAnalysisPrompt() (string, error) {
	return Get().GetSystemPrompt(PromptIDs.AnalysisFinancialDocuments)
}

// GetChatPrompt returns the document Q&A system prompt
func GetChatPrompt() (string, error) {
	return Get().GetSystemPrompt(PromptIDs.ChatDocumentQA)
}

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	AnalysisFinancialDocuments string
	ChatDocumentQA             string
}{
	AnalysisFinancialDocuments: "analysis.financial_documents",
	ChatDocumentQA:             "chat.document_qa",
}
