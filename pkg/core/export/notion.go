package export

import (
	"encoding/json"
	"fmt"

	"finsight/pkg/core/utils"
)

// notionBlock is a flat Notion-style content block.
type notionBlock struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// renderNotion produces a flat JSON block representation suitable for import
// into Notion-like tools.
func renderNotion(data *ExportData) (*Artifact, error) {
	blocks := []notionBlock{
		{Type: "heading_1", Content: data.Title},
		{Type: "paragraph", Content: "Generated " + data.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{Type: "heading_2", Content: "Summary"},
		{Type: "paragraph", Content: utils.MarkdownToPlain(data.Summary)},
		{Type: "heading_2", Content: "Key Performance Indicators"},
	}

	for _, row := range kpiRows(data.KPIs) {
		blocks = append(blocks, notionBlock{
			Type:    "bulleted_list_item",
			Content: fmt.Sprintf("%s: %s", row[0], row[1]),
		})
	}

	appendList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		blocks = append(blocks, notionBlock{Type: "heading_2", Content: title})
		for _, item := range items {
			blocks = append(blocks, notionBlock{Type: "bulleted_list_item", Content: item})
		}
	}

	appendList("Risks", data.Risks)
	appendList("Opportunities", data.Opportunities)
	appendList("Recommendations", data.Recommendations)

	if len(data.Insights) > 0 {
		blocks = append(blocks, notionBlock{Type: "heading_2", Content: "Insights"})
		for _, insight := range data.Insights {
			blocks = append(blocks, notionBlock{
				Type:    "bulleted_list_item",
				Content: fmt.Sprintf("%s (%s, %s importance): %s", insight.Title, insight.Type, insight.Importance, insight.Description),
			})
		}
	}

	payload, err := json.MarshalIndent(map[string]interface{}{
		"title":  data.Title,
		"blocks": blocks,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notion export: %w", err)
	}

	return &Artifact{
		Bytes:       payload,
		FileName:    suggestedName(data.Title, ".json"),
		ContentType: "application/json",
	}, nil
}
