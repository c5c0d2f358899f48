package extract

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// maxPDFTextLen keeps the transcript under the prompt budget.
const maxPDFTextLen = 90000

// parsePDF extracts embedded text page by page. A document with no
// extractable text (e.g. a scanned image PDF) fails with *ParseError rather
// than producing an empty transcript.
func parsePDF(data []byte, fileName string) (*ParsedFileContent, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, newParseError(fileName, fmt.Errorf("failed to open PDF: %w", err))
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages may fail to parse; keep going
			continue
		}

		if text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n---\n\n") // Page separator
			}
			sb.WriteString(text)
		}
		if sb.Len() > maxPDFTextLen {
			break
		}
	}

	extracted := sb.String()
	if strings.TrimSpace(extracted) == "" {
		return nil, newParseError(fileName, fmt.Errorf("no extractable text in %d-page PDF (scanned document?)", numPages))
	}
	if len(extracted) > maxPDFTextLen {
		extracted = extracted[:maxPDFTextLen] + "\n\n[Truncated]"
	}

	return &ParsedFileContent{
		Text: fmt.Sprintf("PDF File: %s\n\n%s", fileName, extracted),
		Metadata: FileMetadata{
			FileName:    fileName,
			FileType:    TypePDF,
			PageCount:   numPages,
			ExtractedAt: time.Now(),
		},
	}, nil
}
