package extract

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// maxRowsPerSheet caps the transcript contribution of each worksheet.
const maxRowsPerSheet = 50

// parseExcel opens the workbook, enumerates all sheets and emits at most the
// first maxRowsPerSheet rows per sheet as pipe-joined text, accumulated into
// one blob with sheet-name headers.
func parseExcel(data []byte, fileName string) (*ParsedFileContent, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newParseError(fileName, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, newParseError(fileName, fmt.Errorf("workbook contains no sheets"))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Excel File: %s\n", fileName))

	for i, sheet := range sheets {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, newParseError(fileName, fmt.Errorf("failed to read sheet %q: %w", sheet, err))
		}

		sb.WriteString(fmt.Sprintf("\nSheet %d: %s\n", i+1, sheet))

		emitted := len(rows)
		if emitted > maxRowsPerSheet {
			emitted = maxRowsPerSheet
		}
		for j := 0; j < emitted; j++ {
			sb.WriteString(fmt.Sprintf("Row %d: %s\n", j+1, strings.Join(rows[j], " | ")))
		}
		if len(rows) > maxRowsPerSheet {
			sb.WriteString(fmt.Sprintf("[Truncated: showing first %d of %d rows]\n", maxRowsPerSheet, len(rows)))
		}
	}

	return &ParsedFileContent{
		Text: sb.String(),
		Metadata: FileMetadata{
			FileName:    fileName,
			FileType:    TypeExcel,
			SheetCount:  len(sheets),
			ExtractedAt: time.Now(),
		},
	}, nil
}
