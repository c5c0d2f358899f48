package extract

import (
	"fmt"
	"strings"
	"time"
)

// maxCSVRows caps how many data rows the transcript carries. Financial CSVs
// from accounting exports can run to tens of thousands of rows; the model
// only needs a representative slice.
const maxCSVRows = 100

// parseCSV treats the first non-empty line as headers and emits at most
// maxCSVRows data rows verbatim. Cells are pipe-joined; no type coercion.
func parseCSV(data []byte, fileName string) (*ParsedFileContent, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var headers string
	var rows []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headers == "" {
			headers = line
			continue
		}
		rows = append(rows, line)
	}

	if headers == "" {
		return nil, newParseError(fileName, fmt.Errorf("csv contains no data"))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CSV File: %s\n", fileName))
	sb.WriteString(fmt.Sprintf("Headers: %s\n\n", pipeJoin(headers)))

	emitted := len(rows)
	if emitted > maxCSVRows {
		emitted = maxCSVRows
	}
	for i := 0; i < emitted; i++ {
		sb.WriteString(fmt.Sprintf("Row %d: %s\n", i+1, pipeJoin(rows[i])))
	}
	if len(rows) > maxCSVRows {
		sb.WriteString(fmt.Sprintf("\n[Truncated: showing first %d of %d rows]\n", maxCSVRows, len(rows)))
	}

	return &ParsedFileContent{
		Text: sb.String(),
		Metadata: FileMetadata{
			FileName:    fileName,
			FileType:    TypeCSV,
			ExtractedAt: time.Now(),
		},
	}, nil
}

// pipeJoin rewrites a comma-separated line as " | " separated cells, keeping
// the cell content untouched.
func pipeJoin(line string) string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return strings.Join(cells, " | ")
}
