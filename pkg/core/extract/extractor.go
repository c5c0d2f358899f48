// Package extract converts uploaded financial documents (PDF, Excel, CSV)
// into a bounded plain-text transcript suitable for prompting an LLM.
// Extraction is a pure transform over bytes: no network, no storage.
package extract

import (
	"errors"
	"fmt"
	"time"
)

// Supported declared file types.
const (
	TypePDF   = "pdf"
	TypeExcel = "excel"
	TypeCSV   = "csv"
)

// ErrUnsupportedType is returned when the declared type is not pdf/excel/csv.
var ErrUnsupportedType = errors.New("unsupported file type")

// ParseError wraps the underlying cause of an extraction failure.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(fileName string, err error) *ParseError {
	return &ParseError{FileName: fileName, Err: err}
}

// FileMetadata describes the source document of a transcript.
type FileMetadata struct {
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	PageCount   int       `json:"page_count,omitempty"`
	SheetCount  int       `json:"sheet_count,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// ParsedFileContent is the immutable result of extraction, consumed exactly
// once by the analysis prompt contract.
type ParsedFileContent struct {
	Text     string       `json:"text"`
	Metadata FileMetadata `json:"metadata"`
}

// Parse extracts text from the given file bytes according to the declared
// type. Fails with ErrUnsupportedType for unknown types and *ParseError on
// any format failure.
func Parse(data []byte, fileName, declaredType string) (*ParsedFileContent, error) {
	switch declaredType {
	case TypeCSV:
		return parseCSV(data, fileName)
	case TypeExcel:
		return parseExcel(data, fileName)
	case TypePDF:
		return parsePDF(data, fileName)
	default:
		return nil, fmt.Errorf("%w: %q (expected pdf, excel or csv)", ErrUnsupportedType, declaredType)
	}
}
