// Package extraction turns raw utility-invoice documents into normalized
// invoice records using pattern heuristics with layered fallbacks.
package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxTextBytes caps extracted text so a pathological document cannot balloon
// memory use.
const maxTextBytes = 200 * 1024

// TextAnalysis is the decoded plain-text view of a PDF.
type TextAnalysis struct {
	PageCount int
	Text      string
	Lines     []string
}

// DecodeText extracts page-concatenated plain text from a PDF. The pdf
// library panics on some malformed inputs, so the whole decode is
// recover-guarded; callers get an error, never a crash.
func DecodeText(data []byte) (result *TextAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during PDF decode: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF reader: %w", err)
	}

	pages := reader.NumPage()
	if pages < 1 {
		pages = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract plain text: %w", err)
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxTextBytes)))
	if err != nil {
		return nil, fmt.Errorf("read plain text: %w", err)
	}

	result = &TextAnalysis{
		PageCount: pages,
		Text:      string(textBytes),
	}
	for _, line := range strings.Split(result.Text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			result.Lines = append(result.Lines, trimmed)
		}
	}
	return result, nil
}
