package documents

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"loanwise/internal/util"
)

const (
	MimePDF = "application/pdf"

	PlaceholderText = "Document received, but automated analysis is currently unavailable. Please review the document manually."
)

// Placeholder is the static summary returned when nothing can be read locally.
func Placeholder(mimeType string) Extraction {
	return Extraction{
		DocumentType:  mimeType,
		Pages:         0,
		Text:          PlaceholderText,
		KeyValuePairs: []KeyValuePair{},
		Tables:        []Table{},
	}
}

// Degraded builds the summary used when the analysis service failed. PDFs are
// read locally for page count and text; anything else gets the placeholder.
func Degraded(data []byte, mimeType string) Extraction {
	if !isPDF(data, mimeType) {
		return Placeholder(mimeType)
	}
	out := Placeholder(mimeType)
	pages, text, err := ReadLocal(data)
	if errors.Is(err, util.ErrNoExtractableText) {
		out.Pages = pages
		return out
	}
	if err != nil {
		return out
	}
	out.Pages = pages
	out.Text = util.TruncateRunes(text, MaxTextChars)
	return out
}

// ReadLocal opens PDF bytes in memory and returns the page count and the
// normalized plain text. A scanned PDF with no text layer reports its page
// count alongside ErrNoExtractableText.
func ReadLocal(data []byte) (pages int, text string, err error) {
	defer func() {
		// the PDF reader panics on some malformed inputs
		if r := recover(); r != nil {
			pages, text, err = 0, "", fmt.Errorf("read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return 0, "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, plain); err != nil {
		return 0, "", fmt.Errorf("read extracted text: %w", err)
	}
	text = util.NormalizeText(buf.String())
	if text == "" {
		return r.NumPage(), "", util.ErrNoExtractableText
	}
	return r.NumPage(), text, nil
}

func isPDF(data []byte, mimeType string) bool {
	return strings.EqualFold(mimeType, MimePDF) || bytes.HasPrefix(data, []byte("%PDF-"))
}
