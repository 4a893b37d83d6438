package documents

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		result   *AnalyzeResult
		validate func(t *testing.T, out Extraction)
	}{
		{
			name:   "nil result",
			result: nil,
			validate: func(t *testing.T, out Extraction) {
				assert.Equal(t, 0, out.Pages)
				assert.Equal(t, "", out.Text)
				assert.NotNil(t, out.KeyValuePairs)
				assert.Empty(t, out.KeyValuePairs)
				assert.NotNil(t, out.Tables)
				assert.Empty(t, out.Tables)
			},
		},
		{
			name:   "pages and first ten pairs in order",
			result: resultWith(3, 12),
			validate: func(t *testing.T, out Extraction) {
				assert.Equal(t, 3, out.Pages)
				require.Len(t, out.KeyValuePairs, 10)
				for i, kv := range out.KeyValuePairs {
					assert.Equal(t, fmt.Sprintf("key-%d", i), kv.Key)
					assert.Equal(t, fmt.Sprintf("value-%d", i), kv.Value)
					assert.InDelta(t, float64(i)/20, kv.Confidence, 1e-9)
				}
			},
		},
		{
			name:   "fewer than ten pairs kept as is",
			result: resultWith(1, 4),
			validate: func(t *testing.T, out Extraction) {
				assert.Equal(t, 1, out.Pages)
				assert.Len(t, out.KeyValuePairs, 4)
			},
		},
		{
			name:   "long text truncated to exactly 1000 characters",
			result: &AnalyzeResult{Content: strings.Repeat("x", 2500)},
			validate: func(t *testing.T, out Extraction) {
				assert.Equal(t, 1000, len([]rune(out.Text)))
				assert.Equal(t, strings.Repeat("x", 1000), out.Text)
			},
		},
		{
			name:   "short text untouched",
			result: &AnalyzeResult{Content: "Salary Slip\nNet Pay: ₹54,000"},
			validate: func(t *testing.T, out Extraction) {
				assert.Equal(t, "Salary Slip\nNet Pay: ₹54,000", out.Text)
			},
		},
		{
			name: "missing sub-fields default",
			result: &AnalyzeResult{KeyValuePairs: []DocumentKeyValue{
				{Key: &DocumentElement{Content: "PAN"}},
				{Value: &DocumentElement{Content: "ABCDE1234F"}, Confidence: ptr(0.4)},
				{},
			}},
			validate: func(t *testing.T, out Extraction) {
				require.Len(t, out.KeyValuePairs, 3)
				assert.Equal(t, KeyValuePair{Key: "PAN"}, out.KeyValuePairs[0])
				assert.Equal(t, KeyValuePair{Value: "ABCDE1234F", Confidence: 0.4}, out.KeyValuePairs[1])
				assert.Equal(t, KeyValuePair{}, out.KeyValuePairs[2])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Extract(tt.result, "application/pdf")
			assert.Equal(t, "application/pdf", out.DocumentType)
			tt.validate(t, out)
		})
	}
}

func resultWith(pages, pairs int) *AnalyzeResult {
	r := &AnalyzeResult{Content: "text"}
	for i := 0; i < pages; i++ {
		r.Pages = append(r.Pages, Page{PageNumber: i + 1})
	}
	for i := 0; i < pairs; i++ {
		r.KeyValuePairs = append(r.KeyValuePairs, DocumentKeyValue{
			Key:        &DocumentElement{Content: fmt.Sprintf("key-%d", i)},
			Value:      &DocumentElement{Content: fmt.Sprintf("value-%d", i)},
			Confidence: ptr(float64(i) / 20),
		})
	}
	return r
}
