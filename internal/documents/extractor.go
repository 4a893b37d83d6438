package documents

import "loanwise/internal/util"

const (
	MaxTextChars     = 1000
	MaxKeyValuePairs = 10
)

// Extract maps an analysis result into the bounded client summary. It assumes
// the upstream call already succeeded; a nil result yields an empty summary.
func Extract(result *AnalyzeResult, mimeType string) Extraction {
	out := Extraction{
		DocumentType:  mimeType,
		KeyValuePairs: []KeyValuePair{},
		Tables:        []Table{},
	}
	if result == nil {
		return out
	}
	out.Pages = len(result.Pages)
	out.Text = util.TruncateRunes(result.Content, MaxTextChars)

	pairs := result.KeyValuePairs
	if len(pairs) > MaxKeyValuePairs {
		pairs = pairs[:MaxKeyValuePairs]
	}
	for _, kv := range pairs {
		p := KeyValuePair{}
		if kv.Key != nil {
			p.Key = kv.Key.Content
		}
		if kv.Value != nil {
			p.Value = kv.Value.Content
		}
		if kv.Confidence != nil {
			p.Confidence = *kv.Confidence
		}
		out.KeyValuePairs = append(out.KeyValuePairs, p)
	}
	return out
}
