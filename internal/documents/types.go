package documents

// Extraction is the bounded summary returned to clients.
type Extraction struct {
	DocumentType  string         `json:"documentType"`
	Pages         int            `json:"pages"`
	Text          string         `json:"text"`
	KeyValuePairs []KeyValuePair `json:"keyValuePairs"`
	Tables        []Table        `json:"tables"`
}

type KeyValuePair struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Table is reserved; table extraction is not implemented and the list is
// always empty.
type Table struct{}

// AnalyzeResult is the subset of the document-analysis service's
// analyzeResult object that the extractor reads. Every field is optional.
type AnalyzeResult struct {
	APIVersion    string             `json:"apiVersion,omitempty"`
	ModelID       string             `json:"modelId,omitempty"`
	Content       string             `json:"content"`
	Pages         []Page             `json:"pages"`
	KeyValuePairs []DocumentKeyValue `json:"keyValuePairs"`
}

type Page struct {
	PageNumber int     `json:"pageNumber"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

type DocumentKeyValue struct {
	Key        *DocumentElement `json:"key"`
	Value      *DocumentElement `json:"value"`
	Confidence *float64         `json:"confidence"`
}

type DocumentElement struct {
	Content string `json:"content"`
}
