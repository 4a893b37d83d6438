package advisor

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed catalog.yaml
var catalogYAML []byte

const maxFallbackRecommendations = 3

type Product struct {
	LoanType       string   `yaml:"loanType"`
	Reason         string   `yaml:"reason"`
	AmountRange    string   `yaml:"amountRange"`
	MinCreditScore int      `yaml:"minCreditScore"`
	Keywords       []string `yaml:"keywords"`
	Benefits       []string `yaml:"benefits"`
}

type Catalog struct {
	DefaultBanks []string  `yaml:"defaultBanks"`
	Products     []Product `yaml:"products"`
}

var defaultCatalog = mustLoadCatalog(catalogYAML)

func LoadCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.DefaultBanks) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no default banks")
	}
	if len(c.Products) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no products")
	}
	return c, nil
}

func mustLoadCatalog(data []byte) Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultBanks returns a fresh copy of the fallback bank list.
func DefaultBanks() []string {
	return slices.Clone(defaultCatalog.DefaultBanks)
}

// FallbackRecommendations picks catalog products for the request without any
// remote call.
func FallbackRecommendations(req RecommendationRequest) []LoanRecommendation {
	return defaultCatalog.Recommend(req)
}

// Recommend orders products matching the purpose first, drops products the
// score does not qualify for, and caps the result. If nothing qualifies the
// score filter is ignored so the list is never empty.
func (c Catalog) Recommend(req RecommendationRequest) []LoanRecommendation {
	purpose := strings.ToLower(req.Purpose)
	var matched, rest []Product
	for _, p := range c.Products {
		if p.matches(purpose) {
			matched = append(matched, p)
		} else {
			rest = append(rest, p)
		}
	}
	ordered := append(matched, rest...)

	eligible := make([]Product, 0, len(ordered))
	for _, p := range ordered {
		if req.CreditScore >= p.MinCreditScore {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		eligible = ordered
	}
	if len(eligible) > maxFallbackRecommendations {
		eligible = eligible[:maxFallbackRecommendations]
	}

	out := make([]LoanRecommendation, 0, len(eligible))
	for _, p := range eligible {
		out = append(out, LoanRecommendation{
			LoanType:    p.LoanType,
			Reason:      p.Reason,
			AmountRange: p.AmountRange,
			Benefits:    slices.Clone(p.Benefits),
		})
	}
	return out
}

func (p Product) matches(purpose string) bool {
	if purpose == "" {
		return false
	}
	if strings.Contains(purpose, strings.ToLower(p.LoanType)) {
		return true
	}
	for _, k := range p.Keywords {
		if strings.Contains(purpose, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
