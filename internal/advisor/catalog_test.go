package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	c, err := LoadCatalog(catalogYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"HDFC Bank", "SBI", "ICICI Bank"}, c.DefaultBanks)
	assert.NotEmpty(t, c.Products)
	for _, p := range c.Products {
		assert.NotEmpty(t, p.LoanType)
		assert.NotEmpty(t, p.Benefits, p.LoanType)
	}
}

func TestLoadCatalogRejectsEmpty(t *testing.T) {
	_, err := LoadCatalog([]byte("products: []\n"))
	assert.Error(t, err)
	_, err = LoadCatalog([]byte("defaultBanks: [SBI]\n"))
	assert.Error(t, err)
}

func TestFallbackRecommendationsPurposeFirst(t *testing.T) {
	recs := FallbackRecommendations(RecommendationRequest{Purpose: "Buying a new car", CreditScore: 720})
	require.Len(t, recs, maxFallbackRecommendations)
	assert.Equal(t, "Car Loan", recs[0].LoanType)
}

func TestFallbackRecommendationsScoreFilter(t *testing.T) {
	recs := FallbackRecommendations(RecommendationRequest{Purpose: "home renovation", CreditScore: 520})
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEqual(t, "Home Loan", r.LoanType)
		assert.NotEqual(t, "Business Loan", r.LoanType)
	}
}

func TestRecommendNeverEmpty(t *testing.T) {
	c := Catalog{
		DefaultBanks: []string{"SBI"},
		Products:     []Product{{LoanType: "Business Loan", MinCreditScore: 800, Benefits: []string{"b"}}},
	}
	recs := c.Recommend(RecommendationRequest{CreditScore: 500})
	require.Len(t, recs, 1)
	assert.Equal(t, "Business Loan", recs[0].LoanType)
}

func TestDefaultBanksIsACopy(t *testing.T) {
	b := DefaultBanks()
	b[0] = "changed"
	assert.Equal(t, "HDFC Bank", DefaultBanks()[0])
}
