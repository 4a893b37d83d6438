package advisor

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// analysisSchema mirrors EligibilityAnalysis with pointer fields so that
// absent keys are distinguishable from zero values.
type analysisSchema struct {
	ApprovalProbability *float64 `json:"approvalProbability"`
	RiskLevel           *string  `json:"riskLevel"`
	Recommendations     *string  `json:"recommendations"`
	SuitableBanks       []string `json:"suitableBanks"`
}

// ParseAnalysis interprets a chat reply as an eligibility analysis. The
// returned analysis is always fully populated. When the reply does not satisfy
// the schema the analysis comes from the credit heuristic with the raw reply as
// its recommendations narrative, and the error (wrapping ErrMalformedReply)
// says why.
func ParseAnalysis(raw string, req EligibilityRequest) (EligibilityAnalysis, error) {
	analysis, err := DecodeAnalysis(raw)
	if err != nil {
		return FallbackAnalysis(req, raw), err
	}
	return analysis, nil
}

// DecodeAnalysis strictly decodes a chat reply. Errors wrap ErrMalformedReply.
func DecodeAnalysis(raw string) (EligibilityAnalysis, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if body == "" {
		return EligibilityAnalysis{}, fmt.Errorf("%w: empty reply", ErrMalformedReply)
	}
	var s analysisSchema
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		return EligibilityAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if s.ApprovalProbability == nil || s.RiskLevel == nil || s.Recommendations == nil || s.SuitableBanks == nil {
		return EligibilityAnalysis{}, fmt.Errorf("%w: missing required keys", ErrMalformedReply)
	}
	p := *s.ApprovalProbability
	if p != math.Trunc(p) || p < 0 || p > 100 {
		return EligibilityAnalysis{}, fmt.Errorf("%w: approvalProbability %v out of range", ErrMalformedReply, p)
	}
	risk, ok := ParseRiskLevel(*s.RiskLevel)
	if !ok {
		return EligibilityAnalysis{}, fmt.Errorf("%w: unknown riskLevel %q", ErrMalformedReply, *s.RiskLevel)
	}
	if strings.TrimSpace(*s.Recommendations) == "" {
		return EligibilityAnalysis{}, fmt.Errorf("%w: empty recommendations", ErrMalformedReply)
	}
	if len(s.SuitableBanks) == 0 {
		return EligibilityAnalysis{}, fmt.Errorf("%w: no suitableBanks", ErrMalformedReply)
	}
	for _, bank := range s.SuitableBanks {
		if strings.TrimSpace(bank) == "" {
			return EligibilityAnalysis{}, fmt.Errorf("%w: blank bank name", ErrMalformedReply)
		}
	}
	return EligibilityAnalysis{
		ApprovalProbability: int(p),
		RiskLevel:           risk,
		Recommendations:     *s.Recommendations,
		SuitableBanks:       s.SuitableBanks,
	}, nil
}

// ParseRecommendations decodes a chat reply as a list of loan recommendations.
func ParseRecommendations(raw string) ([]LoanRecommendation, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedReply)
	}
	var items []struct {
		LoanType    *string  `json:"loanType"`
		Reason      *string  `json:"reason"`
		AmountRange *string  `json:"amountRange"`
		Benefits    []string `json:"benefits"`
	}
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no recommendations", ErrMalformedReply)
	}
	out := make([]LoanRecommendation, 0, len(items))
	for i, it := range items {
		if blank(it.LoanType) || blank(it.Reason) || blank(it.AmountRange) {
			return nil, fmt.Errorf("%w: recommendation %d is incomplete", ErrMalformedReply, i)
		}
		benefits := it.Benefits
		if benefits == nil {
			benefits = []string{}
		}
		out = append(out, LoanRecommendation{
			LoanType:    *it.LoanType,
			Reason:      *it.Reason,
			AmountRange: *it.AmountRange,
			Benefits:    benefits,
		})
	}
	return out, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// stripCodeFence returns the content of the first Markdown code fence in s,
// dropping any language tag and text around the fence. Replies without a
// fence are returned trimmed.
func stripCodeFence(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return strings.TrimSpace(s)
	}
	body := s[start+3:]
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(strings.TrimLeftFunc(body, isFenceTagRune))
}

func isFenceTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
