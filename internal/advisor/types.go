package advisor

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrMalformedReply = errors.New("malformed upstream reply")
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel canonicalises a risk label, ignoring case and surrounding space.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, true
	case "medium":
		return RiskMedium, true
	case "high":
		return RiskHigh, true
	default:
		return "", false
	}
}

type EligibilityRequest struct {
	LoanType      string          `json:"loanType"`
	Amount        decimal.Decimal `json:"amount"`
	Income        decimal.Decimal `json:"income"`
	CreditScore   int             `json:"creditScore"`
	Employment    string          `json:"employment"`
	ExistingLoans bool            `json:"existingLoans"`
}

type EligibilityAnalysis struct {
	ApprovalProbability int       `json:"approvalProbability"`
	RiskLevel           RiskLevel `json:"riskLevel"`
	Recommendations     string    `json:"recommendations"`
	SuitableBanks       []string  `json:"suitableBanks"`
}

type RecommendationRequest struct {
	Purpose     string          `json:"purpose"`
	Income      decimal.Decimal `json:"income"`
	CreditScore int             `json:"creditScore"`
}

type LoanRecommendation struct {
	LoanType    string   `json:"loanType"`
	Reason      string   `json:"reason"`
	AmountRange string   `json:"amountRange"`
	Benefits    []string `json:"benefits"`
}

// EligibilityPayload is the wire form of an eligibility check. Pointer fields
// let Validate tell a missing credit score apart from a zero one.
type EligibilityPayload struct {
	LoanType      string           `json:"loanType"`
	Amount        *decimal.Decimal `json:"amount"`
	Income        *decimal.Decimal `json:"income"`
	CreditScore   *int             `json:"creditScore"`
	Employment    string           `json:"employment"`
	ExistingLoans bool             `json:"existingLoans"`
}

func (p EligibilityPayload) Validate() (EligibilityRequest, error) {
	if p.CreditScore == nil {
		return EligibilityRequest{}, errors.Join(ErrInvalidInput, errors.New("creditScore is required"))
	}
	req := EligibilityRequest{
		LoanType:      p.LoanType,
		CreditScore:   *p.CreditScore,
		Employment:    p.Employment,
		ExistingLoans: p.ExistingLoans,
	}
	if p.Amount != nil {
		req.Amount = *p.Amount
	}
	if p.Income != nil {
		req.Income = *p.Income
	}
	return req, nil
}

type RecommendationPayload struct {
	Purpose     string           `json:"purpose"`
	Income      *decimal.Decimal `json:"income"`
	CreditScore *int             `json:"creditScore"`
}

func (p RecommendationPayload) Validate() (RecommendationRequest, error) {
	if p.CreditScore == nil {
		return RecommendationRequest{}, errors.Join(ErrInvalidInput, errors.New("creditScore is required"))
	}
	req := RecommendationRequest{
		Purpose:     p.Purpose,
		CreditScore: *p.CreditScore,
	}
	if p.Income != nil {
		req.Income = *p.Income
	}
	return req, nil
}
