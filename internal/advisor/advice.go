package advisor

import (
	"strings"

	"github.com/shopspring/decimal"
)

var fiveTimes = decimal.NewFromInt(5)

// HeuristicAdvice writes the recommendations narrative used when no chat reply
// is available at all.
func HeuristicAdvice(req EligibilityRequest) string {
	tips := make([]string, 0, 4)
	switch Classify(req.CreditScore).RiskLevel {
	case RiskHigh:
		tips = append(tips, "Improve your credit score above 650 by paying all EMIs and card bills on time before applying.")
	case RiskMedium:
		tips = append(tips, "A credit score above 700 will unlock better interest rates; keep credit utilisation below 30%.")
	default:
		tips = append(tips, "Your credit score is strong; compare offers from several lenders to negotiate the best rate.")
	}
	if req.ExistingLoans {
		tips = append(tips, "Reduce or close existing loans to lower your debt-to-income ratio.")
	}
	if !req.Income.IsZero() && req.Amount.GreaterThan(req.Income.Mul(fiveTimes)) {
		tips = append(tips, "The requested amount is high relative to your income; consider a smaller amount or adding a co-applicant.")
	}
	if strings.EqualFold(strings.TrimSpace(req.Employment), "self-employed") {
		tips = append(tips, "Keep at least two years of ITR filings and bank statements ready as income proof.")
	}
	return strings.Join(tips, " ")
}
