package advisor

// Classification is the score-only fallback used whenever the AI path is unavailable.
type Classification struct {
	ApprovalProbability int       `json:"approvalProbability"`
	RiskLevel           RiskLevel `json:"riskLevel"`
}

// Classify maps a credit score to an approval probability and risk tier.
//
// Probability and risk use independent cut points:
//
//	probability: >=750 -> 90, >=700 -> 75, >=650 -> 55, else 35
//	risk:        >=700 -> Low, >=600 -> Medium, else High
func Classify(score int) Classification {
	var c Classification
	switch {
	case score >= 750:
		c.ApprovalProbability = 90
	case score >= 700:
		c.ApprovalProbability = 75
	case score >= 650:
		c.ApprovalProbability = 55
	default:
		c.ApprovalProbability = 35
	}
	switch {
	case score >= 700:
		c.RiskLevel = RiskLow
	case score >= 600:
		c.RiskLevel = RiskMedium
	default:
		c.RiskLevel = RiskHigh
	}
	return c
}

// FallbackAnalysis builds a complete analysis from the heuristic alone.
func FallbackAnalysis(req EligibilityRequest, recommendations string) EligibilityAnalysis {
	c := Classify(req.CreditScore)
	return EligibilityAnalysis{
		ApprovalProbability: c.ApprovalProbability,
		RiskLevel:           c.RiskLevel,
		Recommendations:     recommendations,
		SuitableBanks:       DefaultBanks(),
	}
}
