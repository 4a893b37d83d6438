package advisor

import (
	"fmt"
	"strings"
)

const SystemPrompt = "You are an expert financial advisor specializing in Indian loan products and bank lending criteria. " +
	"Give practical, specific guidance and answer in the exact JSON shape requested."

const eligibilityInstructions = `Provide:
1. Approval probability (0-100)
2. Risk level (Low/Medium/High)
3. Specific recommendations to improve eligibility
4. Suitable banks or lenders for this profile

Respond ONLY with JSON in this format:
{"approvalProbability": 0, "riskLevel": "Low|Medium|High", "recommendations": "string", "suitableBanks": ["string"]}`

const recommendationInstructions = `Recommend the 3 most suitable loan products. For each give:
1. Loan type
2. Why it suits this applicant
3. Typical amount range
4. Key benefits

Respond ONLY with a JSON array in this format:
[{"loanType": "string", "reason": "string", "amountRange": "string", "benefits": ["string"]}]`

// BuildEligibilityPrompt interpolates the request verbatim; nothing is escaped.
func BuildEligibilityPrompt(req EligibilityRequest) string {
	var b strings.Builder
	b.WriteString("Analyze loan eligibility for the following applicant:\n")
	fmt.Fprintf(&b, "- Loan Type: %s\n", req.LoanType)
	fmt.Fprintf(&b, "- Loan Amount: ₹%s\n", req.Amount.String())
	fmt.Fprintf(&b, "- Annual Income: ₹%s\n", req.Income.String())
	fmt.Fprintf(&b, "- Credit Score: %d\n", req.CreditScore)
	fmt.Fprintf(&b, "- Employment Type: %s\n", req.Employment)
	fmt.Fprintf(&b, "- Existing Loans: %s\n\n", yesNo(req.ExistingLoans))
	b.WriteString(eligibilityInstructions)
	return b.String()
}

func BuildRecommendationPrompt(req RecommendationRequest) string {
	var b strings.Builder
	b.WriteString("Suggest suitable loan products for the following applicant:\n")
	fmt.Fprintf(&b, "- Purpose: %s\n", req.Purpose)
	fmt.Fprintf(&b, "- Annual Income: ₹%s\n", req.Income.String())
	fmt.Fprintf(&b, "- Credit Score: %d\n\n", req.CreditScore)
	b.WriteString(recommendationInstructions)
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
