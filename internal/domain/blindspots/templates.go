package blindspots

import (
	"fmt"
	"strings"
)

// SelectTemplates produces the two blind spot drafts of a run. Drafts carry
// no ID or AnalysisID; those are assigned when the run is persisted.
// The result depends only on the arguments.
func SelectTemplates(industryID string, complianceMode, securityMode bool, industryName string) []*BlindSpot {
	isGaming := strings.Contains(industryID, "gaming") || strings.Contains(industryID, "casino")
	isB2B := industryID == "b2b-aiaas"

	name := industryName
	if name == "" {
		name = "industry"
	}

	first := &BlindSpot{
		Severity:         SeverityCritical,
		Timeline:         "6-12 weeks",
		Effort:           "High",
		Coordinates:      Coordinates{Angle: 15, Radius: 92},
		IndustrySpecific: true,
	}
	switch {
	case isB2B:
		first.Category = CategoryTechnical
		first.RiskScore = 9.6
		first.Title = "Model Hallucination Monitoring"
		first.Description = "High probability of non-deterministic model outputs impacting business critical decisions."
		first.Impact = "Operational errors and loss of user trust"
		first.Recommendation = "Implement human-in-the-loop validation and automated factual checking"
	case isGaming:
		first.Category = CategoryCompliance
		first.RiskScore = 9.4
		first.Title = "Gaming Commission Compliance Framework"
		first.Description = fmt.Sprintf("Critical gaps in regulations for %s", name)
		first.Impact = "High financial and legal risk"
		first.Recommendation = "Implement comprehensive monitoring systems"
	default:
		first.Category = CategorySecurity
		first.RiskScore = 9.1
		first.Title = "Data Protection Framework"
		first.Description = fmt.Sprintf("Critical gaps in regulations for %s", name)
		first.Impact = "High financial and legal risk"
		first.Recommendation = "Implement comprehensive monitoring systems"
	}

	second := &BlindSpot{
		Severity:         SeverityHigh,
		RiskScore:        8.2,
		Timeline:         "3-5 weeks",
		Effort:           "Medium",
		Coordinates:      Coordinates{Angle: 85, Radius: 78},
		IndustrySpecific: true,
	}
	if isB2B {
		second.Category = CategoryCompliance
		second.Title = "AI Data Sovereignty Audit"
		second.Description = "Regional AI data processing regulations (e.g., EU AI Act) not fully addressed."
		second.Impact = "Fines up to 6% of global turnover"
		second.Recommendation = "Set up regional model instances and data residency controls"
	} else {
		second.Category = CategoryMarket
		second.Title = "Competitive Intelligence Gap"
		second.Description = fmt.Sprintf("Missing systematic competitor monitoring in %s", name)
		second.Impact = "Market share erosion"
		second.Recommendation = "Deploy automated tracking"
	}

	return []*BlindSpot{first, second}
}
