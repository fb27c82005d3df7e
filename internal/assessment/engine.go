package assessment

import "retention-workers/internal/models"

// Assess runs the full rule set over a record and its dropout probability.
// It is pure: identical inputs always produce identical assessments.
// p is expected in [0,1]; callers validate it at the boundary.
func Assess(record models.Record, p float64) Assessment {
	tier := ClassifyTier(p)
	return Assessment{
		Probability:       p,
		Tier:              tier,
		RiskFactors:       ExtractRiskFactors(record),
		ProtectiveFactors: ExtractProtectiveFactors(record),
		AxisScores:        ScoreAxes(record),
		Plan:              SelectPlan(tier),
	}
}

func ExtractRiskFactors(record models.Record) Findings {
	return extract(riskFactorRules, record, NoRiskFactorsMessage)
}

func ExtractProtectiveFactors(record models.Record) Findings {
	return extract(protectiveFactorRules, record, NoProtectiveFactorsMessage)
}

func extract(rules []factorRule, record models.Record, emptyMessage string) Findings {
	items := make([]Finding, 0, len(rules))
	for _, rule := range rules {
		if !rule.holds(record) {
			continue
		}
		items = append(items, Finding{
			Attribute: rule.attribute,
			Value:     rule.value(record),
			Label:     rule.label,
			Detail:    rule.detail(record),
		})
	}

	if len(items) == 0 {
		return Findings{Items: items, None: true, Message: emptyMessage}
	}
	return Findings{Items: items}
}

// ScoreAxes accumulates every axis from its base and clamps the total once.
func ScoreAxes(record models.Record) AxisScores {
	scores := make(AxisScores, len(axisSpecs))
	for _, spec := range axisSpecs {
		total := spec.base
		for _, rule := range spec.rules {
			if rule.holds(record) {
				total += rule.weight
			}
		}
		scores[spec.axis] = clamp(total, MinAxisScore, MaxAxisScore)
	}
	return scores
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
