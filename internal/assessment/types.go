package assessment

import "fmt"

type Tier string

const (
	TierHigh     Tier = "HIGH"
	TierModerate Tier = "MODERATE"
	TierLow      Tier = "LOW"
)

// Tier boundaries are inclusive on the lower edge: 0.70 is HIGH, 0.40 is MODERATE.
const (
	HighRiskThreshold     = 0.70
	ModerateRiskThreshold = 0.40
)

// ClassifyTier maps a dropout probability to its risk tier.
func ClassifyTier(p float64) Tier {
	switch {
	case p >= HighRiskThreshold:
		return TierHigh
	case p >= ModerateRiskThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// Finding is one triggered risk or protective rule.
type Finding struct {
	Attribute string      `json:"attribute"`
	Value     interface{} `json:"value"`
	Label     string      `json:"label"`
	Detail    string      `json:"detail"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Label, f.Detail)
}

// Findings is an ordered list of findings. When no rule fired, None is set and
// Message carries the text to show in place of the list.
type Findings struct {
	Items   []Finding `json:"items"`
	None    bool      `json:"none"`
	Message string    `json:"message,omitempty"`
}

func (f Findings) Len() int { return len(f.Items) }

type Axis string

const (
	AxisAcademic   Axis = "Academic"
	AxisFinancial  Axis = "Financial"
	AxisEngagement Axis = "Engagement"
	AxisPersonal   Axis = "Personal"
	AxisSupport    Axis = "Support"
)

// Axes is the display order of the risk profile.
var Axes = []Axis{AxisAcademic, AxisFinancial, AxisEngagement, AxisPersonal, AxisSupport}

const (
	MinAxisScore = 0
	MaxAxisScore = 100
)

// AxisScores holds one score in [0,100] per axis; higher means more risk.
type AxisScores map[Axis]int

type Action struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Plan is the static intervention template for a tier.
type Plan struct {
	Tier          Tier     `json:"tier"`
	Headline      string   `json:"headline"`
	Section       string   `json:"section"`
	Actions       []Action `json:"actions"`
	FollowUpLabel string   `json:"followUpLabel"`
	FollowUp      string   `json:"followUp"`
}

// Assessment is the full engine output for one (record, probability) pair.
// It carries no timestamps or identifiers.
type Assessment struct {
	Probability       float64    `json:"probability"`
	Tier              Tier       `json:"riskTier"`
	RiskFactors       Findings   `json:"riskFactors"`
	ProtectiveFactors Findings   `json:"protectiveFactors"`
	AxisScores        AxisScores `json:"axisScores"`
	Plan              Plan       `json:"interventionPlan"`
}

// RequiresIntervention reports whether the advising team should be alerted.
func (a Assessment) RequiresIntervention() bool {
	return a.Tier == TierHigh || a.Tier == TierModerate
}
