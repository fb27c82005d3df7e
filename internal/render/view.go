package render

import (
	"fmt"

	"retention-workers/internal/assessment"
	"retention-workers/internal/models"
)

const RadarTitle = "Risk Profile (0=Low Risk, 100=High Risk)"

type tierStyle struct {
	banner string
	color  string
}

var tierStyles = map[assessment.Tier]tierStyle{
	assessment.TierHigh:     {banner: "HIGH RISK", color: "#F44336"},
	assessment.TierModerate: {banner: "MODERATE RISK", color: "#FF9800"},
	assessment.TierLow:      {banner: "LOW RISK", color: "#4CAF50"},
}

type RadarPoint struct {
	Axis  assessment.Axis `json:"axis"`
	Score int             `json:"score"`
}

// Radar is the five-axis chart data. Points follow assessment.Axes order.
type Radar struct {
	Title  string       `json:"title"`
	Min    int          `json:"min"`
	Max    int          `json:"max"`
	Points []RadarPoint `json:"points"`
}

// View is a render-neutral projection of an Assessment. The API returns it as
// JSON and the terminal renderer draws it.
type View struct {
	Banner            string          `json:"banner"`
	Probability       string          `json:"probability"`
	Color             string          `json:"color"`
	CGPA              float64         `json:"cgpa"`
	CGPAClass         string          `json:"cgpaClass"`
	RiskFactors       []string        `json:"riskFactors"`
	RiskMessage       string          `json:"riskMessage,omitempty"`
	ProtectiveFactors []string        `json:"protectiveFactors"`
	ProtectiveMessage string          `json:"protectiveMessage,omitempty"`
	Plan              assessment.Plan `json:"plan"`
	Radar             Radar           `json:"radar"`
	Contacts          Contacts        `json:"contacts"`
}

func NewView(a assessment.Assessment, record models.Record) View {
	style, ok := tierStyles[a.Tier]
	if !ok {
		style = tierStyles[assessment.TierLow]
	}

	return View{
		Banner:            style.banner,
		Probability:       FormatProbability(a.Probability),
		Color:             style.color,
		CGPA:              record.CurrentCGPA,
		CGPAClass:         models.CGPAClass(record.CurrentCGPA),
		RiskFactors:       lines(a.RiskFactors),
		RiskMessage:       a.RiskFactors.Message,
		ProtectiveFactors: lines(a.ProtectiveFactors),
		ProtectiveMessage: a.ProtectiveFactors.Message,
		Plan:              a.Plan,
		Radar:             newRadar(a.AxisScores),
		Contacts:          SupportContacts(),
	}
}

// FormatProbability renders p as a percentage with one decimal, e.g. "73.4%".
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func lines(f assessment.Findings) []string {
	out := make([]string, 0, f.Len())
	for _, item := range f.Items {
		out = append(out, item.String())
	}
	return out
}

func newRadar(scores assessment.AxisScores) Radar {
	points := make([]RadarPoint, 0, len(assessment.Axes))
	for _, axis := range assessment.Axes {
		points = append(points, RadarPoint{Axis: axis, Score: scores[axis]})
	}
	return Radar{
		Title:  RadarTitle,
		Min:    assessment.MinAxisScore,
		Max:    assessment.MaxAxisScore,
		Points: points,
	}
}
