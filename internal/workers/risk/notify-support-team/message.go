package notifysupportteam

import (
	"fmt"
	"strings"

	"retention-workers/internal/assessment"
	"retention-workers/internal/render"
)

func emailSubject(in *Input) string {
	return fmt.Sprintf("[%s RISK] Student %s needs %s", in.Assessment.Tier, in.StudentID,
		strings.ToLower(in.Assessment.Plan.Section))
}

func emailBody(in *Input) string {
	a := in.Assessment
	var b strings.Builder

	fmt.Fprintf(&b, "Student: %s\n", in.StudentID)
	if in.AssessmentID != "" {
		fmt.Fprintf(&b, "Assessment: %s\n", in.AssessmentID)
	}
	fmt.Fprintf(&b, "Risk tier: %s (%s dropout probability)\n\n", a.Tier, render.FormatProbability(a.Probability))

	writeFindings(&b, "Risk factors", a.RiskFactors)
	writeFindings(&b, "Protective factors", a.ProtectiveFactors)

	fmt.Fprintf(&b, "%s - %s\n", a.Plan.Headline, a.Plan.Section)
	for i, action := range a.Plan.Actions {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, action.Title, action.Detail)
	}
	fmt.Fprintf(&b, "%s: %s\n", a.Plan.FollowUpLabel, a.Plan.FollowUp)
	return b.String()
}

func writeFindings(b *strings.Builder, title string, f assessment.Findings) {
	fmt.Fprintf(b, "%s:\n", title)
	if f.None {
		fmt.Fprintf(b, "  %s\n\n", f.Message)
		return
	}
	for _, item := range f.Items {
		fmt.Fprintf(b, "  - %s\n", item.String())
	}
	b.WriteString("\n")
}

func smsText(in *Input) string {
	return fmt.Sprintf("%s dropout risk: student %s (%s). %s. See advising inbox.",
		in.Assessment.Tier, in.StudentID, render.FormatProbability(in.Assessment.Probability),
		in.Assessment.Plan.Headline)
}
