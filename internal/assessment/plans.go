package assessment

var planTemplates = map[Tier]Plan{
	TierHigh: {
		Tier:     TierHigh,
		Headline: "URGENT ACTION REQUIRED",
		Section:  "Immediate Interventions",
		Actions: []Action{
			{"Intensive Tutoring", "10-15 hours per week"},
			{"Emergency Financial Aid", "Assess fee payment options"},
			{"Weekly Advisor Meetings", "Monitor progress closely"},
			{"Assign Faculty Mentor", "Immediate mentorship"},
			{"Counseling Referral", "Address stress and motivation"},
			{"Peer Support Groups", "Connect with study groups"},
		},
		FollowUpLabel: "Follow-up",
		FollowUp:      "Weekly check-ins for 30 days, then bi-weekly",
	},
	TierModerate: {
		Tier:     TierModerate,
		Headline: "PROACTIVE SUPPORT NEEDED",
		Section:  "Recommended Actions",
		Actions: []Action{
			{"Group Tutoring", "5 hours per week"},
			{"Financial Counseling", "Budget planning and scholarship search"},
			{"Bi-weekly Progress Meetings", "Track improvements"},
			{"Social Integration", "Encourage club participation"},
			{"Study Skills Workshop", "Time management and learning strategies"},
		},
		FollowUpLabel: "Follow-up",
		FollowUp:      "Bi-weekly check-ins, monthly progress reviews",
	},
	TierLow: {
		Tier:     TierLow,
		Headline: "STUDENT ON TRACK",
		Section:  "Growth Opportunities",
		Actions: []Action{
			{"Research Opportunities", "Undergraduate research programs"},
			{"Leadership Development", "Student government, peer mentoring"},
			{"Career Preparation", "Internships, networking events"},
			{"Scholarship Nominations", "Awards and recognition"},
			{"Advanced Courses", "Honors programs, graduate prep"},
		},
		FollowUpLabel: "Monitoring",
		FollowUp:      "Semester check-ins to maintain positive trajectory",
	},
}

// SelectPlan returns the intervention template for tier. The result is a copy;
// callers may modify it freely. Unknown tiers get the LOW template.
func SelectPlan(tier Tier) Plan {
	tmpl, ok := planTemplates[tier]
	if !ok {
		tmpl = planTemplates[TierLow]
	}
	plan := tmpl
	plan.Actions = append([]Action(nil), tmpl.Actions...)
	return plan
}
