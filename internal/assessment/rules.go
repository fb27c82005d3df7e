package assessment

import (
	"fmt"

	"retention-workers/internal/models"
)

const (
	NoRiskFactorsMessage       = "No major risk factors identified!"
	NoProtectiveFactorsMessage = "Limited protective factors - needs more support"
)

// factorRule emits a finding when holds returns true. Rules are evaluated in
// table order and independently of each other.
type factorRule struct {
	attribute string
	label     string
	holds     func(r models.Record) bool
	value     func(r models.Record) interface{}
	detail    func(r models.Record) string
}

func fixed(text string) func(models.Record) string {
	return func(models.Record) string { return text }
}

var riskFactorRules = []factorRule{
	{
		attribute: "current_cgpa",
		label:     "Low CGPA",
		holds:     func(r models.Record) bool { return r.CurrentCGPA < 2.5 },
		value:     func(r models.Record) interface{} { return r.CurrentCGPA },
		detail:    func(r models.Record) string { return fmt.Sprintf("%.2f (Below 2.5)", r.CurrentCGPA) },
	},
	{
		attribute: "attendance_percentage",
		label:     "Poor Attendance",
		holds:     func(r models.Record) bool { return r.AttendancePercentage < 70 },
		value:     func(r models.Record) interface{} { return r.AttendancePercentage },
		detail:    func(r models.Record) string { return fmt.Sprintf("%d%%", r.AttendancePercentage) },
	},
	{
		attribute: "number_of_failed_courses",
		label:     "Many Failures",
		holds:     func(r models.Record) bool { return r.NumberOfFailedCourses >= 5 },
		value:     func(r models.Record) interface{} { return r.NumberOfFailedCourses },
		detail:    func(r models.Record) string { return fmt.Sprintf("%d courses", r.NumberOfFailedCourses) },
	},
	{
		attribute: "fee_payment_status",
		label:     "Owing Fees",
		holds:     func(r models.Record) bool { return r.FeePaymentStatus == models.FeesOwing },
		value:     func(r models.Record) interface{} { return string(r.FeePaymentStatus) },
		detail:    fixed("Financial barrier"),
	},
	{
		attribute: "probation_status",
		label:     "On Probation",
		holds:     func(r models.Record) bool { return r.ProbationStatus },
		value:     func(r models.Record) interface{} { return r.ProbationStatus },
		detail:    fixed("Critical academic status"),
	},
	{
		attribute: "semester_gpa_trend",
		label:     "GPA Declining",
		holds:     func(r models.Record) bool { return r.SemesterGPATrend == models.TrendDeclining },
		value:     func(r models.Record) interface{} { return string(r.SemesterGPATrend) },
		detail:    fixed("Negative trend"),
	},
	{
		attribute: "motivation_level",
		label:     "Low Motivation",
		holds:     func(r models.Record) bool { return lowDegree(r.MotivationLevel) },
		value:     func(r models.Record) interface{} { return string(r.MotivationLevel) },
		detail:    func(r models.Record) string { return string(r.MotivationLevel) },
	},
	{
		attribute: "social_integration_score",
		label:     "Socially Isolated",
		holds:     func(r models.Record) bool { return r.SocialIntegrationScore <= 3 },
		value:     func(r models.Record) interface{} { return r.SocialIntegrationScore },
		detail:    func(r models.Record) string { return fmt.Sprintf("Score %d/10", r.SocialIntegrationScore) },
	},
}

var protectiveFactorRules = []factorRule{
	{
		attribute: "current_cgpa",
		label:     "Strong CGPA",
		holds:     func(r models.Record) bool { return r.CurrentCGPA >= 3.5 },
		value:     func(r models.Record) interface{} { return r.CurrentCGPA },
		detail:    func(r models.Record) string { return fmt.Sprintf("%.2f", r.CurrentCGPA) },
	},
	{
		attribute: "has_mentor",
		label:     "Has Mentor",
		holds:     func(r models.Record) bool { return r.HasMentor },
		value:     func(r models.Record) interface{} { return r.HasMentor },
		detail:    fixed("Support system in place"),
	},
	{
		attribute: "scholarship_status",
		label:     "Full Scholarship",
		holds:     func(r models.Record) bool { return r.ScholarshipStatus == models.ScholarshipFull },
		value:     func(r models.Record) interface{} { return string(r.ScholarshipStatus) },
		detail:    fixed("Financial security"),
	},
	{
		attribute: "attendance_percentage",
		label:     "Excellent Attendance",
		holds:     func(r models.Record) bool { return r.AttendancePercentage >= 85 },
		value:     func(r models.Record) interface{} { return r.AttendancePercentage },
		detail:    func(r models.Record) string { return fmt.Sprintf("%d%%", r.AttendancePercentage) },
	},
	{
		attribute: "peer_study_groups",
		label:     "Study Groups",
		holds:     func(r models.Record) bool { return r.PeerStudyGroups },
		value:     func(r models.Record) interface{} { return r.PeerStudyGroups },
		detail:    fixed("Peer support"),
	},
	{
		attribute: "family_support",
		label:     "Strong Family Support",
		holds:     func(r models.Record) bool { return highDegree(r.FamilySupport) },
		value:     func(r models.Record) interface{} { return string(r.FamilySupport) },
		detail:    func(r models.Record) string { return string(r.FamilySupport) },
	},
	{
		attribute: "social_integration_score",
		label:     "Well Integrated",
		holds:     func(r models.Record) bool { return r.SocialIntegrationScore >= 7 },
		value:     func(r models.Record) interface{} { return r.SocialIntegrationScore },
		detail:    func(r models.Record) string { return fmt.Sprintf("Score %d/10", r.SocialIntegrationScore) },
	},
}

// axisRule adds weight to its axis when holds returns true. Support rules
// carry negative weights against a base of 100.
type axisRule struct {
	weight int
	holds  func(r models.Record) bool
}

type axisSpec struct {
	axis  Axis
	base  int
	rules []axisRule
}

var axisSpecs = []axisSpec{
	{
		axis: AxisAcademic,
		rules: []axisRule{
			{40, func(r models.Record) bool { return r.CurrentCGPA < 2.5 }},
			{30, func(r models.Record) bool { return r.NumberOfFailedCourses > 4 }},
			{20, func(r models.Record) bool { return r.AttendancePercentage < 70 }},
			{10, func(r models.Record) bool { return r.SemesterGPATrend == models.TrendDeclining }},
		},
	},
	{
		axis: AxisFinancial,
		rules: []axisRule{
			{40, func(r models.Record) bool { return r.FeePaymentStatus == models.FeesOwing }},
			{30, func(r models.Record) bool { return highIntensity(r.FinancialStressLevel) }},
			{30, func(r models.Record) bool {
				return r.ScholarshipStatus == models.ScholarshipNone && r.FamilyIncomeLevel == models.IncomeLow
			}},
		},
	},
	{
		axis: AxisEngagement,
		rules: []axisRule{
			{25, func(r models.Record) bool { return r.LibraryVisitsPerWeek < 2 }},
			{25, func(r models.Record) bool { return r.OnlinePlatformUsageHours < 5 }},
			{30, func(r models.Record) bool { return r.SocialIntegrationScore < 5 }},
			{20, func(r models.Record) bool { return !r.ParticipationInClubs }},
		},
	},
	{
		axis: AxisPersonal,
		rules: []axisRule{
			{40, func(r models.Record) bool { return lowDegree(r.MotivationLevel) }},
			{30, func(r models.Record) bool { return highIntensity(r.StressLevel) }},
			{20, func(r models.Record) bool { return lowDegree(r.FamilySupport) }},
			{10, func(r models.Record) bool {
				return r.CareerClarity == models.ClarityVeryUnclear || r.CareerClarity == models.ClarityUnclear
			}},
		},
	},
	{
		axis: AxisSupport,
		base: 100,
		rules: []axisRule{
			{-30, func(r models.Record) bool { return r.HasMentor }},
			{-20, func(r models.Record) bool { return r.ReceivedAcademicCounseling }},
			{-20, func(r models.Record) bool { return r.PeerStudyGroups }},
			{-30, func(r models.Record) bool { return r.TutoringSessionsAttended > 5 }},
		},
	},
}

func lowDegree(d models.Degree) bool {
	return d == models.DegreeVeryLow || d == models.DegreeLow
}

func highDegree(d models.Degree) bool {
	return d == models.DegreeHigh || d == models.DegreeVeryHigh
}

func highIntensity(i models.Intensity) bool {
	return i == models.IntensityHigh || i == models.IntensityVeryHigh
}
