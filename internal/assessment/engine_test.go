package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retention-workers/internal/models"
)

func atRiskRecord() models.Record {
	r := models.DefaultRecord()
	r.CurrentCGPA = 2.0
	r.AttendancePercentage = 60
	r.NumberOfFailedCourses = 6
	r.FeePaymentStatus = models.FeesOwing
	r.ProbationStatus = true
	r.SemesterGPATrend = models.TrendDeclining
	r.MotivationLevel = models.DegreeLow
	r.SocialIntegrationScore = 2
	r.HasMentor = false
	r.ScholarshipStatus = models.ScholarshipPartial
	r.PeerStudyGroups = false
	r.FamilySupport = models.DegreeModerate
	r.ParticipationInClubs = false
	return r
}

func thrivingRecord() models.Record {
	r := models.DefaultRecord()
	r.CurrentCGPA = 4.0
	r.HasMentor = true
	r.ScholarshipStatus = models.ScholarshipFull
	r.AttendancePercentage = 90
	r.PeerStudyGroups = true
	r.FamilySupport = models.DegreeHigh
	r.SocialIntegrationScore = 8
	r.ProbationStatus = false
	r.FeePaymentStatus = models.FeesFullyPaid
	r.SemesterGPATrend = models.TrendStable
	r.MotivationLevel = models.DegreeHigh
	r.NumberOfFailedCourses = 0
	r.ReceivedAcademicCounseling = true
	r.TutoringSessionsAttended = 2
	return r
}

func labels(f Findings) []string {
	out := make([]string, 0, f.Len())
	for _, item := range f.Items {
		out = append(out, item.Label)
	}
	return out
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		p    float64
		want Tier
	}{
		{1.0, TierHigh},
		{0.85, TierHigh},
		{0.70, TierHigh},
		{0.6999, TierModerate},
		{0.55, TierModerate},
		{0.40, TierModerate},
		{0.3999, TierLow},
		{0.0, TierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.p), "p=%v", tt.p)
	}
}

func TestClassifyTier_Monotonic(t *testing.T) {
	rank := map[Tier]int{TierLow: 0, TierModerate: 1, TierHigh: 2}
	prev := rank[ClassifyTier(0)]
	for i := 1; i <= 10000; i++ {
		cur := rank[ClassifyTier(float64(i) / 10000)]
		require.GreaterOrEqual(t, cur, prev, "tier decreased at p=%v", float64(i)/10000)
		prev = cur
	}
}

func TestExtractRiskFactors_AllFire(t *testing.T) {
	record := atRiskRecord()

	risk := ExtractRiskFactors(record)
	protective := ExtractProtectiveFactors(record)

	assert.False(t, risk.None)
	assert.Equal(t, []string{
		"Low CGPA",
		"Poor Attendance",
		"Many Failures",
		"Owing Fees",
		"On Probation",
		"GPA Declining",
		"Low Motivation",
		"Socially Isolated",
	}, labels(risk))

	assert.True(t, protective.None)
	assert.Empty(t, protective.Items)
	assert.Equal(t, NoProtectiveFactorsMessage, protective.Message)
}

func TestExtractRiskFactors_Details(t *testing.T) {
	risk := ExtractRiskFactors(atRiskRecord())
	require.Equal(t, 8, risk.Len())

	assert.Equal(t, "Low CGPA: 2.00 (Below 2.5)", risk.Items[0].String())
	assert.Equal(t, "Poor Attendance: 60%", risk.Items[1].String())
	assert.Equal(t, "Many Failures: 6 courses", risk.Items[2].String())
	assert.Equal(t, "Owing Fees: Financial barrier", risk.Items[3].String())
	assert.Equal(t, "On Probation: Critical academic status", risk.Items[4].String())
	assert.Equal(t, "GPA Declining: Negative trend", risk.Items[5].String())
	assert.Equal(t, "Low Motivation: Low", risk.Items[6].String())
	assert.Equal(t, "Socially Isolated: Score 2/10", risk.Items[7].String())
	assert.Equal(t, "current_cgpa", risk.Items[0].Attribute)
	assert.Equal(t, 2.0, risk.Items[0].Value)
}

func TestExtractProtectiveFactors_AllFire(t *testing.T) {
	record := thrivingRecord()

	risk := ExtractRiskFactors(record)
	protective := ExtractProtectiveFactors(record)

	assert.True(t, risk.None)
	assert.Equal(t, NoRiskFactorsMessage, risk.Message)

	require.Equal(t, 7, protective.Len())
	assert.Equal(t, []string{
		"Strong CGPA",
		"Has Mentor",
		"Full Scholarship",
		"Excellent Attendance",
		"Study Groups",
		"Strong Family Support",
		"Well Integrated",
	}, labels(protective))
	assert.Equal(t, "Strong CGPA: 4.00", protective.Items[0].String())
	assert.Equal(t, "Strong Family Support: High", protective.Items[5].String())
	assert.Equal(t, "Well Integrated: Score 8/10", protective.Items[6].String())
}

func TestExtract_Thresholds(t *testing.T) {
	r := models.DefaultRecord()
	r.CurrentCGPA = 2.5
	r.AttendancePercentage = 70
	r.NumberOfFailedCourses = 4
	r.SocialIntegrationScore = 4

	assert.True(t, ExtractRiskFactors(r).None)

	r.CurrentCGPA = 3.5
	r.AttendancePercentage = 85
	r.SocialIntegrationScore = 7
	assert.Equal(t, []string{"Strong CGPA", "Excellent Attendance", "Well Integrated"}, labels(ExtractProtectiveFactors(r)))
}

func TestScoreAxes_AtRisk(t *testing.T) {
	scores := ScoreAxes(atRiskRecord())

	assert.Equal(t, 100, scores[AxisAcademic])
	// owing fees only; default stress is Moderate and scholarship is Partial
	assert.Equal(t, 40, scores[AxisFinancial])
	// social < 5 and no clubs; library 3 and online 5 do not fire
	assert.Equal(t, 50, scores[AxisEngagement])
	assert.Equal(t, 40, scores[AxisPersonal])
	assert.Equal(t, 100, scores[AxisSupport])
}

func TestScoreAxes_Thriving(t *testing.T) {
	scores := ScoreAxes(thrivingRecord())

	assert.Equal(t, 30, scores[AxisSupport])
	assert.Equal(t, 0, scores[AxisAcademic])
	assert.Equal(t, 0, scores[AxisPersonal])

	r := thrivingRecord()
	r.ReceivedAcademicCounseling = false
	assert.Equal(t, 50, ScoreAxes(r)[AxisSupport])
}

func TestScoreAxes_Clamped(t *testing.T) {
	maxed := atRiskRecord()
	maxed.FinancialStressLevel = models.IntensityVeryHigh
	maxed.ScholarshipStatus = models.ScholarshipNone
	maxed.FamilyIncomeLevel = models.IncomeLow
	maxed.LibraryVisitsPerWeek = 0
	maxed.OnlinePlatformUsageHours = 0
	maxed.StressLevel = models.IntensityVeryHigh
	maxed.MotivationLevel = models.DegreeVeryLow
	maxed.FamilySupport = models.DegreeVeryLow
	maxed.CareerClarity = models.ClarityVeryUnclear

	minimal := thrivingRecord()
	minimal.TutoringSessionsAttended = 20

	for name, record := range map[string]models.Record{"maxed": maxed, "minimal": minimal} {
		t.Run(name, func(t *testing.T) {
			scores := ScoreAxes(record)
			require.Len(t, scores, len(Axes))
			for _, axis := range Axes {
				assert.GreaterOrEqual(t, scores[axis], MinAxisScore, axis)
				assert.LessOrEqual(t, scores[axis], MaxAxisScore, axis)
			}
		})
	}

	assert.Equal(t, 100, ScoreAxes(maxed)[AxisFinancial])
	assert.Equal(t, 100, ScoreAxes(maxed)[AxisPersonal])
	assert.Equal(t, 0, ScoreAxes(minimal)[AxisSupport])
}

func TestScoreAxes_BoundsSweep(t *testing.T) {
	base := models.DefaultRecord()
	for _, cgpa := range []float64{1.5, 2.49, 2.5, 3.5, 5.0} {
		for _, attendance := range []int{30, 69, 70, 85, 100} {
			for _, social := range []int{1, 4, 5, 10} {
				for _, mentor := range []bool{true, false} {
					r := base
					r.CurrentCGPA = cgpa
					r.AttendancePercentage = attendance
					r.SocialIntegrationScore = social
					r.HasMentor = mentor
					r.PeerStudyGroups = mentor
					r.ReceivedAcademicCounseling = mentor
					r.TutoringSessionsAttended = 10

					for axis, score := range ScoreAxes(r) {
						require.True(t, score >= MinAxisScore && score <= MaxAxisScore,
							"axis %s out of range: %d", axis, score)
					}
				}
			}
		}
	}
}

func TestAssess_Idempotent(t *testing.T) {
	record := atRiskRecord()

	first := Assess(record, 0.82)
	second := Assess(record, 0.82)

	assert.Equal(t, first, second)
	assert.Equal(t, TierHigh, first.Tier)
	assert.Equal(t, 0.82, first.Probability)
	assert.True(t, first.RequiresIntervention())
}

func TestAssess_PlanDependsOnlyOnTier(t *testing.T) {
	tests := []struct {
		p        float64
		tier     Tier
		headline string
		actions  int
		label    string
	}{
		{0.85, TierHigh, "URGENT ACTION REQUIRED", 6, "Follow-up"},
		{0.55, TierModerate, "PROACTIVE SUPPORT NEEDED", 5, "Follow-up"},
		{0.10, TierLow, "STUDENT ON TRACK", 5, "Monitoring"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			a := Assess(atRiskRecord(), tt.p)
			b := Assess(thrivingRecord(), tt.p)

			assert.Equal(t, tt.tier, a.Tier)
			assert.Equal(t, a.Plan, b.Plan)
			assert.Equal(t, SelectPlan(tt.tier), a.Plan)
			assert.Equal(t, tt.headline, a.Plan.Headline)
			assert.Len(t, a.Plan.Actions, tt.actions)
			assert.Equal(t, tt.label, a.Plan.FollowUpLabel)
		})
	}
}

func TestSelectPlan_HighTemplate(t *testing.T) {
	plan := SelectPlan(TierHigh)

	assert.Equal(t, "Immediate Interventions", plan.Section)
	assert.Equal(t, Action{"Intensive Tutoring", "10-15 hours per week"}, plan.Actions[0])
	assert.Equal(t, Action{"Peer Support Groups", "Connect with study groups"}, plan.Actions[5])
	assert.Equal(t, "Weekly check-ins for 30 days, then bi-weekly", plan.FollowUp)
}

func TestSelectPlan_ReturnsCopy(t *testing.T) {
	plan := SelectPlan(TierModerate)
	plan.Actions[0].Title = "changed"
	plan.Actions = append(plan.Actions, Action{Title: "extra"})

	fresh := SelectPlan(TierModerate)
	assert.Equal(t, "Group Tutoring", fresh.Actions[0].Title)
	assert.Len(t, fresh.Actions, 5)
}

func TestSelectPlan_UnknownTier(t *testing.T) {
	assert.Equal(t, SelectPlan(TierLow), SelectPlan(Tier("UNKNOWN")))
}

func TestAssessment_RequiresIntervention(t *testing.T) {
	assert.True(t, Assessment{Tier: TierHigh}.RequiresIntervention())
	assert.True(t, Assessment{Tier: TierModerate}.RequiresIntervention())
	assert.False(t, Assessment{Tier: TierLow}.RequiresIntervention())
}
