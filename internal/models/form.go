package models

type ControlKind string

const (
	ControlSlider   ControlKind = "slider"
	ControlNumber   ControlKind = "number"
	ControlSelect   ControlKind = "select"
	ControlOrdinal  ControlKind = "ordinal"
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
)

// FieldSpec describes one intake control and the domain it enforces.
type FieldSpec struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	Group   string      `json:"group"`
	Control ControlKind `json:"control"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Step    *float64    `json:"step,omitempty"`
	Options []string    `json:"options,omitempty"`
	Default interface{} `json:"default"`
	Help    string      `json:"help,omitempty"`
}

const (
	GroupDemographics     = "Demographics"
	GroupBackground       = "Academic Background"
	GroupAcademicStatus   = "Current Academic Status"
	GroupProgram          = "Program Details"
	GroupFinancial        = "Financial Situation"
	GroupEngagement       = "Academic Engagement"
	GroupSupportWellbeing = "Support & Wellbeing"
	GroupPersonal         = "Personal Factors"
)

func ranged(name, label, group string, control ControlKind, lo, hi, step float64, def interface{}) FieldSpec {
	return FieldSpec{
		Name: name, Label: label, Group: group, Control: control,
		Min: &lo, Max: &hi, Step: &step, Default: def,
	}
}

func choice(name, label, group string, control ControlKind, options []string, def string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Group: group, Control: control, Options: options, Default: def}
}

func checkbox(name, label, group string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Group: group, Control: ControlCheckbox, Default: false}
}

func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// FormFields lists the intake controls in display order. is_stem is absent:
// it is derived, never entered.
func FormFields() []FieldSpec {
	intensity := names(Intensities)
	degree := names(Degrees)

	fields := []FieldSpec{
		ranged("age", "Age", GroupDemographics, ControlSlider, 16, 35, 1, 20),
		choice("gender", "Gender", GroupDemographics, ControlRadio, []string{"Male", "Female"}, "Male"),
		choice("state_of_origin", "State of Origin", GroupDemographics, ControlSelect, names(States), string(StateLagos)),
		ranged("distance_from_home_km", "Distance from Home (km)", GroupDemographics, ControlSlider, 10, 800, 1, 200),
		choice("marital_status", "Marital Status", GroupDemographics, ControlRadio, []string{"Single", "Married"}, "Single"),
		checkbox("has_children", "Has Children", GroupDemographics),

		ranged("admission_score", "Admission Score (JAMB)", GroupBackground, ControlSlider, 180, 350, 1, 250),
		choice("secondary_school_type", "Secondary School Type", GroupBackground, ControlRadio, []string{"Public", "Private"}, "Public"),
		ranged("secondary_cgpa", "Secondary School CGPA", GroupBackground, ControlSlider, 2.0, 5.0, 0.1, 3.5),

		ranged("year_of_study", "Year of Study", GroupAcademicStatus, ControlSelect, 1, 5, 1, 1),
		ranged("current_cgpa", "Current CGPA", GroupAcademicStatus, ControlSlider, 1.5, 5.0, 0.1, 3.0),
		ranged("course_load_per_semester", "Course Load (Credits)", GroupAcademicStatus, ControlSlider, 12, 30, 1, 18),
		ranged("attendance_percentage", "Attendance Percentage", GroupAcademicStatus, ControlSlider, 30, 100, 1, 75),
		ranged("number_of_failed_courses", "Failed Courses", GroupAcademicStatus, ControlNumber, 0, 20, 1, 2),
		ranged("number_of_repeated_courses", "Repeated Courses", GroupAcademicStatus, ControlNumber, 0, 10, 1, 0),
		choice("semester_gpa_trend", "Semester GPA Trend", GroupAcademicStatus, ControlOrdinal, []string{"Declining", "Stable", "Improving"}, "Stable"),
		ranged("previous_warnings", "Academic Warnings", GroupAcademicStatus, ControlNumber, 0, 5, 1, 0),
		checkbox("probation_status", "Currently on Academic Probation", GroupAcademicStatus),

		choice("department", "Department", GroupProgram, ControlSelect, names(Departments), string(DeptEngineering)),
		choice("program_difficulty", "Program Difficulty", GroupProgram, ControlOrdinal, intensity, string(IntensityModerate)),

		choice("scholarship_status", "Scholarship Status", GroupFinancial, ControlSelect, []string{"None", "Partial", "Full"}, "None"),
		choice("family_income_level", "Family Income Level", GroupFinancial, ControlSelect, []string{"Low", "Medium", "High"}, "Low"),
		choice("fee_payment_status", "Fee Payment Status", GroupFinancial, ControlSelect, []string{"Fully_Paid", "Partially_Paid", "Owing"}, "Fully_Paid"),
		checkbox("has_part_time_job", "Has Part-time Job", GroupFinancial),
		checkbox("receives_allowance", "Receives Regular Allowance", GroupFinancial),
		choice("financial_stress_level", "Financial Stress Level", GroupFinancial, ControlOrdinal, intensity, string(IntensityModerate)),

		ranged("library_visits_per_week", "Library Visits per Week", GroupEngagement, ControlSlider, 0, 15, 1, 3),
		ranged("online_platform_usage_hours", "LMS/E-Learning Hours per Week", GroupEngagement, ControlSlider, 0, 30, 1, 5),
		checkbox("participation_in_clubs", "Participates in Student Clubs", GroupEngagement),
		checkbox("has_mentor", "Has Academic/Personal Mentor", GroupEngagement),
		checkbox("peer_study_groups", "Joins Peer Study Groups", GroupEngagement),
		ranged("social_integration_score", "Social Integration Score", GroupEngagement, ControlSlider, 1, 10, 1, 6),

		checkbox("received_academic_counseling", "Received Academic Counseling", GroupSupportWellbeing),
		ranged("tutoring_sessions_attended", "Tutoring Sessions Attended", GroupSupportWellbeing, ControlSlider, 0, 20, 1, 2),
		choice("accommodation_type", "Accommodation Type", GroupSupportWellbeing, ControlSelect,
			[]string{"Campus_Hostel", "Off_Campus", "Living_with_Family", "Private_Hostel"}, "Campus_Hostel"),
		choice("health_status", "Health Status", GroupSupportWellbeing, ControlSelect, names(HealthLevels), string(HealthExcellent)),
		choice("stress_level", "Stress Level", GroupSupportWellbeing, ControlOrdinal, intensity, string(IntensityModerate)),

		choice("motivation_level", "Motivation Level", GroupPersonal, ControlOrdinal, degree, string(DegreeModerate)),
		choice("career_clarity", "Career Goal Clarity", GroupPersonal, ControlOrdinal, names(Clarities), string(ClaritySomewhat)),
		choice("family_support", "Family Support Level", GroupPersonal, ControlOrdinal, degree, string(DegreeModerate)),
	}

	for i := range fields {
		switch fields[i].Name {
		case "current_cgpa":
			fields[i].Help = "Most important predictor"
		case "social_integration_score":
			fields[i].Help = "1=Isolated, 10=Well integrated"
		}
	}
	return fields
}

// InputFieldNames returns the json names of every user-entered attribute.
func InputFieldNames() []string {
	fields := FormFields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// CGPAClass maps a CGPA on the 5.0 scale to its degree classification.
func CGPAClass(cgpa float64) string {
	switch {
	case cgpa >= 4.5:
		return "First Class"
	case cgpa >= 3.5:
		return "Second Class Upper"
	case cgpa >= 2.5:
		return "Second Class Lower"
	case cgpa >= 2.0:
		return "Third Class"
	default:
		return "Below Pass Grade"
	}
}
