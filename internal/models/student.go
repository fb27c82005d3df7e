package models

// Record is the 41-attribute description of one student handed to the classifier.
// It is built once per request and passed by value. IsSTEM is never read from
// input; Normalize derives it from Department and Features sends it as is_stem.
type Record struct {
	// Demographics
	Age                int           `json:"age" db:"age" validate:"min=16,max=35"`
	Gender             Gender        `json:"gender" db:"gender" validate:"oneof=Male Female"`
	StateOfOrigin      State         `json:"state_of_origin" db:"state_of_origin" validate:"oneof=Lagos Kano Rivers Oyo Anambra Kaduna Enugu Ogun Delta Edo Katsina Borno Cross_River Imo Ekiti"`
	DistanceFromHomeKm int           `json:"distance_from_home_km" db:"distance_from_home_km" validate:"min=10,max=800"`
	MaritalStatus      MaritalStatus `json:"marital_status" db:"marital_status" validate:"oneof=Single Married"`
	HasChildren        bool          `json:"has_children" db:"has_children"`

	// Academic background
	AdmissionScore      int        `json:"admission_score" db:"admission_score" validate:"min=180,max=350"`
	SecondarySchoolType SchoolType `json:"secondary_school_type" db:"secondary_school_type" validate:"oneof=Public Private"`
	SecondaryCGPA       float64    `json:"secondary_cgpa" db:"secondary_cgpa" validate:"min=2.0,max=5.0"`

	// Current academic status
	YearOfStudy             int      `json:"year_of_study" db:"year_of_study" validate:"min=1,max=5"`
	CurrentCGPA             float64  `json:"current_cgpa" db:"current_cgpa" validate:"min=1.5,max=5.0"`
	CourseLoadPerSemester   int      `json:"course_load_per_semester" db:"course_load_per_semester" validate:"min=12,max=30"`
	AttendancePercentage    int      `json:"attendance_percentage" db:"attendance_percentage" validate:"min=30,max=100"`
	NumberOfFailedCourses   int      `json:"number_of_failed_courses" db:"number_of_failed_courses" validate:"min=0,max=20"`
	NumberOfRepeatedCourses int      `json:"number_of_repeated_courses" db:"number_of_repeated_courses" validate:"min=0,max=10"`
	SemesterGPATrend        GPATrend `json:"semester_gpa_trend" db:"semester_gpa_trend" validate:"oneof=Declining Stable Improving"`
	PreviousWarnings        int      `json:"previous_warnings" db:"previous_warnings" validate:"min=0,max=5"`
	ProbationStatus         bool     `json:"probation_status" db:"probation_status"`

	// Program
	Department        Department `json:"department" db:"department" validate:"oneof=Engineering Medicine Law Science Arts Social_Sciences Education Business_Admin Agriculture Environmental_Studies"`
	ProgramDifficulty Intensity  `json:"program_difficulty" db:"program_difficulty" validate:"oneof=Low Moderate High Very_High"`
	IsSTEM            bool       `json:"-" db:"-"`

	// Financial
	ScholarshipStatus    Scholarship `json:"scholarship_status" db:"scholarship_status" validate:"oneof=None Partial Full"`
	FamilyIncomeLevel    IncomeLevel `json:"family_income_level" db:"family_income_level" validate:"oneof=Low Medium High"`
	FeePaymentStatus     FeeStatus   `json:"fee_payment_status" db:"fee_payment_status" validate:"oneof=Fully_Paid Partially_Paid Owing"`
	HasPartTimeJob       bool        `json:"has_part_time_job" db:"has_part_time_job"`
	ReceivesAllowance    bool        `json:"receives_allowance" db:"receives_allowance"`
	FinancialStressLevel Intensity   `json:"financial_stress_level" db:"financial_stress_level" validate:"oneof=Low Moderate High Very_High"`

	// Engagement and wellbeing
	LibraryVisitsPerWeek       int           `json:"library_visits_per_week" db:"library_visits_per_week" validate:"min=0,max=15"`
	OnlinePlatformUsageHours   int           `json:"online_platform_usage_hours" db:"online_platform_usage_hours" validate:"min=0,max=30"`
	ParticipationInClubs       bool          `json:"participation_in_clubs" db:"participation_in_clubs"`
	HasMentor                  bool          `json:"has_mentor" db:"has_mentor"`
	PeerStudyGroups            bool          `json:"peer_study_groups" db:"peer_study_groups"`
	SocialIntegrationScore     int           `json:"social_integration_score" db:"social_integration_score" validate:"min=1,max=10"`
	ReceivedAcademicCounseling bool          `json:"received_academic_counseling" db:"received_academic_counseling"`
	TutoringSessionsAttended   int           `json:"tutoring_sessions_attended" db:"tutoring_sessions_attended" validate:"min=0,max=20"`
	AccommodationType          Accommodation `json:"accommodation_type" db:"accommodation_type" validate:"oneof=Campus_Hostel Off_Campus Living_with_Family Private_Hostel"`
	HealthStatus               Health        `json:"health_status" db:"health_status" validate:"oneof=Excellent Good Fair Poor"`
	StressLevel                Intensity     `json:"stress_level" db:"stress_level" validate:"oneof=Low Moderate High Very_High"`
	MotivationLevel            Degree        `json:"motivation_level" db:"motivation_level" validate:"oneof=Very_Low Low Moderate High Very_High"`
	CareerClarity              Clarity       `json:"career_clarity" db:"career_clarity" validate:"oneof=Very_Unclear Unclear Somewhat_Clear Clear Very_Clear"`
	FamilySupport              Degree        `json:"family_support" db:"family_support" validate:"oneof=Very_Low Low Moderate High Very_High"`
}

// FieldCount is the number of attributes the classifier expects, is_stem included.
const FieldCount = 41

// Normalize returns a copy with the derived attributes recomputed.
func (r Record) Normalize() Record {
	r.IsSTEM = r.Department.IsSTEM()
	return r
}

// DefaultRecord mirrors the initial state of the intake form.
func DefaultRecord() Record {
	return Record{
		Age:                      20,
		Gender:                   GenderMale,
		StateOfOrigin:            StateLagos,
		DistanceFromHomeKm:       200,
		MaritalStatus:            MaritalSingle,
		AdmissionScore:           250,
		SecondarySchoolType:      SchoolPublic,
		SecondaryCGPA:            3.5,
		YearOfStudy:              1,
		CurrentCGPA:              3.0,
		CourseLoadPerSemester:    18,
		AttendancePercentage:     75,
		NumberOfFailedCourses:    2,
		SemesterGPATrend:         TrendStable,
		Department:               DeptEngineering,
		ProgramDifficulty:        IntensityModerate,
		IsSTEM:                   true,
		ScholarshipStatus:        ScholarshipNone,
		FamilyIncomeLevel:        IncomeLow,
		FeePaymentStatus:         FeesFullyPaid,
		FinancialStressLevel:     IntensityModerate,
		LibraryVisitsPerWeek:     3,
		OnlinePlatformUsageHours: 5,
		SocialIntegrationScore:   6,
		TutoringSessionsAttended: 2,
		AccommodationType:        AccommodationCampusHostel,
		HealthStatus:             HealthExcellent,
		StressLevel:              IntensityModerate,
		MotivationLevel:          DegreeModerate,
		CareerClarity:            ClaritySomewhat,
		FamilySupport:            DegreeModerate,
	}
}

// Features flattens the record into the column layout the model was trained on:
// booleans become 0/1 and is_stem is always derived.
func (r Record) Features() map[string]interface{} {
	return map[string]interface{}{
		"age":                          r.Age,
		"gender":                       string(r.Gender),
		"state_of_origin":              string(r.StateOfOrigin),
		"distance_from_home_km":        r.DistanceFromHomeKm,
		"marital_status":               string(r.MaritalStatus),
		"has_children":                 flag(r.HasChildren),
		"admission_score":              r.AdmissionScore,
		"secondary_school_type":        string(r.SecondarySchoolType),
		"secondary_cgpa":               r.SecondaryCGPA,
		"year_of_study":                r.YearOfStudy,
		"current_cgpa":                 r.CurrentCGPA,
		"course_load_per_semester":     r.CourseLoadPerSemester,
		"attendance_percentage":        r.AttendancePercentage,
		"number_of_failed_courses":     r.NumberOfFailedCourses,
		"number_of_repeated_courses":   r.NumberOfRepeatedCourses,
		"semester_gpa_trend":           string(r.SemesterGPATrend),
		"previous_warnings":            r.PreviousWarnings,
		"probation_status":             flag(r.ProbationStatus),
		"department":                   string(r.Department),
		"program_difficulty":           string(r.ProgramDifficulty),
		"is_stem":                      flag(r.Department.IsSTEM()),
		"scholarship_status":           string(r.ScholarshipStatus),
		"family_income_level":          string(r.FamilyIncomeLevel),
		"fee_payment_status":           string(r.FeePaymentStatus),
		"has_part_time_job":            flag(r.HasPartTimeJob),
		"receives_allowance":           flag(r.ReceivesAllowance),
		"financial_stress_level":       string(r.FinancialStressLevel),
		"library_visits_per_week":      r.LibraryVisitsPerWeek,
		"online_platform_usage_hours":  r.OnlinePlatformUsageHours,
		"participation_in_clubs":       flag(r.ParticipationInClubs),
		"has_mentor":                   flag(r.HasMentor),
		"peer_study_groups":            flag(r.PeerStudyGroups),
		"social_integration_score":     r.SocialIntegrationScore,
		"received_academic_counseling": flag(r.ReceivedAcademicCounseling),
		"tutoring_sessions_attended":   r.TutoringSessionsAttended,
		"accommodation_type":           string(r.AccommodationType),
		"health_status":                string(r.HealthStatus),
		"stress_level":                 string(r.StressLevel),
		"motivation_level":             string(r.MotivationLevel),
		"career_clarity":               string(r.CareerClarity),
		"family_support":               string(r.FamilySupport),
	}
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
