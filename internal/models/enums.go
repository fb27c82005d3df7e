package models

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type State string

const (
	StateLagos      State = "Lagos"
	StateKano       State = "Kano"
	StateRivers     State = "Rivers"
	StateOyo        State = "Oyo"
	StateAnambra    State = "Anambra"
	StateKaduna     State = "Kaduna"
	StateEnugu      State = "Enugu"
	StateOgun       State = "Ogun"
	StateDelta      State = "Delta"
	StateEdo        State = "Edo"
	StateKatsina    State = "Katsina"
	StateBorno      State = "Borno"
	StateCrossRiver State = "Cross_River"
	StateImo        State = "Imo"
	StateEkiti      State = "Ekiti"
)

var States = []State{
	StateLagos, StateKano, StateRivers, StateOyo, StateAnambra, StateKaduna,
	StateEnugu, StateOgun, StateDelta, StateEdo, StateKatsina, StateBorno,
	StateCrossRiver, StateImo, StateEkiti,
}

type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "Single"
	MaritalMarried MaritalStatus = "Married"
)

type SchoolType string

const (
	SchoolPublic  SchoolType = "Public"
	SchoolPrivate SchoolType = "Private"
)

type GPATrend string

const (
	TrendDeclining GPATrend = "Declining"
	TrendStable    GPATrend = "Stable"
	TrendImproving GPATrend = "Improving"
)

type Department string

const (
	DeptEngineering          Department = "Engineering"
	DeptMedicine             Department = "Medicine"
	DeptLaw                  Department = "Law"
	DeptScience              Department = "Science"
	DeptArts                 Department = "Arts"
	DeptSocialSciences       Department = "Social_Sciences"
	DeptEducation            Department = "Education"
	DeptBusinessAdmin        Department = "Business_Admin"
	DeptAgriculture          Department = "Agriculture"
	DeptEnvironmentalStudies Department = "Environmental_Studies"
)

var Departments = []Department{
	DeptEngineering, DeptMedicine, DeptLaw, DeptScience, DeptArts,
	DeptSocialSciences, DeptEducation, DeptBusinessAdmin, DeptAgriculture,
	DeptEnvironmentalStudies,
}

// IsSTEM reports whether the department counts as STEM for the classifier.
func (d Department) IsSTEM() bool {
	switch d {
	case DeptEngineering, DeptMedicine, DeptScience:
		return true
	}
	return false
}

type Scholarship string

const (
	ScholarshipNone    Scholarship = "None"
	ScholarshipPartial Scholarship = "Partial"
	ScholarshipFull    Scholarship = "Full"
)

type IncomeLevel string

const (
	IncomeLow    IncomeLevel = "Low"
	IncomeMedium IncomeLevel = "Medium"
	IncomeHigh   IncomeLevel = "High"
)

type FeeStatus string

const (
	FeesFullyPaid     FeeStatus = "Fully_Paid"
	FeesPartiallyPaid FeeStatus = "Partially_Paid"
	FeesOwing         FeeStatus = "Owing"
)

type Accommodation string

const (
	AccommodationCampusHostel  Accommodation = "Campus_Hostel"
	AccommodationOffCampus     Accommodation = "Off_Campus"
	AccommodationWithFamily    Accommodation = "Living_with_Family"
	AccommodationPrivateHostel Accommodation = "Private_Hostel"
)

// Intensity is the four-step ordinal used for difficulty and stress.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
	IntensityVeryHigh Intensity = "Very_High"
)

var Intensities = []Intensity{IntensityLow, IntensityModerate, IntensityHigh, IntensityVeryHigh}

func (i Intensity) Rank() int { return rank(Intensities, i) }

// Degree is the five-step ordinal used for motivation and family support.
type Degree string

const (
	DegreeVeryLow  Degree = "Very_Low"
	DegreeLow      Degree = "Low"
	DegreeModerate Degree = "Moderate"
	DegreeHigh     Degree = "High"
	DegreeVeryHigh Degree = "Very_High"
)

var Degrees = []Degree{DegreeVeryLow, DegreeLow, DegreeModerate, DegreeHigh, DegreeVeryHigh}

func (d Degree) Rank() int { return rank(Degrees, d) }

type Clarity string

const (
	ClarityVeryUnclear Clarity = "Very_Unclear"
	ClarityUnclear     Clarity = "Unclear"
	ClaritySomewhat    Clarity = "Somewhat_Clear"
	ClarityClear       Clarity = "Clear"
	ClarityVeryClear   Clarity = "Very_Clear"
)

var Clarities = []Clarity{ClarityVeryUnclear, ClarityUnclear, ClaritySomewhat, ClarityClear, ClarityVeryClear}

func (c Clarity) Rank() int { return rank(Clarities, c) }

// Health is ordered best first, as on the intake form.
type Health string

const (
	HealthExcellent Health = "Excellent"
	HealthGood      Health = "Good"
	HealthFair      Health = "Fair"
	HealthPoor      Health = "Poor"
)

var HealthLevels = []Health{HealthExcellent, HealthGood, HealthFair, HealthPoor}

func rank[T comparable](scale []T, v T) int {
	for i, s := range scale {
		if s == v {
			return i
		}
	}
	return -1
}
