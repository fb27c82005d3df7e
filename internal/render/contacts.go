package render

// Contact is one support office students are referred to.
type Contact struct {
	Office string `json:"office"`
	Email  string `json:"email"`
}

// Contacts is the static support directory shown with every assessment.
type Contacts struct {
	Offices        []Contact `json:"offices"`
	CrisisLine     string    `json:"crisisLine"`
	CampusSecurity string    `json:"campusSecurity"`
}

func SupportContacts() Contacts {
	return Contacts{
		Offices: []Contact{
			{Office: "Academic Advising", Email: "advising@university.edu"},
			{Office: "Financial Aid", Email: "finaid@university.edu"},
			{Office: "Counseling Services", Email: "counseling@university.edu"},
			{Office: "Tutoring Center", Email: "tutoring@university.edu"},
			{Office: "Health Services", Email: "health@university.edu"},
			{Office: "Housing Office", Email: "housing@university.edu"},
		},
		CrisisLine:     "0800-HELP-NOW",
		CampusSecurity: "(123) 456-7890",
	}
}
