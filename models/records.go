package models

// Qualifications accepted for an education record.
var Qualifications = []string{"10th", "12th", "Diploma"}

// EducationRecord is one row of the education step.
type EducationRecord struct {
	Institute     string  `json:"institute" bson:"institute"`
	Qualification string  `json:"qualification" bson:"qualification"`
	FromDate      string  `json:"fromDate" bson:"fromDate"`
	ToDate        string  `json:"toDate" bson:"toDate"`
	Marks         float64 `json:"marks" bson:"marks"`
}

// ExperienceRecord is one row of the experience step. Tenure is derived from
// the date pair and may carry an "Invalid: ..." sentinel.
type ExperienceRecord struct {
	Company    string  `json:"company" bson:"company"`
	Role       string  `json:"role" bson:"role"`
	FromDate   string  `json:"fromDate" bson:"fromDate"`
	ToDate     string  `json:"toDate" bson:"toDate"`
	Tenure     string  `json:"tenure" bson:"tenure"`
	LastIncome float64 `json:"lastIncome" bson:"lastIncome"`
}
