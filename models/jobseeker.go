package models

import "time"

// JobSeeker is a registered candidate account.
type JobSeeker struct {
	ID           string `json:"id" bson:"id"`
	FullName     string `json:"fullName" bson:"fullName"`
	Email        string `json:"email" bson:"email"`
	Mobile       string `json:"mobile" bson:"mobile"`
	PasswordHash string `json:"-" bson:"password_hash"`

	JobRole        string  `json:"jobRole" bson:"jobRole"`
	Sector         string  `json:"sector" bson:"sector"`
	ExpectedSalary float64 `json:"expectedSalary" bson:"expectedSalary"`

	DOB     string `json:"dob" bson:"dob"`
	Age     int    `json:"age" bson:"age"`
	Gender  string `json:"gender" bson:"gender"`
	Address string `json:"address" bson:"address"`
	Bio     string `json:"bio,omitempty" bson:"bio,omitempty"`

	Education   []EducationRecord  `json:"education" bson:"education"`
	Experiences []ExperienceRecord `json:"experiences,omitempty" bson:"experiences,omitempty"`
	Fresher     bool               `json:"fresher" bson:"fresher"`

	// Stored attachment references (storage public IDs), keyed by slot.
	Documents map[string]string `json:"documents,omitempty" bson:"documents,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
