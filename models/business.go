package models

import "time"

// OrganizationTypes accepted for a business account.
var OrganizationTypes = []string{"Company", "MSME", "NGO", "Training Partner"}

// Business is a registered recruiter/business account.
type Business struct {
	ID               string `json:"id" bson:"id"`
	OrganizationType string `json:"organizationType" bson:"organizationType"`
	ContactName      string `json:"contactName" bson:"contactName"`
	Email            string `json:"email" bson:"email"`
	Mobile           string `json:"mobile" bson:"mobile"`
	PasswordHash     string `json:"-" bson:"password_hash"`

	CompanyName string `json:"companyName" bson:"companyName"`
	Website     string `json:"website,omitempty" bson:"website,omitempty"`
	Openings    int    `json:"openings" bson:"openings"`
	About       string `json:"about,omitempty" bson:"about,omitempty"`

	// Stored attachment references (storage public IDs), keyed by slot.
	Documents map[string]string `json:"documents,omitempty" bson:"documents,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
