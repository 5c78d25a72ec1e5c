package models

import "time"

// Role identifies which onboarding flow a wizard session drives.
type Role string

const (
	RoleJobSeeker Role = "job-seeker"
	RoleBusiness  Role = "business"
)

// EmailPhase is the sub-phase of the email verification step. A session is in
// exactly one phase; later phases are only reachable through earlier ones, so
// "verified without a code having been sent" cannot be represented.
type EmailPhase string

const (
	PhaseAwaitingEmail   EmailPhase = "awaiting_email"
	PhaseAwaitingOTP     EmailPhase = "awaiting_otp"
	PhaseAwaitingDetails EmailPhase = "awaiting_details"
	PhaseComplete        EmailPhase = "complete"
)

// FieldErrors maps field names to user-facing validation messages.
// An empty map means the submission was accepted.
type FieldErrors map[string]string

// Attachment references a stored binary blob for one attachment slot, plus the
// preview resource derived from it (only set for image content types).
type Attachment struct {
	Slot        string `json:"slot"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	PreviewID   string `json:"previewId,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
}

// WizardSession is the full state of one onboarding flow instance. It is
// persisted in Redis between requests and mutated only by the wizard engine.
type WizardSession struct {
	ID          string     `json:"id"`
	Role        Role       `json:"role"`
	CurrentStep int        `json:"currentStep"`
	Phase       EmailPhase `json:"phase"`
	OTPAttempts int        `json:"otpAttempts"`

	// Collected accumulates validated step fields. Steps may add or override
	// fields; nothing is ever dropped from it.
	Collected map[string]string `json:"collected"`

	// Education and Experiences are scratch lists for their steps; they are
	// serialized into Collected when the step advances and re-initialized on
	// each step mount. Error lists stay index-aligned with their rows.
	Education        []EducationRecord  `json:"education,omitempty"`
	EducationErrors  []FieldErrors      `json:"educationErrors,omitempty"`
	Experiences      []ExperienceRecord `json:"experiences,omitempty"`
	ExperienceErrors []FieldErrors      `json:"experienceErrors,omitempty"`
	Fresher          bool               `json:"fresher"`

	Attachments map[string]Attachment `json:"attachments,omitempty"`

	// InFlight guards against concurrent submissions from the same step.
	InFlight bool `json:"inFlight"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
