package wizard

import (
	"context"
	"io"

	"skillbridge/models"
)

// Gateway is the external auth collaborator the wizard depends on. OTP send
// and verify for an email are sequenced by the session's phase, not by
// request-level locking.
type Gateway interface {
	SendEmailOTP(ctx context.Context, role models.Role, email string) error
	VerifyEmailOTP(ctx context.Context, role models.Role, email, otp string) error
	ResetEmailOTP(ctx context.Context, role models.Role, email string) error
	SubmitRegistration(ctx context.Context, role models.Role, contentType string, body io.Reader) (*AuthResult, error)
}

// AuthResult is the terminal artifact of a successful registration.
type AuthResult struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// StepResult reports the outcome of a transition attempt. Errors holds
// per-field validation messages; Message carries a step-level or external
// failure verbatim. Both empty means the transition was applied.
type StepResult struct {
	SessionID string             `json:"sessionId"`
	Step      int                `json:"step"`
	Label     string             `json:"label"`
	Phase     models.EmailPhase  `json:"phase,omitempty"`
	Advanced  bool               `json:"advanced"`
	Errors    models.FieldErrors `json:"errors,omitempty"`
	Message   string             `json:"message,omitempty"`
	Auth      *AuthResult        `json:"auth,omitempty"`
}

// ListResult reports a record list after a mutation, with the error list kept
// index-aligned to the rows.
type ListResult struct {
	Education        []models.EducationRecord  `json:"education,omitempty"`
	EducationErrors  []models.FieldErrors      `json:"educationErrors,omitempty"`
	Experiences      []models.ExperienceRecord `json:"experiences,omitempty"`
	ExperienceErrors []models.FieldErrors      `json:"experienceErrors,omitempty"`
	Fresher          bool                      `json:"fresher"`
}

// Service drives the onboarding wizard flows.
type Service interface {
	Start(ctx context.Context, role models.Role) (*models.WizardSession, error)
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Advance(ctx context.Context, id string, stepData map[string]string) (*StepResult, error)
	Retreat(ctx context.Context, id string) (*StepResult, error)
	Submit(ctx context.Context, id string) (*StepResult, error)

	AddEducationRow(ctx context.Context, id string) (*ListResult, error)
	UpdateEducationRow(ctx context.Context, id string, index int, rec models.EducationRecord) (*ListResult, error)
	RemoveEducationRow(ctx context.Context, id string, index int) (*ListResult, error)
	AddExperienceRow(ctx context.Context, id string) (*ListResult, error)
	UpdateExperienceRow(ctx context.Context, id string, index int, rec models.ExperienceRecord) (*ListResult, error)
	RemoveExperienceRow(ctx context.Context, id string, index int) (*ListResult, error)
	SetFresher(ctx context.Context, id string, fresher bool) (*ListResult, error)

	Attach(ctx context.Context, id, slot, fileName, contentType string, data []byte) (*models.Attachment, error)
	Detach(ctx context.Context, id, slot string) error
}
