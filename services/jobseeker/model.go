package jobseeker

import (
	"context"

	jobseekerRepo "skillbridge/database/repository/jobseeker"
	"skillbridge/models"
	"skillbridge/services/notification"
	"skillbridge/services/storage"
	"skillbridge/utils"
)

// JobSeekerService defines business logic for job-seeker accounts.
type JobSeekerService interface {
	// SendEmailOTP checks availability of the email and emails a signup code.
	SendEmailOTP(ctx context.Context, email string) error
	// VerifyEmailOTP verifies a signup code for the email.
	VerifyEmailOTP(ctx context.Context, email, otp string) error
	// ResetEmailOTP clears OTP state so the verification flow can restart.
	ResetEmailOTP(ctx context.Context, email string) error
	// Register persists a parsed registration payload and returns auth state.
	Register(ctx context.Context, reg *models.RegistrationData) (*AuthResponse, error)
	// Authenticate verifies credentials and returns ID and token.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// ResetPassword drives the three-state OTP-based password reset flow.
	ResetPassword(ctx context.Context, email, providedOTP, newPassword string) error
	// GetByID retrieves a job-seeker profile by its unique ID.
	GetByID(id string) (*models.JobSeeker, error)
	// UpdateProfile applies profile changes.
	UpdateProfile(js models.JobSeeker) (*models.JobSeeker, error)
	// Delete removes an account.
	Delete(ctx context.Context, id string) error
	// RevokeAuthToken revokes the account's auth session (logout).
	RevokeAuthToken(ctx context.Context, id string) error
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// DefaultJobSeekerService is the production implementation.
type DefaultJobSeekerService struct {
	Repo    jobseekerRepo.JobSeekerRepository
	OTP     *utils.OTPStore
	Tokens  *utils.TokenStore
	Mailer  notification.Mailer
	Storage storage.Service
}
