package gateway

import (
	"context"
	"fmt"
	"io"

	"skillbridge/models"
	"skillbridge/services/business"
	"skillbridge/services/jobseeker"
	"skillbridge/services/wizard"
)

// AuthGateway binds the wizard to the role account services. Each wizard
// session carries a role, and the gateway dispatches OTP and registration
// calls to the matching service.
type AuthGateway struct {
	JobSeekers jobseeker.JobSeekerService
	Businesses business.BusinessService
}

// NewAuthGateway wires the role services into a wizard.Gateway.
func NewAuthGateway(js jobseeker.JobSeekerService, b business.BusinessService) *AuthGateway {
	return &AuthGateway{JobSeekers: js, Businesses: b}
}

var _ wizard.Gateway = (*AuthGateway)(nil)

func (g *AuthGateway) SendEmailOTP(ctx context.Context, role models.Role, email string) error {
	switch role {
	case models.RoleJobSeeker:
		return g.JobSeekers.SendEmailOTP(ctx, email)
	case models.RoleBusiness:
		return g.Businesses.SendEmailOTP(ctx, email)
	}
	return fmt.Errorf("unknown role: %s", role)
}

func (g *AuthGateway) VerifyEmailOTP(ctx context.Context, role models.Role, email, otp string) error {
	switch role {
	case models.RoleJobSeeker:
		return g.JobSeekers.VerifyEmailOTP(ctx, email, otp)
	case models.RoleBusiness:
		return g.Businesses.VerifyEmailOTP(ctx, email, otp)
	}
	return fmt.Errorf("unknown role: %s", role)
}

func (g *AuthGateway) ResetEmailOTP(ctx context.Context, role models.Role, email string) error {
	switch role {
	case models.RoleJobSeeker:
		return g.JobSeekers.ResetEmailOTP(ctx, email)
	case models.RoleBusiness:
		return g.Businesses.ResetEmailOTP(ctx, email)
	}
	return fmt.Errorf("unknown role: %s", role)
}

// SubmitRegistration decodes the multipart registration payload and registers
// the account with the role service.
func (g *AuthGateway) SubmitRegistration(ctx context.Context, role models.Role, contentType string, body io.Reader) (*wizard.AuthResult, error) {
	reg, err := wizard.ParseRegistrationPayload(contentType, body)
	if err != nil {
		return nil, fmt.Errorf("invalid registration payload: %w", err)
	}

	switch role {
	case models.RoleJobSeeker:
		resp, err := g.JobSeekers.Register(ctx, reg)
		if err != nil {
			return nil, err
		}
		return &wizard.AuthResult{ID: resp.ID, Token: resp.Token}, nil
	case models.RoleBusiness:
		resp, err := g.Businesses.Register(ctx, reg)
		if err != nil {
			return nil, err
		}
		return &wizard.AuthResult{ID: resp.ID, Token: resp.Token}, nil
	}
	return nil, fmt.Errorf("unknown role: %s", role)
}
