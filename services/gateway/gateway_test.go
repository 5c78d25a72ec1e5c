package gateway

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"skillbridge/models"
	"skillbridge/services/business"
	"skillbridge/services/jobseeker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJobSeekerService records the calls the gateway dispatches to it.
type stubJobSeekerService struct {
	jobseeker.JobSeekerService

	sentTo  string
	lastReg *models.RegistrationData
	regErr  error
}

func (s *stubJobSeekerService) SendEmailOTP(ctx context.Context, email string) error {
	s.sentTo = email
	return nil
}

func (s *stubJobSeekerService) VerifyEmailOTP(ctx context.Context, email, otp string) error {
	return nil
}

func (s *stubJobSeekerService) ResetEmailOTP(ctx context.Context, email string) error {
	return nil
}

func (s *stubJobSeekerService) Register(ctx context.Context, reg *models.RegistrationData) (*jobseeker.AuthResponse, error) {
	if s.regErr != nil {
		return nil, s.regErr
	}
	s.lastReg = reg
	return &jobseeker.AuthResponse{ID: "js-1", Token: "js-tok"}, nil
}

type stubBusinessService struct {
	business.BusinessService

	sentTo string
}

func (s *stubBusinessService) SendEmailOTP(ctx context.Context, email string) error {
	s.sentTo = email
	return nil
}

func (s *stubBusinessService) Register(ctx context.Context, reg *models.RegistrationData) (*business.AuthResponse, error) {
	return &business.AuthResponse{ID: "biz-1", Token: "biz-tok"}, nil
}

func multipartBody(t *testing.T, fields map[string]string) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType(), &buf
}

func TestGatewayDispatchesByRole(t *testing.T) {
	js := &stubJobSeekerService{}
	biz := &stubBusinessService{}
	gw := NewAuthGateway(js, biz)
	ctx := context.Background()

	require.NoError(t, gw.SendEmailOTP(ctx, models.RoleJobSeeker, "a@b.com"))
	assert.Equal(t, "a@b.com", js.sentTo)
	assert.Empty(t, biz.sentTo)

	require.NoError(t, gw.SendEmailOTP(ctx, models.RoleBusiness, "hr@acme.com"))
	assert.Equal(t, "hr@acme.com", biz.sentTo)

	err := gw.SendEmailOTP(ctx, models.Role("admin"), "x@y.com")
	assert.Error(t, err)
}

func TestGatewaySubmitRegistration(t *testing.T) {
	js := &stubJobSeekerService{}
	gw := NewAuthGateway(js, &stubBusinessService{})
	ctx := context.Background()

	contentType, body := multipartBody(t, map[string]string{
		models.FieldEmail:       "a@b.com",
		models.FieldFullName:    "X",
		models.FieldExperiences: models.FresherSentinel,
	})

	auth, err := gw.SubmitRegistration(ctx, models.RoleJobSeeker, contentType, body)
	require.NoError(t, err)
	assert.Equal(t, "js-1", auth.ID)
	assert.Equal(t, "js-tok", auth.Token)

	require.NotNil(t, js.lastReg)
	assert.Equal(t, "a@b.com", js.lastReg.Fields[models.FieldEmail])
	assert.True(t, js.lastReg.Fresher)
}

func TestGatewaySubmitRegistrationErrors(t *testing.T) {
	js := &stubJobSeekerService{regErr: errors.New("a job-seeker with this email already exists")}
	gw := NewAuthGateway(js, &stubBusinessService{})
	ctx := context.Background()

	contentType, body := multipartBody(t, map[string]string{models.FieldEmail: "a@b.com"})
	_, err := gw.SubmitRegistration(ctx, models.RoleJobSeeker, contentType, body)
	assert.EqualError(t, err, "a job-seeker with this email already exists")

	// A malformed body is rejected before any service call.
	_, err = gw.SubmitRegistration(ctx, models.RoleJobSeeker, "text/plain", bytes.NewBufferString("x"))
	assert.Error(t, err)
}
