package wizard

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"skillbridge/models"
	"skillbridge/services/storage"
	"skillbridge/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records gateway calls and replays configured outcomes.
type fakeGateway struct {
	sendCalls   int
	verifyCalls int
	resetCalls  int
	submitCalls int

	sendErr   error
	verifyErr error
	submitErr error

	lastEmail string
	lastReg   *models.RegistrationData
}

func (g *fakeGateway) SendEmailOTP(ctx context.Context, role models.Role, email string) error {
	g.sendCalls++
	g.lastEmail = email
	return g.sendErr
}

func (g *fakeGateway) VerifyEmailOTP(ctx context.Context, role models.Role, email, otp string) error {
	g.verifyCalls++
	return g.verifyErr
}

func (g *fakeGateway) ResetEmailOTP(ctx context.Context, role models.Role, email string) error {
	g.resetCalls++
	return nil
}

func (g *fakeGateway) SubmitRegistration(ctx context.Context, role models.Role, contentType string, body io.Reader) (*AuthResult, error) {
	g.submitCalls++
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	reg, err := ParseRegistrationPayload(contentType, body)
	if err != nil {
		return nil, err
	}
	g.lastReg = reg
	return &AuthResult{ID: "acct-1", Token: "tok-1"}, nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeGateway, *storage.MemoryService) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Minute)
	gw := &fakeGateway{}
	mem := storage.NewMemoryService()
	return NewEngine(store, gw, mem), gw, mem
}

// passEmailPhase walks the phased step: send, verify, details.
func passEmailPhase(t *testing.T, e *Engine, id, email, nameField, name string) {
	t.Helper()
	ctx := context.Background()

	res, err := e.Advance(ctx, id, map[string]string{models.FieldEmail: email})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Empty(t, res.Message)
	require.Equal(t, models.PhaseAwaitingOTP, res.Phase)

	res, err = e.Advance(ctx, id, map[string]string{"otp": "123456"})
	require.NoError(t, err)
	require.Empty(t, res.Message)
	require.Equal(t, models.PhaseAwaitingDetails, res.Phase)

	res, err = e.Advance(ctx, id, map[string]string{
		nameField:             name,
		models.FieldMobile:    "98765 43210",
		models.FieldPassword:  "secret1",
		"confirmPassword":     "secret1",
	})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.True(t, res.Advanced)
}

func TestStartSession(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	assert.NotEmpty(t, ses.ID)
	assert.Equal(t, 0, ses.CurrentStep)
	assert.Equal(t, models.PhaseAwaitingEmail, ses.Phase)
	assert.Empty(t, ses.Collected)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	assert.Equal(t, ses.ID, got.ID)

	_, err = e.Get(ctx, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEmailPhaseValidationShortCircuits(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	res, err := e.Advance(ctx, ses.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "This field is required", res.Errors[models.FieldEmail])
	assert.Zero(t, gw.sendCalls)

	res, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "not-an-email"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors[models.FieldEmail])
	assert.Zero(t, gw.sendCalls, "invalid email must never reach the gateway")

	res, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAwaitingOTP, res.Phase)
	assert.Equal(t, 1, gw.sendCalls)
	assert.Equal(t, "a@b.com", gw.lastEmail)
}

func TestEmailSendFailureStaysInPhase(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	gw.sendErr = errors.New("a job-seeker with this email already exists")
	res, err := e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "dup@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "a job-seeker with this email already exists", res.Message)
	assert.Equal(t, models.PhaseAwaitingEmail, res.Phase)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Collected[models.FieldEmail], "failed send must not record the email")
	assert.False(t, got.InFlight)
}

func TestOTPAttemptsCapAndRetreatResets(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	_, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	require.NoError(t, err)

	gw.verifyErr = utils.ErrOTPMismatch
	for i := 0; i < utils.MaxOTPAttempts; i++ {
		res, err := e.Advance(ctx, ses.ID, map[string]string{"otp": "000000"})
		require.NoError(t, err)
		assert.Equal(t, utils.ErrOTPMismatch.Error(), res.Message)
	}
	assert.Equal(t, utils.MaxOTPAttempts, gw.verifyCalls)

	// Budget exhausted: further attempts are refused without a gateway call.
	res, err := e.Advance(ctx, ses.ID, map[string]string{"otp": "000000"})
	require.NoError(t, err)
	assert.Equal(t, utils.ErrTooManyAttempts.Error(), res.Message)
	assert.Equal(t, utils.MaxOTPAttempts, gw.verifyCalls)

	// Retreating mid-verification resets the sub-flow and the budget.
	res, err = e.Retreat(ctx, ses.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAwaitingEmail, res.Phase)
	assert.Equal(t, 1, gw.resetCalls)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	assert.Zero(t, got.OTPAttempts)

	gw.verifyErr = nil
	_, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	require.NoError(t, err)
	res, err = e.Advance(ctx, ses.ID, map[string]string{"otp": "123456"})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAwaitingDetails, res.Phase)
}

func TestOTPFormatCheckedBeforeGateway(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	_, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	require.NoError(t, err)

	res, err := e.Advance(ctx, ses.ID, map[string]string{"otp": "12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors["otp"])
	assert.Zero(t, gw.verifyCalls)
}

func TestDetailsPhaseCanonicalizesMobile(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	_, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	require.NoError(t, err)
	_, err = e.Advance(ctx, ses.ID, map[string]string{"otp": "123456"})
	require.NoError(t, err)

	// Mismatched confirmation refuses the transition.
	res, err := e.Advance(ctx, ses.ID, map[string]string{
		models.FieldFullName: "X",
		models.FieldMobile:   "9876543210",
		models.FieldPassword: "secret1",
		"confirmPassword":    "other",
	})
	require.NoError(t, err)
	assert.Equal(t, "Passwords do not match", res.Errors["confirmPassword"])
	assert.False(t, res.Advanced)

	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldFullName: "X",
		models.FieldMobile:   "98765 43210",
		models.FieldPassword: "secret1",
		"confirmPassword":    "secret1",
	})
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, 1, res.Step)
	assert.Equal(t, "JobRole", res.Label)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Collected[models.FieldEmail])
	assert.Equal(t, "+919876543210", got.Collected[models.FieldMobile])
	assert.Equal(t, "X", got.Collected[models.FieldFullName])
	_, hasConfirm := got.Collected["confirmPassword"]
	assert.False(t, hasConfirm, "confirmation must not be collected")
}

func TestUnknownFieldsAreDropped(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	passEmailPhase(t, e, ses.ID, "a@b.com", models.FieldFullName, "X")

	res, err := e.Advance(ctx, ses.ID, map[string]string{
		models.FieldJobRole:        "Welder",
		models.FieldSector:         "Manufacturing",
		models.FieldExpectedSalary: "15000",
		"isAdmin":                  "true",
	})
	require.NoError(t, err)
	assert.True(t, res.Advanced)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	_, leaked := got.Collected["isAdmin"]
	assert.False(t, leaked, "unknown fields must never reach collected data")
}

func TestJobRoleStepValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	passEmailPhase(t, e, ses.ID, "a@b.com", models.FieldFullName, "X")

	res, err := e.Advance(ctx, ses.ID, map[string]string{
		models.FieldJobRole:        "Welder",
		models.FieldSector:         "Manufacturing",
		models.FieldExpectedSalary: "0",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors[models.FieldExpectedSalary])
	assert.False(t, res.Advanced)

	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldJobRole:        "Welder",
		models.FieldSector:         "Manufacturing",
		models.FieldExpectedSalary: "15000",
	})
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "PersonalDetails", res.Label)
}

func TestPersonalDetailsAgeAndBioCap(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	passEmailPhase(t, e, ses.ID, "a@b.com", models.FieldFullName, "X")
	_, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldJobRole:        "Welder",
		models.FieldSector:         "Manufacturing",
		models.FieldExpectedSalary: "15000",
	})
	require.NoError(t, err)

	minor := time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	res, err := e.Advance(ctx, ses.ID, map[string]string{
		models.FieldDOB:     minor,
		models.FieldGender:  "Female",
		models.FieldAddress: "12 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "You must be at least 18 years old", res.Errors[models.FieldDOB])

	overLimit := strings.TrimSpace(strings.Repeat("word ", MaxBioWords+5))
	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldDOB:     "2000-06-15",
		models.FieldGender:  "Female",
		models.FieldAddress: "12 Main St",
		models.FieldBio:     overLimit,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bio cannot exceed 700 words (got 705)", res.Errors[models.FieldBio])
	assert.False(t, res.Advanced)

	got, err := e.Get(ctx, ses.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Collected[models.FieldBio], "refused bio must not replace stored data")

	atLimit := strings.TrimSpace(strings.Repeat("word ", MaxBioWords))
	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldDOB:     "2000-06-15",
		models.FieldGender:  "Female",
		models.FieldAddress: "12 Main St",
		models.FieldBio:     atLimit,
	})
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "Education", res.Label)
}

func jobSeekerToEducation(t *testing.T, e *Engine) string {
	t.Helper()
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	passEmailPhase(t, e, ses.ID, "a@b.com", models.FieldFullName, "X")
	_, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldJobRole:        "Welder",
		models.FieldSector:         "Manufacturing",
		models.FieldExpectedSalary: "15000",
	})
	require.NoError(t, err)
	_, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldDOB:     "2000-06-15",
		models.FieldGender:  "Female",
		models.FieldAddress: "12 Main St",
	})
	require.NoError(t, err)
	return ses.ID
}

func TestPersonalDetailsStoresDerivedAge(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	want, err := ComputeAge("2000-06-15", time.Now())
	require.NoError(t, err)
	ses, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(want), ses.Collected[models.FieldAge])
}

func TestEducationStepRefusesInvalidRows(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Education, 1, "mount initializes one blank row")

	// The blank row is invalid, so the step refuses to advance.
	res, err := e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "Please fix the errors in the education rows", res.Errors[models.FieldEducation])

	got, err = e.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.EducationErrors, 1)
	assert.NotEmpty(t, got.EducationErrors[0]["institute"])

	_, err = e.UpdateEducationRow(ctx, id, 0, models.EducationRecord{
		Institute:     "Govt ITI Pune",
		Qualification: "Diploma",
		FromDate:      "2016-06-01",
		ToDate:        "2018-05-31",
		Marks:         78,
	})
	require.NoError(t, err)

	res, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "Experience", res.Label)

	got, err = e.Get(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, got.Collected[models.FieldEducation], "Govt ITI Pune")
}

func TestFresherFlowAndPreviewGuard(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	_, err := e.UpdateEducationRow(ctx, id, 0, models.EducationRecord{
		Institute:     "Govt ITI Pune",
		Qualification: "12th",
		FromDate:      "2016-06-01",
		ToDate:        "2018-05-31",
		Marks:         70,
	})
	require.NoError(t, err)
	_, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)

	_, err = e.SetFresher(ctx, id, true)
	require.NoError(t, err)
	res, err := e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "Preview", res.Label)

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.FresherSentinel, got.Collected[models.FieldExperiences])

	// The terminal step never advances.
	res, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	assert.Equal(t, ErrAtPreview.Error(), res.Message)
}

func TestRetreatRemountsLists(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	_, err := e.AddEducationRow(ctx, id)
	require.NoError(t, err)
	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Education, 2)

	// Retreat to PersonalDetails and come back: the scratch list resets.
	_, err = e.Retreat(ctx, id)
	require.NoError(t, err)
	_, err = e.Advance(ctx, id, map[string]string{
		models.FieldDOB:     "2000-06-15",
		models.FieldGender:  "Female",
		models.FieldAddress: "12 Main St",
	})
	require.NoError(t, err)

	got, err = e.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Education, 1)
}

func TestRetreatAtFirstStep(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	_, err = e.Retreat(ctx, ses.ID)
	assert.ErrorIs(t, err, ErrAtFirstStep)
}

func TestSubmitJobSeeker(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	// Submitting before the preview step is refused.
	_, err := e.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrNotAtPreview)

	_, err = e.UpdateEducationRow(ctx, id, 0, models.EducationRecord{
		Institute:     "Govt ITI Pune",
		Qualification: "10th",
		FromDate:      "2016-06-01",
		ToDate:        "2018-05-31",
		Marks:         66,
	})
	require.NoError(t, err)
	_, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)
	_, err = e.SetFresher(ctx, id, true)
	require.NoError(t, err)
	_, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)

	// External failure: session survives and may be resubmitted.
	gw.submitErr = errors.New("registration failed, please try again")
	res, err := e.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "registration failed, please try again", res.Message)
	assert.Nil(t, res.Auth)
	_, err = e.Get(ctx, id)
	require.NoError(t, err)

	gw.submitErr = nil
	res, err = e.Submit(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Auth)
	assert.Equal(t, "acct-1", res.Auth.ID)
	assert.Equal(t, "tok-1", res.Auth.Token)

	// The gateway saw the flattened wire format, including the derived age.
	require.NotNil(t, gw.lastReg)
	assert.Equal(t, "a@b.com", gw.lastReg.Fields[models.FieldEmail])
	assert.Equal(t, "+919876543210", gw.lastReg.Fields[models.FieldMobile])
	assert.Equal(t, "2000-06-15", gw.lastReg.Fields[models.FieldDOB])
	wantAge, err := ComputeAge("2000-06-15", time.Now())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(wantAge), gw.lastReg.Fields[models.FieldAge])
	assert.True(t, gw.lastReg.Fresher)
	require.Len(t, gw.lastReg.Education, 1)
	assert.Equal(t, "Govt ITI Pune", gw.lastReg.Education[0].Institute)

	// Session is torn down after success.
	_, err = e.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBusinessFlow(t *testing.T) {
	e, gw, _ := newTestEngine(t)
	ctx := context.Background()

	ses, err := e.Start(ctx, models.RoleBusiness)
	require.NoError(t, err)
	assert.Equal(t, "OrganizationType", stepsFor(ses.Role)[0].Label)

	res, err := e.Advance(ctx, ses.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "This field is required", res.Errors[models.FieldOrgType])

	res, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldOrgType: "Startup"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors[models.FieldOrgType])

	res, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldOrgType: "MSME"})
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "Signup", res.Label)

	passEmailPhase(t, e, ses.ID, "hr@acme.com", models.FieldContactName, "Priya")

	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldCompanyName: "Acme Tools",
		models.FieldWebsite:     "acme.com",
		models.FieldOpenings:    "4",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors[models.FieldWebsite])

	res, err = e.Advance(ctx, ses.ID, map[string]string{
		models.FieldCompanyName: "Acme Tools",
		models.FieldWebsite:     "https://acme.com",
		models.FieldOpenings:    "4",
		models.FieldAbout:       "We make tools.",
	})
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, "Preview", res.Label)

	res, err = e.Submit(ctx, ses.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Auth)

	require.NotNil(t, gw.lastReg)
	assert.Equal(t, "MSME", gw.lastReg.Fields[models.FieldOrgType])
	assert.Equal(t, "hr@acme.com", gw.lastReg.Fields[models.FieldEmail])
	assert.Equal(t, "Acme Tools", gw.lastReg.Fields[models.FieldCompanyName])
}

func TestInFlightGuard(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	ses, err := e.Start(ctx, models.RoleJobSeeker)
	require.NoError(t, err)

	ses.InFlight = true
	require.NoError(t, e.Store.Save(ctx, ses))

	_, err = e.Advance(ctx, ses.ID, map[string]string{models.FieldEmail: "a@b.com"})
	assert.ErrorIs(t, err, ErrRequestInFlight)
	_, err = e.Retreat(ctx, ses.ID)
	assert.ErrorIs(t, err, ErrRequestInFlight)
	_, err = e.Submit(ctx, ses.ID)
	assert.ErrorIs(t, err, ErrRequestInFlight)
}
