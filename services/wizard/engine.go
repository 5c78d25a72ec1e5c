package wizard

import (
	"context"
	"strings"
	"time"

	"skillbridge/models"
	"skillbridge/services/storage"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the production wizard service. All session mutations funnel
// through it; nothing else writes collected data.
type Engine struct {
	Store   SessionStore
	Gateway Gateway
	Storage storage.Service
}

// NewEngine creates a wizard engine.
func NewEngine(store SessionStore, gateway Gateway, storageSvc storage.Service) *Engine {
	return &Engine{Store: store, Gateway: gateway, Storage: storageSvc}
}

// Start creates a fresh session for the given flow: step 0, empty collected
// data, email phase at its initial sub-phase.
func (e *Engine) Start(ctx context.Context, role models.Role) (*models.WizardSession, error) {
	ses := &models.WizardSession{
		ID:          uuid.New().String(),
		Role:        role,
		CurrentStep: 0,
		Phase:       models.PhaseAwaitingEmail,
		Collected:   map[string]string{},
		Attachments: map[string]models.Attachment{},
		CreatedAt:   time.Now(),
	}
	if spec := stepsFor(role)[0]; spec.Mount != nil {
		spec.Mount(ses)
	}
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return ses, nil
}

// Get returns the current session state.
func (e *Engine) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	return e.Store.Get(ctx, id)
}

func (e *Engine) result(ses *models.WizardSession) *StepResult {
	steps := stepsFor(ses.Role)
	return &StepResult{
		SessionID: ses.ID,
		Step:      ses.CurrentStep,
		Label:     steps[ses.CurrentStep].Label,
		Phase:     ses.Phase,
	}
}

// Advance attempts the current step's transition with the submitted data.
// Validation failures are returned in the result, never as Go errors, and
// leave the step unchanged.
func (e *Engine) Advance(ctx context.Context, id string, stepData map[string]string) (*StepResult, error) {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ses.InFlight {
		return nil, ErrRequestInFlight
	}
	if stepData == nil {
		stepData = map[string]string{}
	}

	steps := stepsFor(ses.Role)
	spec := steps[ses.CurrentStep]

	if spec.Phased && ses.Phase != models.PhaseComplete {
		return e.advancePhase(ctx, ses, spec, stepData)
	}

	res := e.result(ses)
	if ses.CurrentStep == len(steps)-1 {
		res.Message = ErrAtPreview.Error()
		return res, nil
	}

	data := filterFields(spec.Fields, stepData)
	errs := validateFields(spec.Fields, data)
	if len(errs) == 0 && spec.Finalize != nil {
		for k, v := range spec.Finalize(ses, data) {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		// Persist row error lists updated by Finalize so they render aligned.
		if err := e.Store.Save(ctx, ses); err != nil {
			return nil, err
		}
		res.Errors = errs
		return res, nil
	}

	mergeCollected(ses, data)
	ses.CurrentStep++
	if next := steps[ses.CurrentStep]; next.Mount != nil {
		next.Mount(ses)
	}
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}

	res = e.result(ses)
	res.Advanced = true
	return res, nil
}

// advancePhase handles the email verification step's sub-phases. The phase
// gate sequences OTP send before verify; no request-level locking is needed.
func (e *Engine) advancePhase(ctx context.Context, ses *models.WizardSession, spec StepSpec, data map[string]string) (*StepResult, error) {
	res := e.result(ses)

	switch ses.Phase {
	case models.PhaseAwaitingEmail:
		email := strings.TrimSpace(data[models.FieldEmail])
		if email == "" {
			res.Errors = models.FieldErrors{models.FieldEmail: requiredMsg}
			return res, nil
		}
		if msg := ValidateEmail(email); msg != "" {
			// Short-circuits before any gateway call.
			res.Errors = models.FieldErrors{models.FieldEmail: msg}
			return res, nil
		}
		sendErr := e.withInFlight(ctx, ses, func() error {
			return e.Gateway.SendEmailOTP(ctx, ses.Role, email)
		})
		if sendErr != nil {
			res.Message = sendErr.Error()
			return res, nil
		}
		ses.Collected[models.FieldEmail] = email
		ses.Phase = models.PhaseAwaitingOTP
		if err := e.Store.Save(ctx, ses); err != nil {
			return nil, err
		}
		res.Phase = ses.Phase
		return res, nil

	case models.PhaseAwaitingOTP:
		if ses.OTPAttempts >= utils.MaxOTPAttempts {
			res.Message = utils.ErrTooManyAttempts.Error()
			return res, nil
		}
		otp := strings.TrimSpace(data["otp"])
		if otp == "" {
			res.Errors = models.FieldErrors{"otp": requiredMsg}
			return res, nil
		}
		if msg := ValidateOTP(otp); msg != "" {
			res.Errors = models.FieldErrors{"otp": msg}
			return res, nil
		}
		verifyErr := e.withInFlight(ctx, ses, func() error {
			return e.Gateway.VerifyEmailOTP(ctx, ses.Role, ses.Collected[models.FieldEmail], otp)
		})
		if verifyErr != nil {
			ses.OTPAttempts++
			if err := e.Store.Save(ctx, ses); err != nil {
				return nil, err
			}
			res.Message = verifyErr.Error()
			return res, nil
		}
		ses.Phase = models.PhaseAwaitingDetails
		ses.OTPAttempts = 0
		if err := e.Store.Save(ctx, ses); err != nil {
			return nil, err
		}
		res.Phase = ses.Phase
		return res, nil

	default: // models.PhaseAwaitingDetails
		details := filterFields(spec.Fields, data)
		errs := validateFields(spec.Fields, details)
		if len(errs) == 0 && spec.Finalize != nil {
			for k, v := range spec.Finalize(ses, details) {
				errs[k] = v
			}
		}
		if len(errs) > 0 {
			res.Errors = errs
			return res, nil
		}
		mergeCollected(ses, details)
		ses.Phase = models.PhaseComplete
		ses.CurrentStep++
		steps := stepsFor(ses.Role)
		if next := steps[ses.CurrentStep]; next.Mount != nil {
			next.Mount(ses)
		}
		if err := e.Store.Save(ctx, ses); err != nil {
			return nil, err
		}
		res = e.result(ses)
		res.Advanced = true
		return res, nil
	}
}

// Retreat moves one step back without validation. Collected data is kept; the
// record-list steps re-initialize on mount. Retreating while the email step is
// mid-verification resets the sub-flow (and the OTP attempt budget) instead.
func (e *Engine) Retreat(ctx context.Context, id string) (*StepResult, error) {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ses.InFlight {
		return nil, ErrRequestInFlight
	}

	steps := stepsFor(ses.Role)
	spec := steps[ses.CurrentStep]
	if spec.Phased && (ses.Phase == models.PhaseAwaitingOTP || ses.Phase == models.PhaseAwaitingDetails) {
		if email := ses.Collected[models.FieldEmail]; email != "" {
			if err := e.Gateway.ResetEmailOTP(ctx, ses.Role, email); err != nil {
				utils.GetLogger().Warn("Failed to reset OTP state", zap.String("sessionID", id), zap.Error(err))
			}
		}
		ses.Phase = models.PhaseAwaitingEmail
		ses.OTPAttempts = 0
		if err := e.Store.Save(ctx, ses); err != nil {
			return nil, err
		}
		return e.result(ses), nil
	}

	if ses.CurrentStep == 0 {
		return nil, ErrAtFirstStep
	}
	ses.CurrentStep--
	if prev := steps[ses.CurrentStep]; prev.Mount != nil {
		prev.Mount(ses)
	}
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.result(ses), nil
}

// Submit assembles the registration payload and hands it to the gateway. On
// success the session is torn down; on failure it stays at the preview step
// and may be resubmitted without re-entering data.
func (e *Engine) Submit(ctx context.Context, id string) (*StepResult, error) {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ses.InFlight {
		return nil, ErrRequestInFlight
	}
	steps := stepsFor(ses.Role)
	if ses.CurrentStep != len(steps)-1 {
		return nil, ErrNotAtPreview
	}

	contentType, body, err := BuildRegistrationPayload(ctx, e.Store, ses)
	if err != nil {
		return nil, err
	}

	res := e.result(ses)
	var auth *AuthResult
	submitErr := e.withInFlight(ctx, ses, func() error {
		var err error
		auth, err = e.Gateway.SubmitRegistration(ctx, ses.Role, contentType, body)
		return err
	})
	if submitErr != nil {
		res.Message = submitErr.Error()
		return res, nil
	}

	e.teardown(ctx, ses)
	res.Auth = auth
	return res, nil
}

// withInFlight marks the session busy for the duration of an external call so
// concurrent submissions from the same step are refused.
func (e *Engine) withInFlight(ctx context.Context, ses *models.WizardSession, call func() error) error {
	ses.InFlight = true
	if err := e.Store.Save(ctx, ses); err != nil {
		ses.InFlight = false
		return err
	}
	callErr := call()
	ses.InFlight = false
	if err := e.Store.Save(ctx, ses); err != nil {
		utils.GetLogger().Error("Failed to clear in-flight flag", zap.String("sessionID", ses.ID), zap.Error(err))
	}
	return callErr
}

// teardown releases every attachment preview, deletes the blobs and removes
// the session. The payload is not retained after it is handed to the gateway.
func (e *Engine) teardown(ctx context.Context, ses *models.WizardSession) {
	logger := utils.GetLogger()
	for slot, att := range ses.Attachments {
		if att.PreviewID != "" {
			if err := e.Storage.Delete(ctx, att.PreviewID); err != nil {
				logger.Warn("Failed to release attachment preview", zap.String("slot", slot), zap.Error(err))
			}
		}
		if err := e.Store.DeleteBlob(ctx, ses.ID, slot); err != nil {
			logger.Warn("Failed to delete attachment blob", zap.String("slot", slot), zap.Error(err))
		}
	}
	if err := e.Store.Delete(ctx, ses.ID); err != nil {
		logger.Warn("Failed to delete wizard session", zap.String("sessionID", ses.ID), zap.Error(err))
	}
}

// filterFields keeps only the step schema's fields, trimmed. Unknown fields
// never reach the collected data.
func filterFields(fields []FieldSpec, data map[string]string) map[string]string {
	out := map[string]string{}
	for _, f := range fields {
		if v, ok := data[f.Name]; ok {
			out[f.Name] = strings.TrimSpace(v)
		}
	}
	return out
}

// validateFields runs the step schema's per-field validators over submitted
// data. Format validators only run on non-empty values.
func validateFields(fields []FieldSpec, data map[string]string) models.FieldErrors {
	errs := models.FieldErrors{}
	for _, f := range fields {
		v := strings.TrimSpace(data[f.Name])
		if v == "" {
			if f.Required {
				errs[f.Name] = requiredMsg
			}
			continue
		}
		if f.Validate != nil {
			if msg := f.Validate(v); msg != "" {
				errs[f.Name] = msg
			}
		}
	}
	return errs
}

// mergeCollected merges validated step data into the session. Fields are only
// ever added or overridden, never dropped.
func mergeCollected(ses *models.WizardSession, data map[string]string) {
	if ses.Collected == nil {
		ses.Collected = map[string]string{}
	}
	for k, v := range data {
		ses.Collected[k] = v
	}
}
