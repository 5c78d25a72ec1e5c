package wizard

import (
	"context"

	"skillbridge/models"
)

const (
	labelEducation  = "Education"
	labelExperience = "Experience"
)

func (e *Engine) listResult(ses *models.WizardSession) *ListResult {
	return &ListResult{
		Education:        ses.Education,
		EducationErrors:  ses.EducationErrors,
		Experiences:      ses.Experiences,
		ExperienceErrors: ses.ExperienceErrors,
		Fresher:          ses.Fresher,
	}
}

// onStep loads the session and checks that the expected step is mounted.
func (e *Engine) onStep(ctx context.Context, id, label string) (*models.WizardSession, error) {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if stepsFor(ses.Role)[ses.CurrentStep].Label != label {
		return nil, ErrWrongStep
	}
	return ses, nil
}

// AddEducationRow appends a blank row with an aligned blank error entry.
func (e *Engine) AddEducationRow(ctx context.Context, id string) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelEducation)
	if err != nil {
		return nil, err
	}
	ses.Education = append(ses.Education, models.EducationRecord{})
	ses.EducationErrors = append(ses.EducationErrors, models.FieldErrors{})
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// UpdateEducationRow replaces row i and revalidates it in place.
func (e *Engine) UpdateEducationRow(ctx context.Context, id string, index int, rec models.EducationRecord) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelEducation)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ses.Education) {
		return nil, ErrInvalidIndex
	}
	ses.Education[index] = rec
	ses.EducationErrors[index] = validateEducation(rec)
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// RemoveEducationRow drops row i. Remaining rows keep their relative order and
// the error list is re-indexed identically.
func (e *Engine) RemoveEducationRow(ctx context.Context, id string, index int) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelEducation)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ses.Education) {
		return nil, ErrInvalidIndex
	}
	ses.Education = removeAt(ses.Education, index)
	ses.EducationErrors = removeAt(ses.EducationErrors, index)
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// AddExperienceRow appends a blank row with an aligned blank error entry.
func (e *Engine) AddExperienceRow(ctx context.Context, id string) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelExperience)
	if err != nil {
		return nil, err
	}
	ses.Experiences = append(ses.Experiences, models.ExperienceRecord{})
	ses.ExperienceErrors = append(ses.ExperienceErrors, models.FieldErrors{})
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// UpdateExperienceRow replaces row i, derives its tenure and revalidates it.
func (e *Engine) UpdateExperienceRow(ctx context.Context, id string, index int, rec models.ExperienceRecord) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelExperience)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ses.Experiences) {
		return nil, ErrInvalidIndex
	}
	rec.Tenure = ComputeTenure(rec.FromDate, rec.ToDate)
	ses.Experiences[index] = rec
	ses.ExperienceErrors[index] = validateExperience(rec)
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// RemoveExperienceRow drops row i, re-indexing rows and errors together.
func (e *Engine) RemoveExperienceRow(ctx context.Context, id string, index int) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelExperience)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ses.Experiences) {
		return nil, ErrInvalidIndex
	}
	ses.Experiences = removeAt(ses.Experiences, index)
	ses.ExperienceErrors = removeAt(ses.ExperienceErrors, index)
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}

// SetFresher toggles the "no prior employment" sentinel for the experience step.
func (e *Engine) SetFresher(ctx context.Context, id string, fresher bool) (*ListResult, error) {
	ses, err := e.onStep(ctx, id, labelExperience)
	if err != nil {
		return nil, err
	}
	ses.Fresher = fresher
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return e.listResult(ses), nil
}
