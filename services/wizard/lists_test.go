package wizard

import (
	"context"
	"testing"

	"skillbridge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobSeekerToExperience(t *testing.T, e *Engine) string {
	t.Helper()
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)
	_, err := e.UpdateEducationRow(ctx, id, 0, models.EducationRecord{
		Institute:     "Govt ITI Pune",
		Qualification: "10th",
		FromDate:      "2014-06-01",
		ToDate:        "2016-05-31",
		Marks:         60,
	})
	require.NoError(t, err)
	_, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)
	return id
}

func TestRowOpsRequireMatchingStep(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	_, err := e.AddExperienceRow(ctx, id)
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = e.SetFresher(ctx, id, true)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestEducationRowIndexBounds(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	_, err := e.UpdateEducationRow(ctx, id, 5, models.EducationRecord{})
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = e.RemoveEducationRow(ctx, id, -1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestRemovalKeepsErrorsAligned(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToEducation(t, e)

	// Row 0 valid, row 1 invalid, row 2 valid.
	_, err := e.UpdateEducationRow(ctx, id, 0, models.EducationRecord{
		Institute:     "Govt ITI Pune",
		Qualification: "10th",
		FromDate:      "2014-06-01",
		ToDate:        "2016-05-31",
		Marks:         60,
	})
	require.NoError(t, err)
	_, err = e.AddEducationRow(ctx, id)
	require.NoError(t, err)
	res, err := e.UpdateEducationRow(ctx, id, 1, models.EducationRecord{
		Institute:     "",
		Qualification: "Diploma",
		FromDate:      "2018-06-01",
		ToDate:        "2017-05-31",
		Marks:         50,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.EducationErrors[1]["institute"])
	assert.NotEmpty(t, res.EducationErrors[1]["toDate"])

	_, err = e.AddEducationRow(ctx, id)
	require.NoError(t, err)
	res, err = e.UpdateEducationRow(ctx, id, 2, models.EducationRecord{
		Institute:     "NSTI Mumbai",
		Qualification: "Diploma",
		FromDate:      "2018-06-01",
		ToDate:        "2020-05-31",
		Marks:         82,
	})
	require.NoError(t, err)
	require.Len(t, res.Education, 3)
	require.Len(t, res.EducationErrors, 3)

	// Removing the middle row shifts both lists identically.
	res, err = e.RemoveEducationRow(ctx, id, 1)
	require.NoError(t, err)
	require.Len(t, res.Education, 2)
	require.Len(t, res.EducationErrors, 2)
	assert.Equal(t, "Govt ITI Pune", res.Education[0].Institute)
	assert.Equal(t, "NSTI Mumbai", res.Education[1].Institute)
	assert.Empty(t, res.EducationErrors[0])
	assert.Empty(t, res.EducationErrors[1])
}

func TestExperienceRowDerivesTenure(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToExperience(t, e)

	res, err := e.UpdateExperienceRow(ctx, id, 0, models.ExperienceRecord{
		Company:    "Tata Motors",
		Role:       "Fitter",
		FromDate:   "2020-01-10",
		ToDate:     "2023-04-15",
		LastIncome: 18000,
	})
	require.NoError(t, err)
	assert.Equal(t, "3 years, 3 months", res.Experiences[0].Tenure)
	assert.Empty(t, res.ExperienceErrors[0])

	// A reversed range surfaces through the tenure sentinel as a date error.
	res, err = e.UpdateExperienceRow(ctx, id, 0, models.ExperienceRecord{
		Company:    "Tata Motors",
		Role:       "Fitter",
		FromDate:   "2023-04-15",
		ToDate:     "2020-01-10",
		LastIncome: 18000,
	})
	require.NoError(t, err)
	assert.Equal(t, TenureInvalidOrder, res.Experiences[0].Tenure)
	assert.Equal(t, "To Date cannot be before From Date", res.ExperienceErrors[0]["toDate"])
}

func TestExperienceStepSerializesRows(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToExperience(t, e)

	// The initial blank row refuses the transition.
	res, err := e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "Please fix the errors in the experience rows", res.Errors[models.FieldExperiences])

	_, err = e.UpdateExperienceRow(ctx, id, 0, models.ExperienceRecord{
		Company:    "Tata Motors",
		Role:       "Fitter",
		FromDate:   "2020-01-10",
		ToDate:     "2023-04-15",
		LastIncome: 18000,
	})
	require.NoError(t, err)

	res, err = e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.True(t, res.Advanced)

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, got.Collected[models.FieldExperiences], "Tata Motors")
	assert.Contains(t, got.Collected[models.FieldExperiences], "3 years, 3 months")
}

func TestFresherSkipsRowValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	id := jobSeekerToExperience(t, e)

	res, err := e.SetFresher(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, res.Fresher)

	// Rows stay blank and invalid, but the sentinel bypasses them.
	stepRes, err := e.Advance(ctx, id, nil)
	require.NoError(t, err)
	assert.True(t, stepRes.Advanced)

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.FresherSentinel, got.Collected[models.FieldExperiences])
}
