package wizard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"skillbridge/models"
)

// FieldSpec describes one input of a step schema. Validate runs only on
// non-empty values; Required produces its own message.
type FieldSpec struct {
	Name     string
	Required bool
	Validate func(string) string
}

// StepSpec is one entry of a flow's step table. The engine dispatches on it
// instead of switching on step indexes, so each variant is an explicit,
// exhaustively checkable schema.
type StepSpec struct {
	Label string

	// Phased marks the email verification step, whose sub-phases are gated by
	// the session's EmailPhase rather than the step index. Fields then holds
	// the schema of the final (details) sub-phase.
	Phased bool

	Fields []FieldSpec

	// Finalize runs after per-field validation passes. It may add cross-field
	// errors and canonicalize values in data before they merge into Collected.
	Finalize func(ses *models.WizardSession, data map[string]string) models.FieldErrors

	// Mount prepares step-local state when the step is entered.
	Mount func(ses *models.WizardSession)
}

const requiredMsg = "This field is required"

func stepsFor(role models.Role) []StepSpec {
	if role == models.RoleBusiness {
		return businessSteps
	}
	return jobSeekerSteps
}

// detailsFields is the shared schema of the details sub-phase of the email
// verification step.
func detailsFields(nameField string) []FieldSpec {
	return []FieldSpec{
		{Name: nameField, Required: true},
		{Name: models.FieldMobile, Required: true, Validate: ValidateMobile},
		{Name: models.FieldPassword, Required: true, Validate: ValidatePassword},
		{Name: "confirmPassword", Required: true},
	}
}

// finalizeDetails performs the cross-field checks of the details sub-phase and
// canonicalizes the mobile number to its wire form.
func finalizeDetails(_ *models.WizardSession, data map[string]string) models.FieldErrors {
	errs := models.FieldErrors{}
	if data["confirmPassword"] != data[models.FieldPassword] {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if len(errs) == 0 {
		data[models.FieldMobile] = FormatMobile(data[models.FieldMobile])
		delete(data, "confirmPassword")
	}
	return errs
}

var jobSeekerSteps = []StepSpec{
	{
		Label:    "EmailAndPersonal",
		Phased:   true,
		Fields:   detailsFields(models.FieldFullName),
		Finalize: finalizeDetails,
	},
	{
		Label: "JobRole",
		Fields: []FieldSpec{
			{Name: models.FieldJobRole, Required: true},
			{Name: models.FieldSector, Required: true},
			{Name: models.FieldExpectedSalary, Required: true, Validate: MinNumber(1)},
		},
	},
	{
		Label: "PersonalDetails",
		Fields: []FieldSpec{
			{Name: models.FieldDOB, Required: true, Validate: ValidateDate},
			{Name: models.FieldGender, Required: true},
			{Name: models.FieldAddress, Required: true},
			{Name: models.FieldBio},
		},
		Finalize: finalizePersonalDetails,
	},
	{
		Label:    "Education",
		Mount:    mountEducation,
		Finalize: finalizeEducation,
	},
	{
		Label:    "Experience",
		Mount:    mountExperience,
		Finalize: finalizeExperience,
	},
	{
		Label: "Preview",
	},
}

var businessSteps = []StepSpec{
	{
		Label: "OrganizationType",
		Fields: []FieldSpec{
			{Name: models.FieldOrgType, Required: true, Validate: OneOf(models.OrganizationTypes)},
		},
	},
	{
		Label:    "Signup",
		Phased:   true,
		Fields:   detailsFields(models.FieldContactName),
		Finalize: finalizeDetails,
	},
	{
		Label: "CompanyDetails",
		Fields: []FieldSpec{
			{Name: models.FieldCompanyName, Required: true},
			{Name: models.FieldWebsite, Validate: ValidateURL},
			{Name: models.FieldOpenings, Required: true, Validate: MinNumber(1)},
			{Name: models.FieldAbout},
		},
		Finalize: finalizeAbout,
	},
	{
		Label: "Preview",
	},
}

// finalizePersonalDetails enforces the minimum age and the bio word cap. A
// refused submission leaves Collected untouched, so an over-limit bio never
// replaces the stored value. The age derived from the date of birth is stored
// alongside it so the registration payload carries both.
func finalizePersonalDetails(_ *models.WizardSession, data map[string]string) models.FieldErrors {
	errs := models.FieldErrors{}
	if dob, ok := data[models.FieldDOB]; ok {
		age, err := ComputeAge(dob, time.Now())
		switch {
		case err != nil:
			errs[models.FieldDOB] = "Please enter a valid date"
		case age < 18:
			errs[models.FieldDOB] = "You must be at least 18 years old"
		default:
			data[models.FieldAge] = strconv.Itoa(age)
		}
	}
	if bio, ok := data[models.FieldBio]; ok {
		if n := CountWords(bio); n > MaxBioWords {
			errs[models.FieldBio] = fmt.Sprintf("Bio cannot exceed %d words (got %d)", MaxBioWords, n)
		}
	}
	return errs
}

func finalizeAbout(_ *models.WizardSession, data map[string]string) models.FieldErrors {
	errs := models.FieldErrors{}
	if about, ok := data[models.FieldAbout]; ok {
		if n := CountWords(about); n > MaxBioWords {
			errs[models.FieldAbout] = fmt.Sprintf("About cannot exceed %d words (got %d)", MaxBioWords, n)
		}
	}
	return errs
}

func mountEducation(ses *models.WizardSession) {
	ses.Education, ses.EducationErrors = blankEducation()
}

func mountExperience(ses *models.WizardSession) {
	ses.Experiences, ses.ExperienceErrors = blankExperience()
	ses.Fresher = false
}

// finalizeEducation revalidates every row and serializes the list into the
// collected data. Any row error refuses the transition.
func finalizeEducation(ses *models.WizardSession, data map[string]string) models.FieldErrors {
	for i, rec := range ses.Education {
		ses.EducationErrors[i] = validateEducation(rec)
	}
	if hasRowErrors(ses.EducationErrors) {
		return models.FieldErrors{models.FieldEducation: "Please fix the errors in the education rows"}
	}
	raw, err := json.Marshal(ses.Education)
	if err != nil {
		return models.FieldErrors{models.FieldEducation: "Could not encode education records"}
	}
	data[models.FieldEducation] = string(raw)
	return nil
}

// finalizeExperience serializes either the validated rows or the Fresher
// sentinel into the collected data.
func finalizeExperience(ses *models.WizardSession, data map[string]string) models.FieldErrors {
	if ses.Fresher {
		data[models.FieldExperiences] = models.FresherSentinel
		return nil
	}
	for i, rec := range ses.Experiences {
		ses.ExperienceErrors[i] = validateExperience(rec)
	}
	if hasRowErrors(ses.ExperienceErrors) {
		return models.FieldErrors{models.FieldExperiences: "Please fix the errors in the experience rows"}
	}
	raw, err := json.Marshal(ses.Experiences)
	if err != nil {
		return models.FieldErrors{models.FieldExperiences: "Could not encode experience records"}
	}
	data[models.FieldExperiences] = string(raw)
	return nil
}
