package wizard

import (
	"skillbridge/models"
)

// blankEducation returns the initial education list for a freshly mounted
// step: one empty row with an aligned empty error entry.
func blankEducation() ([]models.EducationRecord, []models.FieldErrors) {
	return []models.EducationRecord{{}}, []models.FieldErrors{{}}
}

func blankExperience() ([]models.ExperienceRecord, []models.FieldErrors) {
	return []models.ExperienceRecord{{}}, []models.FieldErrors{{}}
}

// validateEducation checks one education row.
func validateEducation(rec models.EducationRecord) models.FieldErrors {
	errs := models.FieldErrors{}
	if rec.Institute == "" {
		errs["institute"] = "This field is required"
	}
	if msg := OneOf(models.Qualifications)(rec.Qualification); msg != "" {
		errs["qualification"] = msg
	}
	if msg := ValidateDate(rec.FromDate); msg != "" {
		errs["fromDate"] = msg
	}
	if msg := ValidateDate(rec.ToDate); msg != "" {
		errs["toDate"] = msg
	}
	if len(errs) == 0 && IsInvalidTenure(ComputeTenure(rec.FromDate, rec.ToDate)) {
		errs["toDate"] = "To Date cannot be before From Date"
	}
	if rec.Marks < 0 || rec.Marks > 100 {
		errs["marks"] = "Marks must be between 0 and 100"
	}
	return errs
}

// validateExperience checks one experience row. The derived tenure sentinel is
// treated as a date error.
func validateExperience(rec models.ExperienceRecord) models.FieldErrors {
	errs := models.FieldErrors{}
	if rec.Company == "" {
		errs["company"] = "This field is required"
	}
	if rec.Role == "" {
		errs["role"] = "This field is required"
	}
	switch rec.Tenure {
	case TenureInvalidFormat:
		errs["fromDate"] = "Please enter a valid date"
	case TenureInvalidOrder:
		errs["toDate"] = "To Date cannot be before From Date"
	}
	if rec.LastIncome <= 0 {
		errs["lastIncome"] = "Last income must be greater than 0"
	}
	return errs
}

// removeAt drops index i, preserving the relative order of remaining elements.
func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func hasRowErrors(errLists []models.FieldErrors) bool {
	for _, errs := range errLists {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}
