package wizard

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Tenure sentinels. These travel in-band inside ExperienceRecord.Tenure and
// must be checked before a step may advance.
const (
	TenureInvalidFormat = "Invalid: Invalid date format"
	TenureInvalidOrder  = "Invalid: To Date cannot be before From Date"
)

// MaxBioWords caps the bio/about fields. An over-limit submission is refused
// outright; the stored value is never replaced by one exceeding the cap.
const MaxBioWords = 700

// ComputeAge returns whole years between dob and now, decremented by one when
// now's month/day precedes the birthday.
func ComputeAge(dob string, now time.Time) (int, error) {
	d, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0, fmt.Errorf("invalid date of birth: %w", err)
	}
	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	return age, nil
}

// ComputeTenure renders the span between two ISO dates as a human-readable
// duration, or an "Invalid: ..." sentinel when the pair cannot be interpreted.
func ComputeTenure(fromDate, toDate string) string {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return TenureInvalidFormat
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return TenureInvalidFormat
	}
	if to.Before(from) {
		return TenureInvalidOrder
	}

	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	if years == 0 && months == 0 {
		return "Less than a month"
	}

	var parts []string
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// IsInvalidTenure reports whether a tenure string carries a sentinel.
func IsInvalidTenure(tenure string) bool {
	return strings.HasPrefix(tenure, "Invalid:")
}

// CountWords counts whitespace-delimited non-empty tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
