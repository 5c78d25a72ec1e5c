package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field validators are stateless and total: each returns "" for a valid value
// or a user-facing message. They never reach the network; the engine runs them
// before any gateway call.

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRe      = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	otpRe      = regexp.MustCompile(`^[0-9]{6}$`)
	nonDigitRe = regexp.MustCompile(`[^0-9]`)
)

// CountryCodePrefix is prepended to normalized mobile numbers for transmission.
const CountryCodePrefix = "+91"

// ValidateEmail checks basic email shape.
func ValidateEmail(v string) string {
	if !emailRe.MatchString(v) {
		return "Please enter a valid email address"
	}
	return ""
}

// ValidateOTP requires exactly 6 numeric digits.
func ValidateOTP(v string) string {
	if !otpRe.MatchString(v) {
		return "OTP must be exactly 6 digits"
	}
	return ""
}

// NormalizeMobile strips every non-digit character.
func NormalizeMobile(v string) string {
	return nonDigitRe.ReplaceAllString(v, "")
}

// ValidateMobile requires exactly 10 digits after normalization.
func ValidateMobile(v string) string {
	if len(NormalizeMobile(v)) != 10 {
		return "Mobile number must be exactly 10 digits"
	}
	return ""
}

// FormatMobile renders the wire form of a valid mobile number.
func FormatMobile(v string) string {
	return CountryCodePrefix + NormalizeMobile(v)
}

// ValidatePassword requires a minimum length of 6.
func ValidatePassword(v string) string {
	if len(v) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}

// ValidateURL checks http(s) URL shape.
func ValidateURL(v string) string {
	if !urlRe.MatchString(v) {
		return "Please enter a valid URL"
	}
	return ""
}

// ValidateDate checks ISO date shape.
func ValidateDate(v string) string {
	if _, err := time.Parse(dateLayout, v); err != nil {
		return "Please enter a valid date"
	}
	return ""
}

// MinNumber builds a validator requiring a numeric value >= floor.
func MinNumber(floor float64) func(string) string {
	return func(v string) string {
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "Please enter a valid number"
		}
		if n < floor {
			return fmt.Sprintf("Value must be at least %g", floor)
		}
		return ""
	}
}

// RangeNumber builds a validator requiring min <= value <= max.
func RangeNumber(min, max float64) func(string) string {
	return func(v string) string {
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "Please enter a valid number"
		}
		if n < min || n > max {
			return fmt.Sprintf("Value must be between %g and %g", min, max)
		}
		return ""
	}
}

// OneOf builds a validator accepting only the listed options.
func OneOf(options []string) func(string) string {
	return func(v string) string {
		for _, opt := range options {
			if v == opt {
				return ""
			}
		}
		return fmt.Sprintf("Must be one of: %s", strings.Join(options, ", "))
	}
}
