// File: utils/constants.go
package utils

import "time"

// AuthTokenTTL is the lifetime of issued auth tokens and their cache entries.
const AuthTokenTTL = 24 * time.Hour

// OTPTTL is the lifetime of issued email OTPs.
const OTPTTL = 5 * time.Minute

// WizardSessionTTL is the lifetime of an onboarding wizard session.
const WizardSessionTTL = 30 * time.Minute
