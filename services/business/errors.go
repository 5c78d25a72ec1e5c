package business

// OTPPendingError signals that OTP initiation succeeded but verification is pending.
type OTPPendingError struct {
	Email string
}

func (e OTPPendingError) Error() string {
	return "OTP pending; check your email"
}

// NewPasswordRequiredError signals that OTP was verified and a new password is now required.
type NewPasswordRequiredError struct {
	Email string
}

func (e NewPasswordRequiredError) Error() string {
	return "OTP verified. New password required."
}
