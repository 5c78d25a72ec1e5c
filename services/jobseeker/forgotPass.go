package jobseeker

import (
	"context"
	"fmt"
	"time"

	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ResetPassword resets a job-seeker's password via a three-state OTP-based flow.
// State 1: Called with email only → issues an OTP and returns OTPPendingError.
// State 2: Called with email and OTP (but no new password) → verifies OTP and returns NewPasswordRequiredError.
// State 3: Called with email, OTP, and new password → updates the password.
func (s *DefaultJobSeekerService) ResetPassword(ctx context.Context, email, providedOTP, newPassword string) error {
	rec, err := s.Repo.GetByEmailWithProjection(email, bson.M{})
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to fetch job-seeker", zap.Error(err))
		return fmt.Errorf("failed to reset password, please try again")
	}
	if rec == nil {
		// Avoid exposing whether the email exists.
		return fmt.Errorf("invalid email")
	}

	resetTag := roleTag + "-reset"

	// State 1: initiate the OTP.
	if providedOTP == "" && newPassword == "" {
		code, err := s.OTP.Issue(ctx, resetTag, email)
		if err != nil {
			return fmt.Errorf("failed to initiate OTP: %w", err)
		}
		if err := s.Mailer.SendOTPEmail(ctx, email, code); err != nil {
			utils.GetLogger().Error("ResetPassword: failed to email code", zap.Error(err))
			return fmt.Errorf("failed to send OTP")
		}
		return OTPPendingError{Email: email}
	}

	// Verify the OTP unless this reset was already verified. The code is
	// consumed on a successful match, so a verified marker carries the flow
	// from state 2 into state 3.
	verifiedKey := fmt.Sprintf("otp-verified:%s:%s", resetTag, email)
	if _, err := s.OTP.Client.Get(ctx, verifiedKey).Result(); err != nil {
		if err := s.OTP.Verify(ctx, resetTag, email, providedOTP); err != nil {
			return fmt.Errorf("OTP verification failed: %w", err)
		}
		if err := s.OTP.Client.Set(ctx, verifiedKey, "1", utils.OTPTTL).Err(); err != nil {
			return fmt.Errorf("failed to record OTP verification: %w", err)
		}
	}

	// State 2: OTP verified but no new password yet.
	if newPassword == "" {
		return NewPasswordRequiredError{Email: email}
	}

	// State 3: apply the new password.
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to process new password")
	}

	updateDoc := bson.M{"$set": bson.M{
		"password_hash": string(newHash),
		"updated_at":    time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(rec.ID, updateDoc); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to update password", zap.Error(err))
		return fmt.Errorf("failed to update password")
	}

	_ = s.OTP.Client.Del(ctx, verifiedKey).Err()
	// Revoke any live session so stale tokens cannot outlive the old password.
	_ = s.Tokens.Revoke(ctx, roleTag, rec.ID)

	utils.GetLogger().Sugar().Infof("ResetPassword: password updated for job-seeker %s", rec.ID)
	return nil
}
