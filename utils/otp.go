package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// OTP verification errors surfaced to the flow verbatim.
var (
	ErrOTPNotFound     = errors.New("OTP not found or expired")
	ErrOTPMismatch     = errors.New("OTP does not match")
	ErrTooManyAttempts = errors.New("too many OTP attempts, please restart verification")
)

// MaxOTPAttempts bounds verify retries before the flow must be reset.
const MaxOTPAttempts = 3

// GenerateNumericOTP generates a secure random OTP of the specified number of digits.
func GenerateNumericOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// OTPStore issues and verifies email OTPs backed by Redis. Codes live for the
// configured TTL; failed verifications are counted and capped at MaxOTPAttempts.
type OTPStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewOTPStore creates an OTPStore with the given client and TTL.
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{Client: client, TTL: ttl}
}

func otpKey(role, email string) string {
	return fmt.Sprintf("otp:%s:%s", role, email)
}

func attemptsKey(role, email string) string {
	return fmt.Sprintf("otp-attempts:%s:%s", role, email)
}

// Issue generates a 6-digit code for the given role/email pair and caches it.
// Issuing is refused once the attempt counter is exhausted.
func (s *OTPStore) Issue(ctx context.Context, role, email string) (string, error) {
	attempts, err := s.Client.Get(ctx, attemptsKey(role, email)).Int()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to read OTP attempt counter: %w", err)
	}
	if attempts >= MaxOTPAttempts {
		return "", ErrTooManyAttempts
	}

	code, err := GenerateNumericOTP(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	if err := s.Client.Set(ctx, otpKey(role, email), code, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to cache OTP: %w", err)
	}
	return code, nil
}

// Verify compares the provided code against the cached one. A match deletes the
// code and clears the attempt counter; a mismatch increments the counter.
func (s *OTPStore) Verify(ctx context.Context, role, email, provided string) error {
	attempts, err := s.Client.Get(ctx, attemptsKey(role, email)).Int()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read OTP attempt counter: %w", err)
	}
	if attempts >= MaxOTPAttempts {
		return ErrTooManyAttempts
	}

	stored, err := s.Client.Get(ctx, otpKey(role, email)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrOTPNotFound
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if stored != provided {
		pipe := s.Client.TxPipeline()
		pipe.Incr(ctx, attemptsKey(role, email))
		pipe.Expire(ctx, attemptsKey(role, email), s.TTL)
		if _, err := pipe.Exec(ctx); err != nil {
			GetLogger().Sugar().Warnf("failed to bump OTP attempt counter for %s: %v", email, err)
		}
		return ErrOTPMismatch
	}

	if err := s.Client.Del(ctx, otpKey(role, email), attemptsKey(role, email)).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to clear OTP state for %s: %v", email, err)
	}
	return nil
}

// Reset clears the code and attempt counter so a fresh flow can start.
func (s *OTPStore) Reset(ctx context.Context, role, email string) error {
	return s.Client.Del(ctx, otpKey(role, email), attemptsKey(role, email)).Err()
}
