package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestGenerateNumericOTP(t *testing.T) {
	code, err := GenerateNumericOTP(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestOTPStoreIssueAndVerify(t *testing.T) {
	store := NewOTPStore(newTestClient(t), 5*time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "job-seeker", "a@b.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Codes are role-scoped.
	err = store.Verify(ctx, "business", "a@b.com", code)
	assert.ErrorIs(t, err, ErrOTPNotFound)

	require.NoError(t, store.Verify(ctx, "job-seeker", "a@b.com", code))

	// A successful match consumes the code.
	err = store.Verify(ctx, "job-seeker", "a@b.com", code)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPStoreAttemptCap(t *testing.T) {
	store := NewOTPStore(newTestClient(t), 5*time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "job-seeker", "a@b.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < MaxOTPAttempts; i++ {
		err = store.Verify(ctx, "job-seeker", "a@b.com", wrong)
		assert.ErrorIs(t, err, ErrOTPMismatch)
	}

	// The budget is exhausted even for the correct code.
	err = store.Verify(ctx, "job-seeker", "a@b.com", code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// Issuing is refused until the flow is reset.
	_, err = store.Issue(ctx, "job-seeker", "a@b.com")
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	require.NoError(t, store.Reset(ctx, "job-seeker", "a@b.com"))
	code, err = store.Issue(ctx, "job-seeker", "a@b.com")
	require.NoError(t, err)
	require.NoError(t, store.Verify(ctx, "job-seeker", "a@b.com", code))
}

func TestOTPStoreMatchClearsAttempts(t *testing.T) {
	store := NewOTPStore(newTestClient(t), 5*time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "business", "hr@acme.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	require.ErrorIs(t, store.Verify(ctx, "business", "hr@acme.com", wrong), ErrOTPMismatch)
	require.NoError(t, store.Verify(ctx, "business", "hr@acme.com", code))

	// The counter restarts from zero for the next flow.
	code, err = store.Issue(ctx, "business", "hr@acme.com")
	require.NoError(t, err)
	for i := 0; i < MaxOTPAttempts-1; i++ {
		require.ErrorIs(t, store.Verify(ctx, "business", "hr@acme.com", wrong), ErrOTPMismatch)
	}
	require.NoError(t, store.Verify(ctx, "business", "hr@acme.com", code))
}
