package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPRecord_Expired(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := OTPRecord{CreatedAt: created}
	window := 5 * time.Minute

	assert.False(t, rec.Expired(created, window))
	assert.False(t, rec.Expired(created.Add(window), window))
	assert.True(t, rec.Expired(created.Add(window+time.Millisecond), window))
}

func TestOTPRecord_Exhausted(t *testing.T) {
	assert.False(t, OTPRecord{Attempts: 2}.Exhausted(3))
	assert.True(t, OTPRecord{Attempts: 3}.Exhausted(3))
	assert.True(t, OTPRecord{Attempts: 4}.Exhausted(3))
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrOTPNotFound, "Invalid or expired OTP"},
		{ErrOTPExpired, "OTP has expired"},
		{ErrOTPAttemptsExceeded, "Too many failed attempts. Please request a new OTP."},
		{ErrOTPInvalidCode, "Invalid OTP"},
		{fmt.Errorf("wrap: %w", ErrOTPInvalidCode), "Invalid OTP"},
		{errors.New("other"), GenericFailureMessage},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureMessage(tt.err), tt.err.Error())
	}
}
