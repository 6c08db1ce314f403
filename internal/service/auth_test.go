package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbackend/pkg/tokens"
)

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "password", user.PasswordHash)

	require.Len(t, mailer.verifications, 1)
	assert.Equal(t, "alice@example.com", mailer.verifications[0].To)

	verifyID, err := tokens.UserIDFromToken(mailer.verifications[0].Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verifyID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other", "alice@example.com", "different")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "empty name", userName: "", email: "a@example.com", password: "secret"},
		{name: "empty email", userName: "a", email: "", password: "secret"},
		{name: "empty password", userName: "a", email: "a@example.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "bob", "bob@example.com", "password")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "bob@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	userID, err := tokens.UserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "bob@example.com", "password")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Login(ctx, "bob@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "carol@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "carol@example.com"))

	require.Len(t, mailer.otps, 1)
	assert.Equal(t, "carol@example.com", mailer.otps[0].To)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), mailer.otps[0].OTP)

	user, err := svc.Repo.FindUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.OTP)
	require.NotNil(t, user.OTPExpiry)
	assert.Equal(t, mailer.otps[0].OTP, *user.OTP)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *user.OTPExpiry, 2*time.Second)
}

func TestAuthService_ForgotPassword_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_VerifyOTP(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave", "dave@example.com", "password")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "dave@example.com"))
	otp := mailer.otps[0].OTP

	// Correct code clears the OTP state.
	require.NoError(t, svc.VerifyOTP(ctx, "dave@example.com", otp))

	user, err := svc.Repo.FindUserByEmail(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.OTP)
	assert.Nil(t, user.OTPExpiry)

	// Replaying the same code fails as never-generated.
	err = svc.VerifyOTP(ctx, "dave@example.com", otp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_VerifyOTP_WrongCodeKeepsState(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "erin", "erin@example.com", "password")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "erin@example.com"))

	err = svc.VerifyOTP(ctx, "erin@example.com", "000000")
	if mailer.otps[0].OTP == "000000" {
		t.Skip("generated code collided with the wrong-code fixture")
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// State survives a wrong attempt, so the real code still works.
	require.NoError(t, svc.VerifyOTP(ctx, "erin@example.com", mailer.otps[0].OTP))
}

func TestAuthService_VerifyOTP_Expired(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "frank", "frank@example.com", "password")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "frank@example.com"))

	user, err := svc.Repo.FindUserByEmail(ctx, "frank@example.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	user.OTPExpiry = &past
	require.NoError(t, svc.Repo.SaveUser(ctx, user))

	err = svc.VerifyOTP(ctx, "frank@example.com", mailer.otps[0].OTP)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestAuthService_VerifyOTP_MissingCode(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	err := svc.VerifyOTP(context.Background(), "dave@example.com", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "grace", "grace@example.com", "oldpassword")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, "grace@example.com", "newpassword", "newpassword"))

	_, _, err = svc.Login(ctx, "grace@example.com", "oldpassword")
	require.Error(t, err)

	_, _, err = svc.Login(ctx, "grace@example.com", "newpassword")
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_Failures(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		newPw   string
		confirm string
		kind    error
	}{
		{name: "missing new password", email: "x@example.com", newPw: "", confirm: "a", kind: ErrValidation},
		{name: "missing confirmation", email: "x@example.com", newPw: "a", confirm: "", kind: ErrValidation},
		{name: "mismatch", email: "x@example.com", newPw: "a", confirm: "b", kind: ErrValidation},
		{name: "unknown user", email: "nobody@example.com", newPw: "a", confirm: "a", kind: ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := svc.ChangePassword(ctx, tt.email, tt.newPw, tt.confirm)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "henry", "henry@example.com", "password")
	require.NoError(t, err)
	require.False(t, user.IsVerified)

	require.NoError(t, svc.VerifyEmail(ctx, mailer.verifications[0].Token))

	updated, err := svc.Repo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
	assert.Empty(t, updated.VerifyToken)
}

func TestAuthService_VerifyEmail_BadToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	err := svc.VerifyEmail(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
