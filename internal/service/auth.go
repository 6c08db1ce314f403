package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
	"shopbackend/pkg/hash"
	"shopbackend/pkg/logging"
	"shopbackend/pkg/tokens"
)

const otpTTL = 10 * time.Minute

type AuthService struct {
	Repo      *repo.GormRepo
	Mail      Mailer
	Producer  Publisher
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if name == "" || email == "" || password == "" {
		return nil, fail(ErrValidation, "All fields are required")
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		IsVerified:   false,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_error", "status", 409, "email", email)
			return nil, fail(ErrConflict, "User already exists")
		}
		return nil, err
	}

	token, err := tokens.NewVerificationToken(user.ID, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	user.VerifyToken = token
	if err := s.Repo.SaveUser(ctx, &user); err != nil {
		return nil, err
	}

	// Registration already succeeded; a failed verification mail is logged
	// and the token stays on the record for a later resend.
	if err := s.Mail.SendVerification(ctx, user.Email, token); err != nil {
		l.Error("verification_mail_error", "error", err)
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "unknown email")
			return "", nil, fail(ErrNotFound, "User not exist")
		}
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return "", nil, fail(ErrUnauthorized, "Invalid Password")
	}

	token, err := tokens.NewSessionToken(user.ID, s.JWTSecret, tokens.SessionTTL)
	if err != nil {
		return "", nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return token, user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password", "email", email)

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "User not found")
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpTTL)

	user.OTP = &otp
	user.OTPExpiry = &expiry
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	if err := s.Mail.SendOTP(ctx, user.Email, otp); err != nil {
		l.Error("otp_mail_error", "error", err)
		return err
	}

	l.Info("otp_sent")
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	if otp == "" {
		return fail(ErrValidation, "OTP is required")
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "User not found")
		}
		return err
	}

	if user.OTP == nil || user.OTPExpiry == nil {
		return fail(ErrValidation, "OTP not generated or already verified")
	}
	if user.OTPExpiry.Before(time.Now()) {
		return fail(ErrOTPExpired, "OTP has expired. Please request a new one")
	}
	if otp != *user.OTP {
		return fail(ErrValidation, "Invalid OTP")
	}

	// Single use: a matching code clears both fields.
	user.OTP = nil
	user.OTPExpiry = nil
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" {
		return fail(ErrValidation, "All fields are required")
	}
	if newPassword != confirmPassword {
		return fail(ErrValidation, "Passwords do not match")
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "User not found")
		}
		return err
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := tokens.UserIDFromToken(token, s.JWTSecret)
	if err != nil {
		return fail(ErrUnauthorized, "Invalid or expired verification token")
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "User not found")
		}
		return err
	}

	user.IsVerified = true
	user.VerifyToken = ""
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_error", "topic", topic, "error", err)
	}
}

// generateOTP returns a uniformly random six digit code, zero padded.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
