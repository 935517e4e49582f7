package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/internal/mailer"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/delishapp/delish-backend/pkg/logger"
	"github.com/delishapp/delish-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	// ErrInvalidResetToken covers unknown, expired and already-redeemed
	// tokens alike. The caller cannot tell which happened.
	ErrInvalidResetToken = errors.New("password reset is invalid or has expired")
	// ErrDeliveryFailed reports a mail relay problem. The issued token
	// stays valid; only the notification failed.
	ErrDeliveryFailed = errors.New("failed to deliver password reset email")
)

const (
	// ResetTokenExpiry is the duration for which a reset token is valid
	ResetTokenExpiry = 1 * time.Hour
	// ResetTokenLength is the byte length of the reset token before hex
	// encoding (256 bits)
	ResetTokenLength = 32
)

type PasswordResetService interface {
	// RequestReset issues a recovery token and emails the reset link. The
	// outcome is success-shaped whether or not the email belongs to an
	// account, except for delivery failures.
	RequestReset(email string) error
	// CheckToken reports whether the token is currently redeemable. It has
	// no side effects and may be called any number of times.
	CheckToken(token string) error
	// ResetPassword redeems the token: updates the password, clears the
	// token and logs the user in.
	ResetPassword(ctx context.Context, token, newPassword string) (*model.User, *session.Session, error)
}

type passwordResetService struct {
	userRepo repository.UserRepository
	sessions session.Store
	verifier util.CredentialVerifier
	mail     mailer.Mailer
	baseURL  string
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	sessions session.Store,
	verifier util.CredentialVerifier,
	mail mailer.Mailer,
	baseURL string,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		sessions: sessions,
		verifier: verifier,
		mail:     mail,
		baseURL:  baseURL,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown accounts get the same outcome as known ones, with
			// no record touched and no mail sent.
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	token, err := util.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		logger.Error("Failed to generate reset token", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	expires := time.Now().Add(ResetTokenExpiry)

	// Overwrites any outstanding token: at most one is live per user.
	if err := s.userRepo.SetResetToken(user.ID, token, expires); err != nil {
		logger.Error("Failed to persist reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	resetURL := fmt.Sprintf("%s/account/reset/%s", s.baseURL, token)
	if err := s.mail.SendPasswordReset(user.Email, resetURL); err != nil {
		// The token was issued and stays valid; only delivery failed.
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": expires,
	})
	return nil
}

func (s *passwordResetService) CheckToken(token string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	_, err := s.userRepo.FindByValidResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		logger.Error("Failed to look up reset token", err, nil)
		return err
	}
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) (*model.User, *session.Session, error) {
	logger.Info("Processing password reset with token")

	// Identify the account the token belongs to. The match is advisory:
	// the conditional update below re-checks everything.
	user, err := s.userRepo.FindByValidResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Invalid or expired reset token presented", nil)
			return nil, nil, ErrInvalidResetToken
		}
		logger.Error("Failed to look up reset token", err, nil)
		return nil, nil, err
	}

	hashedPassword, err := s.verifier.Hash(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	// The conditional update re-runs the token+expiry filter against
	// current state. Of two concurrent redemptions, only one sees a row
	// affected; the other lost the race and fails like any stale token.
	rows, err := s.userRepo.RedeemResetToken(token, time.Now(), hashedPassword)
	if err != nil {
		logger.Error("Failed to redeem reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}
	if rows == 0 {
		logger.Warn("Reset token no longer valid at redemption", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidResetToken
	}

	updated, err := s.userRepo.FindByID(user.ID)
	if err != nil {
		logger.Error("Failed to reload user after password reset", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	// Auto-login: the only place a session is created without a password
	// check.
	sess, err := s.sessions.Create(ctx, updated.ID)
	if err != nil {
		logger.Error("Failed to create session after password reset", err, map[string]interface{}{
			"user_id": updated.ID,
		})
		return nil, nil, err
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": updated.ID,
		"email":   updated.Email,
	})

	return updated, sess, nil
}
