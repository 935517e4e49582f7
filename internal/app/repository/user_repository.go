package repository

import (
	"strings"
	"time"

	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error

	// SetResetToken places a recovery token on the user, overwriting any
	// outstanding one.
	SetResetToken(userID uint, token string, expires time.Time) error
	// FindByValidResetToken resolves a token that has not expired as of
	// now. Expired and unknown tokens are both a record-not-found miss.
	FindByValidResetToken(token string, now time.Time) (*model.User, error)
	// RedeemResetToken sets the new password hash and clears both token
	// fields in a single conditional update. The returned row count is the
	// arbiter of concurrent redemptions: zero means the token was already
	// redeemed, overwritten or expired.
	RedeemResetToken(token string, now time.Time, newPasswordHash string) (int64, error)
	// ClearExpiredResetTokens drops token fields whose expiry has passed.
	ClearExpiredResetTokens(now time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Debug("Failed to find user by ID in database", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Debug("Failed to find user by email in database", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) SetResetToken(userID uint, token string, expires time.Time) error {
	logger.Debug("Setting reset token in database", map[string]interface{}{
		"user_id":    userID,
		"expires_at": expires,
	})

	err := r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_password_token":   token,
			"reset_password_expires": expires,
		}).Error
	if err != nil {
		logger.Error("Failed to set reset token in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByValidResetToken(token string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.db.
		Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		First(&user).Error
	if err != nil {
		logger.Debug("No user with a live reset token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) RedeemResetToken(token string, now time.Time, newPasswordHash string) (int64, error) {
	// One UPDATE carries the whole transition: the WHERE clause re-checks
	// token and expiry against current state, and the SET writes the new
	// hash and clears both token fields together. No reader can observe a
	// new password alongside a still-valid token.
	result := r.db.Model(&model.User{}).
		Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":          newPasswordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if result.Error != nil {
		logger.Error("Failed to redeem reset token in database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Reset token redemption attempted", map[string]interface{}{
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *userRepository) ClearExpiredResetTokens(now time.Time) (int64, error) {
	result := r.db.Model(&model.User{}).
		Where("reset_password_expires IS NOT NULL AND reset_password_expires <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if result.Error != nil {
		logger.Error("Failed to clear expired reset tokens from database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
