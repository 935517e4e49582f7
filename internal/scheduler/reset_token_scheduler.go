package scheduler

import (
	"time"

	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetTokenScheduler periodically clears expired password-reset tokens.
// Expired tokens are already unredeemable; the sweep just keeps stale
// rows from accumulating.
type ResetTokenScheduler struct {
	cron     *cron.Cron
	userRepo repository.UserRepository
}

func NewResetTokenScheduler(userRepo repository.UserRepository) *ResetTokenScheduler {
	return &ResetTokenScheduler{
		cron:     cron.New(),
		userRepo: userRepo,
	}
}

func (s *ResetTokenScheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		cleared, err := s.userRepo.ClearExpiredResetTokens(time.Now())
		if err != nil {
			logger.Error("Failed to clear expired reset tokens", err)
			return
		}

		if cleared > 0 {
			logger.Info("Cleared expired reset tokens", map[string]interface{}{
				"count": cleared,
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset token cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset token scheduler started (hourly)", nil)

	return nil
}

func (s *ResetTokenScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Reset token scheduler stopped", nil)
}
