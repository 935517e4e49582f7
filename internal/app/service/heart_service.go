package service

import (
	"errors"

	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gorm.io/gorm"
)

type HeartService interface {
	// ToggleHeart hearts the store if not yet hearted, un-hearts it
	// otherwise. Returns true when the store is hearted afterwards.
	ToggleHeart(userID, storeID uint) (bool, error)
	ListHearts(userID uint) ([]model.Heart, error)
}

type heartService struct {
	heartRepo repository.HeartRepository
	storeRepo repository.StoreRepository
}

func NewHeartService(
	heartRepo repository.HeartRepository,
	storeRepo repository.StoreRepository,
) HeartService {
	return &heartService{
		heartRepo: heartRepo,
		storeRepo: storeRepo,
	}
}

func (s *heartService) ToggleHeart(userID, storeID uint) (bool, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrStoreNotFound
		}
		return false, err
	}

	existing, err := s.heartRepo.FindByUserAndStore(userID, storeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing heart", err, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return false, err
	}

	if existing != nil {
		if err := s.heartRepo.Delete(userID, storeID); err != nil {
			return false, err
		}
		logger.Info("Store un-hearted", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return false, nil
	}

	heart := &model.Heart{
		UserID:  userID,
		StoreID: storeID,
	}
	if err := s.heartRepo.Create(heart); err != nil {
		return false, err
	}

	logger.Info("Store hearted", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
	})
	return true, nil
}

func (s *heartService) ListHearts(userID uint) ([]model.Heart, error) {
	return s.heartRepo.FindByUserID(userID)
}
