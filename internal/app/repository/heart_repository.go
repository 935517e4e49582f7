package repository

import (
	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gorm.io/gorm"
)

type HeartRepository interface {
	Create(heart *model.Heart) error
	FindByUserAndStore(userID, storeID uint) (*model.Heart, error)
	FindByUserID(userID uint) ([]model.Heart, error)
	Delete(userID, storeID uint) error
}

type heartRepository struct {
	db *gorm.DB
}

func NewHeartRepository(db *gorm.DB) HeartRepository {
	return &heartRepository{db: db}
}

func (r *heartRepository) Create(heart *model.Heart) error {
	logger.Debug("Creating heart in database", map[string]interface{}{
		"user_id":  heart.UserID,
		"store_id": heart.StoreID,
	})

	if err := r.db.Create(heart).Error; err != nil {
		logger.Error("Failed to create heart in database", err, map[string]interface{}{
			"user_id":  heart.UserID,
			"store_id": heart.StoreID,
		})
		return err
	}
	return nil
}

func (r *heartRepository) FindByUserAndStore(userID, storeID uint) (*model.Heart, error) {
	var heart model.Heart
	err := r.db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&heart).Error
	if err != nil {
		return nil, err
	}
	return &heart, nil
}

func (r *heartRepository) FindByUserID(userID uint) ([]model.Heart, error) {
	var hearts []model.Heart
	err := r.db.Preload("Store").Where("user_id = ?", userID).Find(&hearts).Error
	if err != nil {
		logger.Error("Failed to list hearts from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return hearts, nil
}

func (r *heartRepository) Delete(userID, storeID uint) error {
	logger.Debug("Deleting heart from database", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
	})

	err := r.db.Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&model.Heart{}).Error
	if err != nil {
		logger.Error("Failed to delete heart from database", err, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return err
	}
	return nil
}
