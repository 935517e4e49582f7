package repository

import (
	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id uint) (*model.Store, error)
	FindBySlug(slug string) (*model.Store, error)
	FindAll() ([]model.Store, error)
	FindByUserID(userID uint) ([]model.Store, error)
	Update(store *model.Store) error
	Delete(id uint) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":    store.Name,
		"user_id": store.UserID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, id).Error; err != nil {
		logger.Debug("Failed to find store by ID in database", map[string]interface{}{
			"store_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindBySlug(slug string) (*model.Store, error) {
	var store model.Store
	if err := r.db.Where("slug = ?", slug).First(&store).Error; err != nil {
		logger.Debug("Failed to find store by slug in database", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindAll() ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Order("created_at DESC").Find(&stores).Error; err != nil {
		logger.Error("Failed to list stores from database", err, nil)
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) FindByUserID(userID uint) ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Where("user_id = ?", userID).Find(&stores).Error; err != nil {
		logger.Error("Failed to list stores by owner from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) Update(store *model.Store) error {
	logger.Debug("Updating store in database", map[string]interface{}{
		"store_id": store.ID,
	})

	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) Delete(id uint) error {
	logger.Debug("Deleting store from database", map[string]interface{}{
		"store_id": id,
	})

	if err := r.db.Delete(&model.Store{}, id).Error; err != nil {
		logger.Error("Failed to delete store from database", err, map[string]interface{}{
			"store_id": id,
		})
		return err
	}
	return nil
}
