package service

import (
	"errors"

	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	// ErrNotStoreOwner is an expected authorization outcome, not a fault.
	ErrNotStoreOwner = errors.New("you must own a store in order to edit it")
)

type StoreInput struct {
	Name        string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Tags        []string
}

type StoreService interface {
	ListStores() ([]model.Store, error)
	GetStoreByID(id uint) (*model.Store, error)
	GetStoreBySlug(slug string) (*model.Store, error)
	CreateStore(userID uint, input StoreInput) (*model.Store, error)
	UpdateStore(userID, storeID uint, input StoreInput) (*model.Store, error)
	DeleteStore(userID, storeID uint) error
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) ListStores() ([]model.Store, error) {
	return s.storeRepo.FindAll()
}

func (s *storeService) GetStoreByID(id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) GetStoreBySlug(slug string) (*model.Store, error) {
	store, err := s.storeRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) CreateStore(userID uint, input StoreInput) (*model.Store, error) {
	logger.Info("Creating store", map[string]interface{}{
		"user_id": userID,
		"name":    input.Name,
	})

	store := &model.Store{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Tags:        input.Tags,
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created successfully", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return store, nil
}

func (s *storeService) UpdateStore(userID, storeID uint, input StoreInput) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if store.UserID != userID {
		logger.Warn("Store update denied: not the owner", map[string]interface{}{
			"store_id": storeID,
			"user_id":  userID,
			"owner_id": store.UserID,
		})
		return nil, ErrNotStoreOwner
	}

	store.Name = input.Name
	store.Description = input.Description
	store.Address = input.Address
	store.Latitude = input.Latitude
	store.Longitude = input.Longitude
	store.Tags = input.Tags

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}

	logger.Info("Store updated successfully", map[string]interface{}{
		"store_id": store.ID,
	})
	return store, nil
}

func (s *storeService) DeleteStore(userID, storeID uint) error {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	if store.UserID != userID {
		logger.Warn("Store delete denied: not the owner", map[string]interface{}{
			"store_id": storeID,
			"user_id":  userID,
			"owner_id": store.UserID,
		})
		return ErrNotStoreOwner
	}

	return s.storeRepo.Delete(storeID)
}
