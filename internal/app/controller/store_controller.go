package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/delishapp/delish-backend/internal/app/service"
	apperrors "github.com/delishapp/delish-backend/internal/errors"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

type StoreRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Tags        []string `json:"tags"`
}

func (r StoreRequest) toInput() service.StoreInput {
	return service.StoreInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Tags:        r.Tags,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// ListStores returns all stores, newest first
// GET /api/v1/stores
func (ctrl *StoreController) ListStores(c *gin.Context) {
	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// GetStore returns a single store by ID
// GET /api/v1/stores/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := ctrl.storeService.GetStoreByID(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// GetStoreBySlug returns a single store by its slug
// GET /api/v1/stores/slug/:slug
func (ctrl *StoreController) GetStoreBySlug(c *gin.Context) {
	store, err := ctrl.storeService.GetStoreBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get store by slug")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// CreateStore creates a store owned by the authenticated user
// POST /api/v1/stores
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "That store is not valid")
		return
	}

	store, err := ctrl.storeService.CreateStore(userID, req.toInput())
	if err != nil {
		log.Error("Store creation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		return
	}

	log.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"store":   store,
	})
}

// UpdateStore updates a store the authenticated user owns
// PUT /api/v1/stores/:id
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "That store is not valid")
		return
	}

	store, err := ctrl.storeService.UpdateStore(userID, id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrNotStoreOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You must own a store in order to edit it!")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store updated successfully",
		"store":   store,
	})
}

// DeleteStore removes a store the authenticated user owns
// DELETE /api/v1/stores/:id
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.DeleteStore(userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrNotStoreOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You must own a store in order to delete it!")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store deleted successfully",
	})
}
