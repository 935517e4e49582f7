package controller

import (
	"errors"
	"net/http"

	"github.com/delishapp/delish-backend/internal/app/service"
	apperrors "github.com/delishapp/delish-backend/internal/errors"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type HeartController struct {
	heartService service.HeartService
}

func NewHeartController(heartService service.HeartService) *HeartController {
	return &HeartController{heartService: heartService}
}

// ToggleHeart hearts a store, or un-hearts it if already hearted
// POST /api/v1/stores/:id/heart
func (ctrl *HeartController) ToggleHeart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hearted, err := ctrl.heartService.ToggleHeart(userID, storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "toggle heart")
		return
	}

	message := "Store hearted"
	if !hearted {
		message = "Heart removed"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"hearted": hearted,
	})
}

// ListHearts returns the authenticated user's hearted stores
// GET /api/v1/hearts
func (ctrl *HeartController) ListHearts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	hearts, err := ctrl.heartService.ListHearts(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list hearts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hearts": hearts,
		"count":  len(hearts),
	})
}
