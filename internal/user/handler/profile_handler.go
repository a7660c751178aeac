package handler

import (
	"net/http"

	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *UserHandler) RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetProfile)
	router.PUT("/me/update", h.UpdateProfile)
	router.PUT("/password/update", h.ChangePassword)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if request.Name != nil {
		sanitized := utils.SanitizeString(*request.Name)
		request.Name = &sanitized
	}
	if request.Email != nil {
		sanitized := utils.SanitizeEmail(*request.Email)
		request.Email = &sanitized
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), user.ID, &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", profile)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := h.service.ChangePassword(c.Request.Context(), user.ID, &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, http.StatusOK, "Password updated successfully", authResponse)
}
