package handler

import (
	"fmt"
	"net/http"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/internal/user/service"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
	config  *config.Config
}

func NewHandler(service *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, config: cfg}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)
	router.POST("/password/forgot", h.ForgotPassword)
	router.PUT("/password/reset/:token", h.ResetPassword)
}

func (h *UserHandler) Register(c *gin.Context) {
	var request model.RegisterRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)
	request.Name = utils.SanitizeString(request.Name)

	authResponse, err := h.service.Register(c.Request.Context(), &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", authResponse)
}

func (h *UserHandler) Login(c *gin.Context) {
	var request model.LoginRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.clearTokenCookie(c)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var request model.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	resetBaseURL := fmt.Sprintf("%s://%s", scheme, c.Request.Host)

	if err := h.service.ForgotPassword(c.Request.Context(), &request, resetBaseURL); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Email sent to %s successfully", request.Email), nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var request model.ResetPasswordRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", authResponse)
}

// setTokenCookie attaches the session token as an httpOnly cookie. Secure is
// only set in production so local development over plain HTTP still works.
func (h *UserHandler) setTokenCookie(c *gin.Context, token string) {
	maxAge := h.config.Cookie.ExpireDays * 24 * 60 * 60
	secure := h.config.Server.Environment == "production"

	c.SetCookie(h.config.Cookie.Name, token, maxAge, "/", "", secure, true)
}

func (h *UserHandler) clearTokenCookie(c *gin.Context) {
	secure := h.config.Server.Environment == "production"
	c.SetCookie(h.config.Cookie.Name, "", -1, "/", "", secure, true)
}
