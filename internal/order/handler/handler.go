package handler

import (
	"net/http"

	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/order/model"
	"ecommerce-backend/internal/order/service"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/orders", h.Create)
	router.GET("/orders/me", h.ListMine)
	router.GET("/orders/:id", h.Get)
}

func (h *OrderHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/orders", h.ListAll)
	router.PUT("/orders/:id", h.UpdateStatus)
	router.DELETE("/orders/:id", h.Delete)
}

func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.Create(c.Request.Context(), user.ID, &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.service.Get(c.Request.Context(), user, orderID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order retrieved", order)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orders, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Orders retrieved", gin.H{"orders": orders})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	listing, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Orders retrieved", listing)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	var request model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), orderID, &request); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order status updated", nil)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), orderID); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order deleted successfully", nil)
}
