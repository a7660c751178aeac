package handler

import (
	"net/http"

	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/product/model"
	"ecommerce-backend/internal/product/service"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.List)
	router.GET("/products/:id", h.Get)
	router.GET("/products/:id/reviews", h.ListReviews)
}

func (h *ProductHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.PUT("/products/:id/reviews", h.CreateOrUpdateReview)
	router.DELETE("/products/:id/reviews/:reviewId", h.DeleteReview)
}

func (h *ProductHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/products", h.Create)
	router.PUT("/products/:id", h.Update)
	router.DELETE("/products/:id", h.Delete)
}

func (h *ProductHandler) List(c *gin.Context) {
	listing, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products retrieved", listing)
}

// Get looks a product up by id, or by slug when the path segment is not a
// UUID, so catalog links can use either form.
func (h *ProductHandler) Get(c *gin.Context) {
	key := c.Param("id")

	var product *model.Product
	if productID, err := uuid.Parse(key); err == nil {
		product, err = h.service.Get(c.Request.Context(), productID)
		if err != nil {
			utils.RespondWithError(c, err)
			return
		}
	} else {
		product, err = h.service.GetBySlug(c.Request.Context(), key)
		if err != nil {
			utils.RespondWithError(c, err)
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Product retrieved", product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Create(c.Request.Context(), user.ID, &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var request model.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(c.Request.Context(), productID, &request)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) CreateOrUpdateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var request model.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	request.ProductID = productID

	if err := h.service.CreateOrUpdateReview(c.Request.Context(), user, &request); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review added successfully", nil)
}

func (h *ProductHandler) ListReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), productID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved", gin.H{"reviews": reviews})
}

func (h *ProductHandler) DeleteReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), user, productID, reviewID); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review deleted successfully", nil)
}
