package utils

import (
	"errors"
	"net/http"

	appErrors "ecommerce-backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RespondWithError normalizes a domain error into the failure envelope with
// the matching status code. Unrecognized errors become a generic 500.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		ErrorResponse(c, http.StatusBadRequest, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, appErrors.ErrProductNotFound),
		errors.Is(err, appErrors.ErrReviewNotFound),
		errors.Is(err, appErrors.ErrOrderNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrUserAlreadyExists):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenInvalid),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrUnauthorized):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrInsufficientPermissions):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrPasswordMismatch),
		errors.Is(err, appErrors.ErrWeakPassword),
		errors.Is(err, appErrors.ErrResetTokenInvalid),
		errors.Is(err, appErrors.ErrInvalidUserRole),
		errors.Is(err, appErrors.ErrInvalidInput),
		errors.Is(err, appErrors.ErrOrderDelivered):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
