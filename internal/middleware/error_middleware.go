package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// errorMessage prefers the message attached to a CustomError over the
// generic fallback for the mapped sentinel
func errorMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

func respond(c *gin.Context, status int, code dto.ErrorCode, err error, fallback string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, errorMessage(err, fallback)),
	})
}

// HandleAPIError translates service errors into the standard error envelope.
// Controllers funnel every error through here so status codes stay uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrErrandNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Errand not found")
	case errors.Is(err, apperrors.ErrServiceOfferingNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Service offering not found")
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Category not found")
	case errors.Is(err, apperrors.ErrReviewNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Review not found")
	case errors.Is(err, apperrors.ErrImageNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Image not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Resource not found")
	case errors.Is(err, apperrors.ErrErrandNotAvailable):
		respond(c, http.StatusConflict, dto.ErrorCodePreconditionFailed, err, "Errand is not available for acceptance")
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, err, "Invalid errand status transition")
	case errors.Is(err, apperrors.ErrCategoryHasChildren):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err, "Category has subcategories and cannot be deleted")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err, "Request conflicts with current state")
	case errors.Is(err, apperrors.ErrReviewTargetAmbiguous):
		respond(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, err, "Exactly one review target must be provided")
	case errors.Is(err, apperrors.ErrCategoryCycle):
		respond(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, err, "Category parent assignment would create a cycle")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, err, "Bad request")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, nil, "Internal server error")
	}
}
