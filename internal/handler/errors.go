package handler

import (
	"errors"
	"net/http"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/pkg/logger"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates service errors into HTTP responses. Validation
// maps to 400, missing records to 404, uniqueness clashes to 409, and
// rejected lifecycle transitions to 422. Anything else is a 500 whose
// detail stays in the log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidState):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Get().Errorf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseIDParam reads a uint path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user ID from the context, or 0
// for unauthenticated routes.
func currentUser(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// currentRole returns the authenticated role from the context.
func currentRole(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
