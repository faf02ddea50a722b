package handler

import (
	"errors"
	"net/http"

	"sseol-server/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func sendJSONError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Code: code, Message: message})
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		sendJSONError(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err))
		sendJSONError(c, http.StatusInternalServerError, ErrCodeInternal, "An unexpected internal error occurred")
	}
}
