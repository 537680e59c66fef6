package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zoo_management/pkg/apperror"
	"zoo_management/pkg/database"
	"zoo_management/pkg/logger"
)

type errorResponse struct {
	Error     string                `json:"error"`
	Code      string                `json:"code"`
	RequestID string                `json:"requestId,omitempty"`
	Details   []apperror.FieldError `json:"details,omitempty"`
}

// respondError classifies err, logs the cause and writes the error body.
// message is used for errors that do not carry their own.
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	var appErr *apperror.Error
	if !errors.As(database.Classify(err, message), &appErr) {
		appErr = apperror.Wrap(apperror.KindInternal, err, message)
	}

	status := appErr.Kind.HTTPStatus()
	log := h.requestLogger(c)
	fields := []zap.Field{zap.String("code", appErr.Kind.Code()), zap.Error(err)}
	if status >= 500 {
		log.Error(appErr.Message, fields...)
	} else {
		log.Warn(appErr.Message, fields...)
	}

	c.AbortWithStatusJSON(status, errorResponse{
		Error:     appErr.Message,
		Code:      appErr.Kind.Code(),
		RequestID: c.GetString(logger.RequestIDKey),
		Details:   appErr.Details,
	})
}

// requestLogger prefers the logger the request middleware attached, which
// carries the request id.
func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.FromContextOr(c.Request.Context(), h.log)
}
