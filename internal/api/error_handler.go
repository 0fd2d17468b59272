package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

// RespondError maps a domain error onto the error envelope. Validation
// failures always carry the complete violation list. For store-side
// failures the raw error text is logged with request context and, in
// production, replaced by a generic client message.
func RespondError(c *gin.Context, err error, production bool) {
	var validationErr *repository.ValidationError
	var duplicateErr *repository.DuplicateError
	var unavailableErr *repository.StoreUnavailableError

	switch {
	case errors.As(err, &validationErr):
		Fail(c, http.StatusBadRequest, T(c, "error.validation"), validationErr.Messages)

	case errors.Is(err, repository.ErrNotFound):
		Fail(c, http.StatusNotFound, T(c, "error.not_found"), nil)

	case errors.As(err, &duplicateErr):
		logStoreError(c, err)
		Fail(c, http.StatusConflict, clientMessage(c, "error.duplicate", err, production), nil)

	case errors.As(err, &unavailableErr):
		logStoreError(c, err)
		Fail(c, http.StatusServiceUnavailable, clientMessage(c, "error.store_unavailable", err, production), nil)

	default:
		logStoreError(c, err)
		Fail(c, http.StatusInternalServerError, clientMessage(c, "error.internal", err, production), nil)
	}
}

func clientMessage(c *gin.Context, key string, err error, production bool) string {
	if production {
		return T(c, key)
	}
	return T(c, key) + ": " + err.Error()
}

func logStoreError(c *gin.Context, err error) {
	GetLogger().WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"ip":         c.ClientIP(),
	}).WithError(err).Error("store operation failed")
}

// ErrorHandlerMiddleware converts errors attached to the gin context into
// envelope responses, as a safety net behind the controllers.
func ErrorHandlerMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			RespondError(c, c.Errors.Last().Err, production)
		}
	}
}
