package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

// respondError maps service errors onto the resource response policy.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var fe *domain.ForbiddenError
	switch {
	case errors.As(err, &fe):
		response.Forbidden(c, fe.Reason)
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, domain.ErrConfiguration):
		if logger != nil {
			helpers.LogError(logger, "server misconfigured", err, logrus.Fields{"path": c.FullPath()})
		}
		response.Error[any](c, http.StatusInternalServerError, "server misconfigured", nil)
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		if logger != nil {
			helpers.LogError(logger, "store operation failed", err, logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			})
		}
		response.BadRequest(c, err.Error())
	}
}

// bindJSON decodes the body into dst and writes 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		msg := validation.Message(err)
		if msg == "" {
			msg = err.Error()
		}
		response.BadRequest(c, msg)
		return false
	}
	return true
}
