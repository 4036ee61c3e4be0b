package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/server/http/dto"
	"github.com/comprae/marketplace/internal/server/http/middleware"
)

const kindBadRequest = "bad_request"

var kindStatus = map[domainErrors.Kind]int{
	domainErrors.KindNotFound:            http.StatusNotFound,
	domainErrors.KindForbidden:           http.StatusForbidden,
	domainErrors.KindInvalidState:        http.StatusConflict,
	domainErrors.KindUnavailable:         http.StatusConflict,
	domainErrors.KindMissingPrecondition: http.StatusPreconditionFailed,
	domainErrors.KindValidation:          http.StatusUnprocessableEntity,
	domainErrors.KindAlreadyExists:       http.StatusConflict,
	domainErrors.KindInvalidCredentials:  http.StatusUnauthorized,
}

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return model.Identity{}
	}
	identity, _ := val.(model.Identity)
	return identity
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind domainErrors.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	kind := domainErrors.KindOf(err)
	message := err.Error()
	if kind == domainErrors.KindInternal {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.AbortWithStatusJSON(StatusFor(kind), dto.ErrorBody{
		Error: dto.ErrorDetail{Kind: string(kind), Message: message},
	})
}

func writeBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorBody{
		Error: dto.ErrorDetail{Kind: kindBadRequest, Message: message},
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
