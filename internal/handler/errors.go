package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/response"
	"github.com/stemsi/course-marketplace/internal/service"
)

// errorCode maps a service error to its API code. Unknown errors are internal.
func errorCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return response.ErrDuplicateEmail
	case errors.Is(err, service.ErrNotRegistered):
		return response.ErrNotRegistered
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidToken):
		return response.ErrTokenInvalid
	case errors.Is(err, service.ErrNotCourseOwner):
		return response.ErrForbidden
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrAccountGone):
		return response.ErrNotFound
	case errors.Is(err, service.ErrAlreadyPurchased):
		return response.ErrDuplicatePurchase
	default:
		return response.ErrInternal
	}
}

// failWith writes the error response for err, logging anything that maps to an internal error.
func failWith(c *gin.Context, log zerolog.Logger, err error) {
	code := errorCode(err)
	if code == response.ErrInternal {
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("route", c.FullPath()).
			Msg("Request failed")
		_ = c.Error(err)
	}
	response.Fail(c, code)
}
