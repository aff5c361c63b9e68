package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hackacure-backend/errs"
)

func success(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

func fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusOf(err), gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// statusOf maps the sentinel taxonomy onto HTTP status codes. Anything not
// meant for the client collapses into a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrNameRequired),
		errors.Is(err, errs.ErrTeamNameRequired),
		errors.Is(err, errs.ErrEmailRequired),
		errors.Is(err, errs.ErrPasswordRequired),
		errors.Is(err, errs.ErrEmailAddressFormat),
		errors.Is(err, errs.ErrTeamAlreadyExists),
		errors.Is(err, errs.ErrEmailAlreadyExists),
		errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrURLRequired),
		errors.Is(err, errs.ErrInvalidTopK),
		errors.Is(err, errs.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrInvalidEmailOrPassword),
		errors.Is(err, errs.ErrTokenExpired),
		errors.Is(err, errs.ErrJWT):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
