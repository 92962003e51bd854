package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP codes:
// NotFound -> 404, PreconditionFailed -> 409, ValidationFailed and
// InvalidStatus -> 400, StoreUnavailable -> 503.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var precondition *services.PreconditionError
	var validation *services.ValidationError
	var invalidStatus *services.InvalidStatusError
	var store *services.StoreError

	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &precondition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &validation), errors.As(err, &invalidStatus):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &store):
		utils.RespondError(c, http.StatusServiceUnavailable, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
