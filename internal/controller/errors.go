package controller

import (
	"ecopulse_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps known domain errors onto HTTP statuses and
// falls back to a logged 500 for everything else.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrNodeNotFound),
		errors.Is(err, util.ErrStoryNotFound),
		errors.Is(err, util.ErrVoucherNotFound),
		errors.Is(err, util.ErrLocationNotFound):
		util.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrNodeAlreadyCompleted),
		errors.Is(err, util.ErrVoucherSoldOut),
		errors.Is(err, util.ErrVoucherExpired):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrNodeLocked),
		errors.Is(err, util.ErrPermissionDenied):
		util.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrNoHearts),
		errors.Is(err, util.ErrInsufficientInsights):
		util.Error(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, util.ErrDailyShareLimit),
		errors.Is(err, util.ErrSurveyNotActive):
		util.Error(c, http.StatusTooManyRequests, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
