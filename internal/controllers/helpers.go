package controllers

import (
	"errors"
	"net/http"

	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/internal/services"
)

// respondServiceError, servis katmanından dönen hatayı uygun HTTP statüsüne
// çevirir. Sentinel hatalar bilinen statülere, geri kalanı 500'e gider.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, services.ErrUserBanned):
		response.Forbidden(w, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, services.ErrPaymentFailed):
		response.PaymentRequired(w, err.Error())
	case errors.Is(err, services.ErrCampaignNotActive),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrDuplicateParticipation),
		errors.Is(err, services.ErrInvalidStateTransition),
		errors.Is(err, services.ErrCampaignNotSuccessful),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrConflict):
		response.Conflict(w, err.Error())
	default:
		response.ServerError(w, "")
	}
}
