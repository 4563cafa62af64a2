package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body. An empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func session(r *http.Request) auth.Session {
	s, _ := middleware.SessionFromContext(r.Context())
	return s
}

// writeError maps service and store errors onto HTTP statuses.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(w, verr.Fields)
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrAccountSuspended):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAssignmentClosed),
		errors.Is(err, services.ErrStaffUnavailable),
		errors.Is(err, services.ErrStaffNotAssignable),
		errors.Is(err, services.ErrStaffNotAssigned),
		errors.Is(err, services.ErrInvoiceNotReady),
		errors.Is(err, services.ErrOrderLocked),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrDuplicate):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPaymentSignature):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotConfigured):
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrExternal):
		log.BusinessError("external service failed", err)
		utils.Error(w, http.StatusBadGateway, err.Error())
	default:
		log.InternalError("request failed", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
