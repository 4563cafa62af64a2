package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SMSHandler struct {
	Service *services.NotificationService
	log     logger.Logger
}

func NewSMSHandler(s *services.NotificationService, log logger.Logger) *SMSHandler {
	return &SMSHandler{Service: s, log: log}
}

// NotifyAssignedStaff texts everyone on the order and reports per-number failures
func (h *SMSHandler) NotifyAssignedStaff(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyStaffRequest
	if !decode(w, r, &req) {
		return
	}
	summary, err := h.Service.NotifyAssignedStaff(r.Context(), session(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *SMSHandler) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.Logs(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
