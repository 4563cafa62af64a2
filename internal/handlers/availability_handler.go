package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	Service *services.AvailabilityService
	log     logger.Logger
}

func NewAvailabilityHandler(s *services.AvailabilityService, log logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: s, log: log}
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.SetAvailabilityRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.Set(r.Context(), session(r), mux.Vars(r)["id"], &req)
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req models.ClearAvailabilityRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.Clear(r.Context(), session(r), mux.Vars(r)["id"], &req)
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetMine(r.Context(), session(r))
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) SetMine(w http.ResponseWriter, r *http.Request) {
	var req models.SetAvailabilityRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.SetMine(r.Context(), session(r), &req)
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) ClearMine(w http.ResponseWriter, r *http.Request) {
	var req models.ClearAvailabilityRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.ClearMine(r.Context(), session(r), &req)
	h.respond(w, a, err)
}

func (h *AvailabilityHandler) respond(w http.ResponseWriter, a *models.Availability, err error) {
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, a)
}
