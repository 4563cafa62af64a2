package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FirmHandler struct {
	Service *services.FirmService
	log     logger.Logger
}

func NewFirmHandler(s *services.FirmService, log logger.Logger) *FirmHandler {
	return &FirmHandler{Service: s, log: log}
}

func (h *FirmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.FirmRequest
	if !decode(w, r, &req) {
		return
	}
	f, err := h.Service.Create(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, f)
}

func (h *FirmHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, f)
}

func (h *FirmHandler) List(w http.ResponseWriter, r *http.Request) {
	firms, err := h.Service.List(r.Context(), session(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, firms)
}

func (h *FirmHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.FirmRequest
	if !decode(w, r, &req) {
		return
	}
	f, err := h.Service.Update(r.Context(), session(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, f)
}

func (h *FirmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), session(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
