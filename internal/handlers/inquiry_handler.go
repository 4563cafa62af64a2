package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InquiryHandler struct {
	Service *services.InquiryService
	log     logger.Logger
}

func NewInquiryHandler(s *services.InquiryService, log logger.Logger) *InquiryHandler {
	return &InquiryHandler{Service: s, log: log}
}

// Submit is the public lead form
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.InquiryRequest
	if !decode(w, r, &req) {
		return
	}
	i, err := h.Service.Submit(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"id": i.ID, "status": string(i.Status)})
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), session(r), models.InquiryStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	i, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, i)
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.InquiryStatusRequest
	if !decode(w, r, &req) {
		return
	}
	i, err := h.Service.UpdateStatus(r.Context(), session(r), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, i)
}
