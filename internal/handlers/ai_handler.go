package handlers

import (
	"net/http"

	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AIHandler struct {
	Service *services.DraftingService
	log     logger.Logger
}

func NewAIHandler(s *services.DraftingService, log logger.Logger) *AIHandler {
	return &AIHandler{Service: s, log: log}
}

func (h *AIHandler) SuggestWaiterCount(w http.ResponseWriter, r *http.Request) {
	var req services.WaiterCountRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.Service.SuggestWaiterCount(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}

func (h *AIHandler) DraftInvoice(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.DraftInvoice(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}

func (h *AIHandler) DraftAgreement(w http.ResponseWriter, r *http.Request) {
	var req services.AgreementRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.Service.DraftAgreement(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}
