package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PayoutHandler struct {
	Service *services.PayoutService
	log     logger.Logger
}

func NewPayoutHandler(s *services.PayoutService, log logger.Logger) *PayoutHandler {
	return &PayoutHandler{Service: s, log: log}
}

func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PayoutRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Service.Create(r.Context(), session(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *PayoutHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.Service.ListByOrder(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, payouts)
}

func (h *PayoutHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.MarkPaid(r.Context(), session(r), mux.Vars(r)["payoutId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}
