package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type StaffHandler struct {
	Service *services.StaffService
	Payouts *services.PayoutService
	log     logger.Logger
}

func NewStaffHandler(s *services.StaffService, payouts *services.PayoutService, log logger.Logger) *StaffHandler {
	return &StaffHandler{Service: s, Payouts: payouts, log: log}
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := h.Service.Create(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, st)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, st)
}

// List supports ?role= and ?active=true
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.StaffFilter{
		Role:       models.Role(q.Get("role")),
		ActiveOnly: q.Get("active") == "true",
	}
	staff, err := h.Service.List(r.Context(), session(r), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if staff == nil {
		staff = []*models.Staff{}
	}
	utils.JSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := h.Service.Update(r.Context(), session(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, st)
}

func (h *StaffHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req models.SetActiveRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := h.Service.SetActive(r.Context(), session(r), mux.Vars(r)["id"], req.IsActive)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, st)
}

func (h *StaffHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	e, err := h.Payouts.Earnings(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}

// Mine returns the staff record linked to the caller
func (h *StaffHandler) Mine(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Mine(r.Context(), session(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, st)
}

func (h *StaffHandler) MyEarnings(w http.ResponseWriter, r *http.Request) {
	e, err := h.Payouts.MyEarnings(r.Context(), session(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}
