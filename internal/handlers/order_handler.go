package handlers

import (
	"context"
	"net/http"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	Orders      *services.OrderService
	Assignments *services.AssignmentService
	log         logger.Logger
}

func NewOrderHandler(orders *services.OrderService, assignments *services.AssignmentService, log logger.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Assignments: assignments, log: log}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Orders.Create(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(r.Context(), session(r), mux.Vars(r)["id"])
	h.respond(w, o, err)
}

// List supports ?status=, ?from= and ?to= (ISO dates)
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.OrderFilter{
		Status: models.OrderStatus(q.Get("status")),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	orders, err := h.Orders.List(r.Context(), session(r), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Orders.UpdateDetails(r.Context(), session(r), mux.Vars(r)["id"], &req)
	h.respond(w, o, err)
}

type transitionFunc func(ctx context.Context, s auth.Session, id string) (*models.Order, error)

func (h *OrderHandler) transition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := fn(r.Context(), session(r), mux.Vars(r)["id"])
		h.respond(w, o, err)
	}
}

func (h *OrderHandler) Confirm() http.HandlerFunc  { return h.transition(h.Orders.Confirm) }
func (h *OrderHandler) Cancel() http.HandlerFunc   { return h.transition(h.Orders.Cancel) }
func (h *OrderHandler) Complete() http.HandlerFunc { return h.transition(h.Orders.Complete) }
func (h *OrderHandler) Review() http.HandlerFunc   { return h.transition(h.Orders.Review) }

func (h *OrderHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	c, err := h.Assignments.ListCandidates(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

func (h *OrderHandler) AssignedStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Assignments.AssignedStaff(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, staff)
}

type assignRequest struct {
	StaffID string `json:"staff_id"`
}

func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decode(w, r, &req) {
		return
	}
	if req.StaffID == "" {
		utils.ValidationFailed(w, map[string]string{"staff_id": "required"})
		return
	}
	o, err := h.Assignments.Assign(r.Context(), session(r), mux.Vars(r)["id"], req.StaffID)
	h.respond(w, o, err)
}

func (h *OrderHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	o, err := h.Assignments.Unassign(r.Context(), session(r), vars["id"], vars["staffId"])
	h.respond(w, o, err)
}

func (h *OrderHandler) respond(w http.ResponseWriter, o *models.Order, err error) {
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, o)
}
