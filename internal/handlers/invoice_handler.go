package handlers

import (
	"fmt"
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
	log     logger.Logger
}

func NewInvoiceHandler(s *services.InvoiceService, log logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{Service: s, log: log}
}

// Generate creates or regenerates the invoice of a reviewed order
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Service.Generate(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.List(r.Context(), session(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// DownloadPDF streams the invoice as an attachment
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	inv, data, err := h.Service.PDF(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CreatePaymentOrder opens a Razorpay checkout for the invoice total
func (h *InvoiceHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.CreatePaymentOrder(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// VerifyPayment checks the checkout callback signature
func (h *InvoiceHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := h.Service.VerifyPayment(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}
