package memstore

import (
	"context"
	"time"

	"staffing-backend/internal/models"
)

type Invoices struct{ s *Store }

func copyInvoice(inv *models.Invoice) *models.Invoice {
	c := *inv
	c.LineItems = append([]models.LineItem{}, inv.LineItems...)
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		c.PaidAt = &t
	}
	return &c
}

func (r *Invoices) NextInvoiceNumber(_ context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.invoiceSeq++
	return invoiceNumber(r.s.invoiceSeq), nil
}

func (r *Invoices) Upsert(_ context.Context, inv *models.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if cur, ok := r.s.invoices[inv.OrderID]; ok {
		inv.InvoiceNumber = cur.InvoiceNumber
		inv.CreatedAt = cur.CreatedAt
		inv.PaymentStatus = cur.PaymentStatus
		inv.PaymentOrderID = cur.PaymentOrderID
		inv.PaymentID = cur.PaymentID
		inv.PaidAt = cur.PaidAt
	} else {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now
	r.s.invoices[inv.OrderID] = copyInvoice(inv)
	return nil
}

func (r *Invoices) Get(_ context.Context, orderID string) (*models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invoices[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyInvoice(inv), nil
}

func (r *Invoices) GetByPaymentOrder(_ context.Context, paymentOrderID string) (*models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, inv := range r.s.invoices {
		if inv.PaymentOrderID != "" && inv.PaymentOrderID == paymentOrderID {
			return copyInvoice(inv), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *Invoices) List(_ context.Context) ([]*models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		out = append(out, copyInvoice(inv))
	}
	sortByCreatedDesc(out, func(i *models.Invoice) time.Time { return i.CreatedAt })
	return out, nil
}

func (r *Invoices) update(orderID string, fn func(*models.Invoice)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[orderID]
	if !ok {
		return models.ErrNotFound
	}
	fn(inv)
	inv.UpdatedAt = r.s.now()
	return nil
}

func (r *Invoices) SetPDFKey(_ context.Context, orderID, key string) error {
	return r.update(orderID, func(inv *models.Invoice) { inv.PDFKey = key })
}

func (r *Invoices) SetPaymentOrder(_ context.Context, orderID, paymentOrderID string) error {
	return r.update(orderID, func(inv *models.Invoice) { inv.PaymentOrderID = paymentOrderID })
}

func (r *Invoices) MarkPaid(_ context.Context, orderID, paymentID string) error {
	return r.update(orderID, func(inv *models.Invoice) {
		now := r.s.now()
		inv.PaymentStatus = models.PaymentPaid
		inv.PaymentID = paymentID
		inv.PaidAt = &now
	})
}
