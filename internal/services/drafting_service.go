package services

import (
	"context"
	"errors"
	"fmt"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/generative"
	"staffing-backend/internal/metrics"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

// DraftingService feeds stored orders, invoices and firms into the generative flows.
type DraftingService struct {
	drafter  *generative.Drafter
	orders   OrderStore
	invoices InvoiceStore
	firms    FirmStore
	users    UserStore
	log      logger.Logger
}

func NewDraftingService(drafter *generative.Drafter, orders OrderStore, invoices InvoiceStore, firms FirmStore, users UserStore, log logger.Logger) *DraftingService {
	return &DraftingService{drafter: drafter, orders: orders, invoices: invoices, firms: firms, users: users, log: log}
}

type WaiterCountRequest struct {
	OrderID   string          `json:"order_id"`
	Attendees int             `json:"attendees"`
	MenuType  models.MenuType `json:"menu_type"`
	EventType string          `json:"event_type"`
	Venue     string          `json:"venue"`
}

type AgreementRequest struct {
	FirmID   string `json:"firm_id"`
	ClientID string `json:"client_id"`
	OrderID  string `json:"order_id"`
	Terms    string `json:"terms"`
}

// SuggestWaiterCount works from an existing order or from ad hoc event details.
func (s *DraftingService) SuggestWaiterCount(ctx context.Context, session auth.Session, req *WaiterCountRequest) (*generative.WaiterCountSuggestion, error) {
	if !session.HasRole(models.RoleAdmin, models.RoleOperationalManager, models.RoleSales, models.RoleAccountant) {
		return nil, ErrForbidden
	}
	if req.OrderID != "" {
		order, err := s.orders.Get(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}
		req.Attendees, req.MenuType, req.EventType, req.Venue = order.Attendees, order.MenuType, order.EventType, order.Venue
	}

	var v models.ValidationError
	if req.Attendees <= 0 {
		v.Add("attendees", "must be greater than zero")
	}
	if !req.MenuType.Valid() {
		v.Add("menu_type", "must be veg or non-veg")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	out, err := s.drafter.SuggestWaiterCount(ctx, generative.WaiterCountInput{
		Attendees: req.Attendees,
		MenuType:  string(req.MenuType),
		EventType: req.EventType,
		Venue:     req.Venue,
	})
	return out, s.generationErr("waiters", err)
}

// DraftInvoice words the invoice of an order. The figures come from the stored invoice.
func (s *DraftingService) DraftInvoice(ctx context.Context, session auth.Session, orderID string) (*generative.InvoiceDraft, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.Get(ctx, orderID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvoiceNotReady
	}
	if err != nil {
		return nil, err
	}

	items := make([]generative.DraftLineItem, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = generative.DraftLineItem{Description: li.Description, Quantity: li.Quantity, Rate: li.Rate, Amount: li.Amount}
	}
	out, err := s.drafter.DraftInvoice(ctx, generative.InvoiceDraftInput{
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.Client.Name,
		ClientAddress: inv.Client.Address,
		ClientGSTIN:   inv.Client.GSTIN,
		EventDate:     order.Date,
		EventType:     order.EventType,
		Attendees:     order.Attendees,
		MenuType:      string(order.MenuType),
		LineItems:     items,
		Subtotal:      inv.Subtotal,
		GSTAmount:     inv.GSTAmount,
		TotalAmount:   inv.TotalAmount,
	})
	return out, s.generationErr("invoice", err)
}

// DraftAgreement drafts terms with a firm or a client, optionally for one order.
func (s *DraftingService) DraftAgreement(ctx context.Context, session auth.Session, req *AgreementRequest) (*generative.AgreementDraft, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	if (req.FirmID == "") == (req.ClientID == "") {
		return nil, &models.ValidationError{Fields: map[string]string{"firm_id": "exactly one of firm_id or client_id is required"}}
	}

	in := generative.AgreementInput{Terms: req.Terms}
	if req.FirmID != "" {
		f, err := s.firms.Get(ctx, req.FirmID)
		if err != nil {
			return nil, err
		}
		in.PartyName, in.PartyAddress, in.PartyGSTIN = f.Name, f.Address, f.GSTNumber
	} else {
		u, err := s.users.Get(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		in.PartyName = u.Name
		if u.CompanyName != "" {
			in.PartyName = u.CompanyName
		}
		in.PartyAddress, in.PartyGSTIN = u.Address, u.GSTNumber
	}
	if req.OrderID != "" {
		o, err := s.orders.Get(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}
		in.EventDate, in.EventType, in.Venue = o.Date, o.EventType, o.Venue
		in.Attendees, in.MenuType = o.Attendees, string(o.MenuType)
	}

	out, err := s.drafter.DraftAgreement(ctx, in)
	return out, s.generationErr("agreement", err)
}

// generationErr maps provider failures onto service errors and counts the outcome.
func (s *DraftingService) generationErr(flow string, err error) error {
	switch {
	case err == nil:
		metrics.GenerativeRequestsTotal.WithLabelValues(flow, "ok").Inc()
		return nil
	case errors.Is(err, generative.ErrNotConfigured):
		metrics.GenerativeRequestsTotal.WithLabelValues(flow, "not_configured").Inc()
		return fmt.Errorf("%w: generative provider", ErrNotConfigured)
	case errors.Is(err, context.Canceled):
		return err
	default:
		metrics.GenerativeRequestsTotal.WithLabelValues(flow, "error").Inc()
		s.log.BusinessError("generative request failed", err, "flow", flow)
		return fmt.Errorf("%w: %v", ErrExternal, err)
	}
}
