package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/metrics"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

// ObjectStore keeps rendered invoice PDFs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// PaymentGateway creates checkout orders and verifies their signatures.
type PaymentGateway interface {
	Configured() bool
	KeyID() string
	CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type InvoiceService struct {
	invoices  InvoiceStore
	orders    OrderStore
	users     UserStore
	objects   ObjectStore
	gateway   PaymentGateway
	activity  *ActivityService
	publisher OrderEventPublisher
	log       logger.Logger
}

// NewInvoiceService accepts nil objects and gateway. PDFs are then rendered on every
// download and online payment reports ErrNotConfigured.
func NewInvoiceService(invoices InvoiceStore, orders OrderStore, users UserStore, objects ObjectStore, gateway PaymentGateway, activity *ActivityService, publisher OrderEventPublisher, log logger.Logger) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		orders:    orders,
		users:     users,
		objects:   objects,
		gateway:   gateway,
		activity:  activity,
		publisher: publisher,
		log:       log,
	}
}

func canBill(session auth.Session) bool {
	return session.HasRole(models.RoleAdmin, models.RoleAccountant)
}

// Generate computes and stores the invoice of a Reviewed order. The invoice is written
// before the order's invoice status flips to Generated. Regenerating keeps the number.
func (s *InvoiceService) Generate(ctx context.Context, session auth.Session, orderID string) (*models.Invoice, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderReviewed {
		return nil, ErrInvoiceNotReady
	}

	client, err := s.invoiceClient(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceNumber(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totals := CalculateInvoice(order.Attendees, order.MenuType)
	inv := &models.Invoice{
		OrderID:       orderID,
		InvoiceNumber: number,
		Client:        client,
		EventDate:     order.Date,
		LineItems:     totals.LineItems,
		Subtotal:      totals.Subtotal,
		GSTRate:       GSTRate,
		GSTAmount:     totals.GSTAmount,
		TotalAmount:   totals.TotalAmount,
		PaymentStatus: models.PaymentUnpaid,
		GeneratedBy:   session.UserID,
	}
	if err := s.invoices.Upsert(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	if err := s.orders.SetInvoiceStatus(ctx, orderID, models.InvoiceGenerated); err != nil {
		return nil, fmt.Errorf("invoice %s saved but order status not updated: %w", inv.InvoiceNumber, err)
	}

	metrics.InvoicesGeneratedTotal.Inc()
	s.activity.Record(ctx, session, models.ActionInvoice, models.TargetInvoice, orderID,
		fmt.Sprintf("Generated invoice %s", inv.InvoiceNumber), "", fmt.Sprintf("%.2f", inv.TotalAmount))
	s.log.Info("invoice generated", "order_id", orderID, "invoice_number", inv.InvoiceNumber, "total", inv.TotalAmount)

	order.InvoiceStatus = models.InvoiceGenerated
	publishOrder(ctx, s.publisher, models.OrderEventInvoiceCreated, order)
	return inv, nil
}

// invoiceNumber reuses the existing number so regeneration does not consume the sequence.
func (s *InvoiceService) invoiceNumber(ctx context.Context, orderID string) (string, error) {
	existing, err := s.invoices.Get(ctx, orderID)
	if err == nil {
		return existing.InvoiceNumber, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}
	number, err := s.invoices.NextInvoiceNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return number, nil
}

func (s *InvoiceService) invoiceClient(ctx context.Context, userID string) (models.InvoiceClient, error) {
	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		// The account may have been deleted after booking.
		return models.InvoiceClient{ID: userID, Name: "Client"}, nil
	}
	if err != nil {
		return models.InvoiceClient{}, err
	}
	name := user.Name
	if user.CompanyName != "" {
		name = user.CompanyName
	}
	return models.InvoiceClient{ID: user.ID, Name: name, Address: user.Address, GSTIN: user.GSTNumber}, nil
}

// Get returns an invoice to billing staff or to the client who booked the order.
func (s *InvoiceService) Get(ctx context.Context, session auth.Session, orderID string) (*models.Invoice, error) {
	inv, err := s.invoices.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if canBill(session) {
		return inv, nil
	}
	if session.IsClient() && inv.Client.ID == session.UserID {
		return inv, nil
	}
	return nil, models.ErrNotFound
}

func (s *InvoiceService) List(ctx context.Context, session auth.Session) ([]*models.Invoice, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	return s.invoices.List(ctx)
}

// PDF returns the rendered invoice. With object storage the first render is uploaded
// and later downloads are served from the stored copy.
func (s *InvoiceService) PDF(ctx context.Context, session auth.Session, orderID string) (*models.Invoice, []byte, error) {
	inv, err := s.Get(ctx, session, orderID)
	if err != nil {
		return nil, nil, err
	}

	if s.objects != nil && inv.PDFKey != "" {
		data, err := s.objects.Get(ctx, inv.PDFKey)
		if err == nil {
			return inv, data, nil
		}
		s.log.BusinessError("stored invoice pdf unavailable, rendering again", err, "order_id", orderID, "key", inv.PDFKey)
	}

	data, err := RenderInvoicePDF(inv)
	if err != nil {
		return nil, nil, err
	}
	if s.objects == nil {
		return inv, data, nil
	}

	key := fmt.Sprintf("invoices/%s.pdf", inv.InvoiceNumber)
	if err := s.objects.Put(ctx, key, "application/pdf", data); err != nil {
		s.log.InternalError("failed to upload invoice pdf", err, "order_id", orderID)
		return inv, data, nil
	}
	if err := s.invoices.SetPDFKey(ctx, orderID, key); err != nil {
		s.log.InternalError("failed to record invoice pdf key", err, "order_id", orderID)
		return inv, data, nil
	}
	inv.PDFKey = key
	return inv, data, nil
}

// CreatePaymentOrder opens a checkout for the invoice total in paise.
func (s *InvoiceService) CreatePaymentOrder(ctx context.Context, session auth.Session, orderID string) (*models.PaymentOrderResponse, error) {
	inv, err := s.Get(ctx, session, orderID)
	if err != nil {
		return nil, err
	}
	if s.gateway == nil || !s.gateway.Configured() {
		return nil, fmt.Errorf("%w: payments", ErrNotConfigured)
	}
	if inv.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	amount := int64(math.Round(inv.TotalAmount * 100))
	paymentOrderID, err := s.gateway.CreateOrder(amount, inv.InvoiceNumber, map[string]interface{}{
		"order_id":       orderID,
		"invoice_number": inv.InvoiceNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	if err := s.invoices.SetPaymentOrder(ctx, orderID, paymentOrderID); err != nil {
		return nil, fmt.Errorf("failed to record payment order: %w", err)
	}

	return &models.PaymentOrderResponse{
		PaymentOrderID: paymentOrderID,
		AmountPaise:    amount,
		Currency:       "INR",
		KeyID:          s.gateway.KeyID(),
		InvoiceNumber:  inv.InvoiceNumber,
	}, nil
}

// VerifyPayment checks the checkout signature and marks the invoice paid.
// Verifying the same payment twice returns the paid invoice.
func (s *InvoiceService) VerifyPayment(ctx context.Context, session auth.Session, req *models.VerifyPaymentRequest) (*models.Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.gateway == nil || !s.gateway.Configured() {
		return nil, fmt.Errorf("%w: payments", ErrNotConfigured)
	}

	inv, err := s.invoices.GetByPaymentOrder(ctx, req.PaymentOrderID)
	if err != nil {
		return nil, err
	}
	if !canBill(session) && inv.Client.ID != session.UserID {
		return nil, models.ErrNotFound
	}

	if !s.gateway.VerifySignature(req.PaymentOrderID, req.PaymentID, req.Signature) {
		metrics.PaymentsVerifiedTotal.WithLabelValues("invalid").Inc()
		s.log.Warn("payment signature mismatch", "order_id", inv.OrderID, "payment_order_id", req.PaymentOrderID)
		return nil, ErrPaymentSignature
	}
	if inv.PaymentStatus == models.PaymentPaid {
		if inv.PaymentID == req.PaymentID {
			return inv, nil
		}
		return nil, ErrAlreadyPaid
	}

	if err := s.invoices.MarkPaid(ctx, inv.OrderID, req.PaymentID); err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	metrics.PaymentsVerifiedTotal.WithLabelValues("verified").Inc()
	s.activity.Record(ctx, session, models.ActionPayment, models.TargetInvoice, inv.OrderID,
		fmt.Sprintf("Payment received for %s", inv.InvoiceNumber), string(models.PaymentUnpaid), req.PaymentID)
	return s.invoices.Get(ctx, inv.OrderID)
}
