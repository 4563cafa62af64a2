package repositories

import (
	"context"
	"fmt"

	"staffing-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

const invoiceColumns = `order_id, invoice_number, client_id, client_name, client_address, client_gstin, event_date,
       line_items, subtotal, gst_rate, gst_amount, total_amount, payment_status, payment_order_id, payment_id,
       pdf_key, generated_by, created_at, updated_at, paid_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.OrderID, &inv.InvoiceNumber, &inv.Client.ID, &inv.Client.Name, &inv.Client.Address,
		&inv.Client.GSTIN, &inv.EventDate, &inv.LineItems, &inv.Subtotal, &inv.GSTRate, &inv.GSTAmount,
		&inv.TotalAmount, &inv.PaymentStatus, &inv.PaymentOrderID, &inv.PaymentID, &inv.PDFKey,
		&inv.GeneratedBy, &inv.CreatedAt, &inv.UpdatedAt, &inv.PaidAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &inv, nil
}

// NextInvoiceNumber generates the next invoice number using a database sequence (atomic)
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT nextval('invoice_number_sequence')`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to get invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", n), nil
}

// Upsert writes the invoice for an order. Regeneration keeps the number and payment state.
func (r *InvoiceRepository) Upsert(ctx context.Context, inv *models.Invoice) error {
	stored, err := scanInvoice(r.DB.QueryRow(ctx,
		`INSERT INTO invoices(order_id, invoice_number, client_id, client_name, client_address, client_gstin, event_date,
                              line_items, subtotal, gst_rate, gst_amount, total_amount, payment_status, generated_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
         ON CONFLICT (order_id) DO UPDATE SET
             client_id = EXCLUDED.client_id,
             client_name = EXCLUDED.client_name,
             client_address = EXCLUDED.client_address,
             client_gstin = EXCLUDED.client_gstin,
             event_date = EXCLUDED.event_date,
             line_items = EXCLUDED.line_items,
             subtotal = EXCLUDED.subtotal,
             gst_rate = EXCLUDED.gst_rate,
             gst_amount = EXCLUDED.gst_amount,
             total_amount = EXCLUDED.total_amount,
             generated_by = EXCLUDED.generated_by,
             pdf_key = '',
             updated_at = NOW()
         RETURNING `+invoiceColumns,
		inv.OrderID, inv.InvoiceNumber, inv.Client.ID, inv.Client.Name, inv.Client.Address, inv.Client.GSTIN,
		inv.EventDate, inv.LineItems, inv.Subtotal, inv.GSTRate, inv.GSTAmount, inv.TotalAmount,
		string(models.PaymentUnpaid), inv.GeneratedBy,
	))
	if err != nil {
		return err
	}
	*inv = *stored
	return nil
}

func (r *InvoiceRepository) Get(ctx context.Context, orderID string) (*models.Invoice, error) {
	return scanInvoice(r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id=$1`, orderID))
}

func (r *InvoiceRepository) GetByPaymentOrder(ctx context.Context, paymentOrderID string) (*models.Invoice, error) {
	return scanInvoice(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE payment_order_id=$1 AND payment_order_id <> ''`, paymentOrderID))
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) SetPDFKey(ctx context.Context, orderID, key string) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE invoices SET pdf_key=$1, updated_at=NOW() WHERE order_id=$2`, key, orderID))
}

func (r *InvoiceRepository) SetPaymentOrder(ctx context.Context, orderID, paymentOrderID string) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE invoices SET payment_order_id=$1, updated_at=NOW() WHERE order_id=$2`, paymentOrderID, orderID))
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE invoices SET payment_status='paid', payment_id=$1, paid_at=NOW(), updated_at=NOW() WHERE order_id=$2`,
		paymentID, orderID))
}
