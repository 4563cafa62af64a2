package models

import "time"

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

type InvoiceClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// Invoice is derived from a reviewed order and keyed 1:1 by its id.
type Invoice struct {
	OrderID        string        `json:"order_id"`
	InvoiceNumber  string        `json:"invoice_number"`
	Client         InvoiceClient `json:"client"`
	EventDate      string        `json:"event_date"`
	LineItems      []LineItem    `json:"line_items"`
	Subtotal       float64       `json:"subtotal"`
	GSTRate        float64       `json:"gst_rate"`
	GSTAmount      float64       `json:"gst_amount"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	PaymentOrderID string        `json:"payment_order_id,omitempty"`
	PaymentID      string        `json:"payment_id,omitempty"`
	PDFKey         string        `json:"pdf_key,omitempty"`
	GeneratedBy    string        `json:"generated_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
}

// PaymentOrderResponse is returned to the client to open the checkout.
type PaymentOrderResponse struct {
	PaymentOrderID string `json:"payment_order_id"`
	AmountPaise    int64  `json:"amount_paise"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
	InvoiceNumber  string `json:"invoice_number"`
}

type VerifyPaymentRequest struct {
	PaymentOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

func (r *VerifyPaymentRequest) Validate() error {
	var v ValidationError
	if r.PaymentOrderID == "" {
		v.Add("razorpay_order_id", "required")
	}
	if r.PaymentID == "" {
		v.Add("razorpay_payment_id", "required")
	}
	if r.Signature == "" {
		v.Add("razorpay_signature", "required")
	}
	return v.Err()
}
