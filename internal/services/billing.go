package services

import (
	"math"

	"staffing-backend/internal/models"
)

// Billing constants are fixed.
const (
	VegRatePerHead    = 1200.0
	NonVegRatePerHead = 1500.0
	ServiceChargeRate = 0.10
	GSTRate           = 0.18
)

// InvoiceTotals is the arithmetic part of an invoice.
type InvoiceTotals struct {
	LineItems   []models.LineItem
	Subtotal    float64
	GSTAmount   float64
	TotalAmount float64
}

// RatePerHead returns the catering rate for a menu type.
func RatePerHead(menu models.MenuType) float64 {
	if menu == models.MenuNonVeg {
		return NonVegRatePerHead
	}
	return VegRatePerHead
}

// CalculateInvoice prices an event: catering per head, a 10% service charge
// on catering, then 18% GST on the subtotal. Every amount is rounded to paise.
func CalculateInvoice(attendees int, menu models.MenuType) InvoiceTotals {
	rate := RatePerHead(menu)
	catering := round2(float64(attendees) * rate)
	service := round2(catering * ServiceChargeRate)

	items := []models.LineItem{
		{Description: cateringLabel(menu), Quantity: attendees, Rate: rate, Amount: catering},
		{Description: "Service charge (10%)", Quantity: 1, Rate: service, Amount: service},
	}

	var subtotal float64
	for _, li := range items {
		subtotal += li.Amount
	}
	subtotal = round2(subtotal)
	gst := round2(subtotal * GSTRate)

	return InvoiceTotals{
		LineItems:   items,
		Subtotal:    subtotal,
		GSTAmount:   gst,
		TotalAmount: round2(subtotal + gst),
	}
}

func cateringLabel(menu models.MenuType) string {
	if menu == models.MenuNonVeg {
		return "Catering (non-veg menu)"
	}
	return "Catering (veg menu)"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
