package services

import (
	"testing"

	"staffing-backend/internal/models"
)

func TestCalculateInvoice(t *testing.T) {
	tests := []struct {
		name      string
		attendees int
		menu      models.MenuType
		catering  float64
		service   float64
		subtotal  float64
		gst       float64
		total     float64
	}{
		{"50 veg", 50, models.MenuVeg, 60000, 6000, 66000, 11880, 77880},
		{"10 veg", 10, models.MenuVeg, 12000, 1200, 13200, 2376, 15576},
		{"20 non-veg", 20, models.MenuNonVeg, 30000, 3000, 33000, 5940, 38940},
		{"1 veg", 1, models.MenuVeg, 1200, 120, 1320, 237.6, 1557.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInvoice(tt.attendees, tt.menu)
			if len(got.LineItems) != 2 {
				t.Fatalf("line items = %d", len(got.LineItems))
			}
			if got.LineItems[0].Amount != tt.catering {
				t.Errorf("catering = %v, want %v", got.LineItems[0].Amount, tt.catering)
			}
			if got.LineItems[1].Amount != tt.service {
				t.Errorf("service = %v, want %v", got.LineItems[1].Amount, tt.service)
			}
			if got.Subtotal != tt.subtotal || got.GSTAmount != tt.gst || got.TotalAmount != tt.total {
				t.Errorf("subtotal/gst/total = %v/%v/%v, want %v/%v/%v",
					got.Subtotal, got.GSTAmount, got.TotalAmount, tt.subtotal, tt.gst, tt.total)
			}
		})
	}
}
