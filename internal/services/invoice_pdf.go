package services

import (
	"bytes"
	"fmt"

	"staffing-backend/internal/models"
	"staffing-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/skip2/go-qrcode"
)

const companyHeading = "Event Staffing & Catering"

// RenderInvoicePDF draws an A4 tax invoice with a QR code carrying the invoice number and total.
func RenderInvoicePDF(inv *models.Invoice) ([]byte, error) {
	qrPayload := fmt.Sprintf("%s|%.2f", inv.InvoiceNumber, inv.TotalAmount)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, companyHeading, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(190, 8, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 165, 10, 35, 35, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", inv.UpdatedAt.In(timeutil.IST).Format(timeutil.InvoiceLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Event Date: %s", timeutil.DisplayDate(inv.EventDate)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bill To", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, inv.Client.Name, "LR", 1, "L", false, 0, "")
	if inv.Client.Address != "" {
		pdf.CellFormat(190, 7, inv.Client.Address, "LR", 1, "L", false, 0, "")
	}
	gstin := inv.Client.GSTIN
	if gstin == "" {
		gstin = "-"
	}
	pdf.CellFormat(190, 7, fmt.Sprintf("GSTIN: %s", gstin), "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, li := range inv.LineItems {
		pdf.CellFormat(90, 6, li.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", li.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", li.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", li.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	totalRow := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(150, 7, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", amount), "1", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", inv.Subtotal, false)
	totalRow(fmt.Sprintf("GST @ %.0f%%", inv.GSTRate*100), inv.GSTAmount, false)
	totalRow("Total", inv.TotalAmount, true)
	pdf.Ln(5)

	if inv.PaymentStatus == models.PaymentPaid {
		pdf.SetFillColor(200, 255, 200)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 9, "PAID", "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
