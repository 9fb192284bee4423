package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// ReceiptService renders printable documents: completion receipts and table
// QR codes.
type ReceiptService struct {
	completions   *CompletionService
	restaurant    string
	publicBaseURL string
}

func NewReceiptService(completions *CompletionService, restaurant, publicBaseURL string) *ReceiptService {
	return &ReceiptService{completions: completions, restaurant: restaurant, publicBaseURL: publicBaseURL}
}

// CompletionReceipt renders the receipt of a completion as a PDF.
func (s *ReceiptService) CompletionReceipt(ctx context.Context, orderID string) ([]byte, error) {
	record, err := s.completions.GetCompletion(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.renderReceipt(record)
}

func (s *ReceiptService) renderReceipt(r *models.CompletionRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Receipt "+r.OrderID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(s.restaurant), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Order receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Order", r.OrderID},
		{"Table", fmt.Sprintf("%d", r.TableNumber)},
		{"Supplier", fmt.Sprintf("%s (%s)", r.SupplierName, r.SupplierID)},
		{"Completed", r.CompletedAt.Format("02 Jan 2006 15:04")},
	}
	for _, m := range meta {
		pdf.CellFormat(28, 6, m[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(m[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(88, 7, "Item", "B", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range r.Items {
		name := item.FoodName
		if item.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", name, item.Quantity)
		}
		pdf.CellFormat(88, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, utils.FormatRupees(item.TotalPrice), "", 1, "R", false, 0, "")
		if item.SpecialInstructions != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(0, 4, tr("  "+item.SpecialInstructions), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(88, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatRupees(r.TotalAmount), "T", 1, "R", false, 0, "")

	if r.RefundStatus == models.RefundStatusProcessed {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(88, 6, "Refunded ("+tr(r.RefundPaymentID)+")", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, "-"+utils.FormatRupees(r.RefundAmount), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, utils.NewInternalError("failed to render receipt", err)
	}
	return buf.Bytes(), nil
}

// TableQR encodes the ordering link of a table as a PNG QR code.
func (s *ReceiptService) TableQR(tableNumber int, size int) ([]byte, error) {
	if tableNumber <= 0 {
		return nil, utils.NewValidationError("tableNumber must be greater than 0")
	}
	if size < 128 || size > 1024 {
		size = 256
	}
	link := fmt.Sprintf("%s/menu?table=%d", s.publicBaseURL, tableNumber)
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, utils.NewInternalError("failed to encode QR code", err)
	}
	return png, nil
}
