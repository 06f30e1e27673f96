package receipts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/utils"
)

// ReceiptData carries everything needed to render a payment receipt.
type ReceiptData struct {
	Tranche     domain.Tranche
	Enrollment  domain.Enrollment
	Program     domain.Program
	Student     domain.Student
	Currency    domain.Currency
	GeneratedAt time.Time
}

// RenderTrancheReceipt renders a one-page PDF receipt for a paid tranche.
func RenderTrancheReceipt(data ReceiptData) ([]byte, error) {
	if data.Tranche.ActualAmount == nil || data.Tranche.PaidAt == nil {
		return nil, fmt.Errorf("tranche %s has no recorded payment", data.Tranche.TrancheID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Receipt no. "+data.Tranche.TrancheID, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	amount := utils.FormatWithCurrencyPrecision(*data.Tranche.ActualAmount, data.Currency)
	totalPaid := utils.FormatWithCurrencyPrecision(data.Enrollment.PaidAmount, data.Currency)
	total := utils.FormatWithCurrencyPrecision(data.Enrollment.TotalAmount, data.Currency)

	rows := [][2]string{
		{"Student", data.Student.FullName},
		{"Program", data.Program.Name},
		{"Amount paid", data.Currency.Symbol + " " + amount},
		{"Paid at", data.Tranche.PaidAt.Format("2 January 2006 15:04")},
		{"Payment method", data.Tranche.PaymentMethod},
		{"Reference", data.Tranche.Reference},
		{"Received by", data.Tranche.ReceivedBy},
		{"Total paid to date", data.Currency.Symbol + " " + totalPaid},
		{"Program total", data.Currency.Symbol + " " + total},
		{"Enrollment status", string(data.Enrollment.Status)},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(125, 8, row[1], "1", 1, "", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "Generated at "+data.GeneratedAt.Format(time.RFC1123), "", 1, "", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
