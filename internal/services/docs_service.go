package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the folder statement PDF for a live booking:
// planned figures, the derived cash position, supplier cost lines and
// the full payment log.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s DocsService) GenerateStatement(bookingID int64) ([]byte, string, error) {
	booking, err := s.bookings().GetByID(nil, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_statement", fmt.Sprintf("booking_id=%d folder_no=%s", bookingID, booking.FolderNo))
	return buildStatementPDF(booking)
}

func buildStatementPDF(b models.Booking) ([]byte, string, error) {
	snap := domain.Snapshot(b)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Folder Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FOLDER STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Folder No      : %s", safe(b.FolderNo, "-")),
		fmt.Sprintf("Reference      : %s", safe(b.RefNo, "-")),
		fmt.Sprintf("Lead Passenger : %s", safe(b.PaxName, "-")),
		fmt.Sprintf("Agent / Team   : %s / %s", safe(b.AgentName, "-"), safe(b.TeamName, "-")),
		fmt.Sprintf("Route          : %s (%s)", safe(b.FromTo, "-"), safe(b.Airline, "-")),
		fmt.Sprintf("Travel Date    : %s", safe(dateOnly(b.TravelDate), "-")),
		fmt.Sprintf("Status         : %s", statementStatus(b)),
	}
	for _, line := range head {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Planned figures")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	plan := []string{
		"Revenue          : " + gbp(b.Revenue),
		"Product cost     : " + gbp(b.ProdCost),
		"Transaction fee  : " + gbp(b.TransFee),
		"Surcharge        : " + gbp(b.Surcharge),
		"Profit           : " + gbp(b.Profit),
	}
	for _, line := range plan {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Cash position")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	cash := []string{
		"Deposits         : " + gbp(snap.DepositTotal),
		"Transactions     : " + gbp(snap.TransactionTotal),
		"Collected        : " + gbp(snap.Collected),
		"Outstanding      : " + gbp(snap.Outstanding),
		"Realized profit  : " + gbp(snap.RealizedProfit),
		"Supplier owed    : " + gbp(snap.SupplierOwed),
	}
	for _, line := range cash {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(b.SupplierCosts) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Supplier costs")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, c := range b.SupplierCosts {
			line := fmt.Sprintf("%s (%s): expected %s, paid %s", safe(c.Supplier, "-"), safe(c.Category, "-"), gbp(c.Amount), gbp(c.PaidAmount))
			pdf.MultiCell(0, 6, line, "", "", false)
		}
		pdf.Ln(4)
	}

	if len(b.Transactions) > 0 || len(b.SupplierPayments) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Payment log")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, t := range b.Transactions {
			line := fmt.Sprintf("IN  %s  %s  %s  %s", safe(dateOnly(t.Date), "-"), gbp(t.Amount), safe(t.Method, "-"), safe(t.Reference, "-"))
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		for _, p := range b.SupplierPayments {
			line := fmt.Sprintf("OUT %s  %s  %s  %s", safe(dateOnly(p.Date), "-"), gbp(p.Amount), safe(p.Method, "-"), safe(p.Reference, "-"))
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("STATEMENT_%s_%s.pdf", safeFilenamePart(b.FolderNo), safeFilenamePart(b.PaxName))
	return buf.Bytes(), filename, nil
}

func statementStatus(b models.Booking) string {
	if b.IsSettled {
		return fmt.Sprintf("SETTLED (%s)", safe(dateOnly(b.SettledAt), "-"))
	}
	return safe(b.BookingStatus, "-")
}

func gbp(v float64) string {
	return "GBP " + utils.FormatMoney(v)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
