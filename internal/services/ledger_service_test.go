package services

import (
	"strings"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "folder_no", "ref_no", "pax_name", "agent_name", "team_name", "num_pax",
	"pnr", "airline", "from_to", "booking_type", "booking_status", "description",
	"pc_date", "travel_date", "payment_method",
	"revenue", "prod_cost", "trans_fee", "surcharge", "profit", "balance",
	"approved_by_id", "is_settled", "settled_at", "created_at",
}

func bookingRow(id int64, settled bool) *sqlmock.Rows {
	settledAt := ""
	if settled {
		settledAt = "2025-08-01 12:00:00"
	}
	return sqlmock.NewRows(bookingCols).AddRow(
		id, "101", "REF-1", "John Smith", "Alice", "Team A", 2,
		"PNR1", "BA", "LHR-JFK", "FLIGHT", "CONFIRMED", "",
		"2025-06-01", "2025-07-01", "INTERNAL",
		1000.0, 600.0, 20.0, 30.0, 350.0, 500.0,
		9, settled, settledAt, "2025-06-02 10:00:00",
	)
}

func TestRecordTransactionRollsInstalmentForward(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	instCols := []string{"id", "due_date", "amount", "paid_amount", "type", "status"}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM instalments").WithArgs(int64(3), int64(55)).
		WillReturnRows(sqlmock.NewRows(instCols).AddRow(3, "2025-07-01", 200.0, 50.0, "INSTALMENT", "PARTIAL"))
	mock.ExpectExec("UPDATE instalments SET paid_amount").WithArgs(100.0, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM instalments").WithArgs(int64(3), int64(55)).
		WillReturnRows(sqlmock.NewRows(instCols).AddRow(3, "2025-07-01", 200.0, 150.0, "INSTALMENT", "PARTIAL"))
	mock.ExpectExec("UPDATE instalments SET status").WithArgs(domain.InstalmentPartial, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	txn, err := svc.RecordTransaction(55, models.TransactionInput{
		Amount:       100,
		Method:       "CARD",
		Date:         "2025-06-20",
		InstalmentID: 3,
	})
	if err != nil {
		t.Fatalf("record transaction error: %v", err)
	}
	if txn.ID != 9 {
		t.Fatalf("transaction id = %d, want 9", txn.ID)
	}
	if !strings.HasPrefix(txn.Reference, "RCPT-") {
		t.Fatalf("blank reference must get a receipt ref, got %q", txn.Reference)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordTransactionCompletesInstalment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	instCols := []string{"id", "due_date", "amount", "paid_amount", "type", "status"}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery("FROM instalments").WithArgs(int64(3), int64(55)).
		WillReturnRows(sqlmock.NewRows(instCols).AddRow(3, "2025-07-01", 200.0, 150.0, "INSTALMENT", "PARTIAL"))
	mock.ExpectExec("UPDATE instalments SET paid_amount").WithArgs(49.97, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// 199.97 is within tolerance of the expected 200
	mock.ExpectQuery("FROM instalments").WithArgs(int64(3), int64(55)).
		WillReturnRows(sqlmock.NewRows(instCols).AddRow(3, "2025-07-01", 200.0, 199.97, "INSTALMENT", "PARTIAL"))
	mock.ExpectExec("UPDATE instalments SET status").WithArgs(domain.InstalmentPaid, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	_, err = svc.RecordTransaction(55, models.TransactionInput{
		Amount:       49.97,
		Method:       "CARD",
		InstalmentID: 3,
	})
	if err != nil {
		t.Fatalf("record transaction error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordTransactionOnSettledBookingConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, true))
	mock.ExpectRollback()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	_, err = svc.RecordTransaction(55, models.TransactionInput{Amount: 100, Method: "CARD"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordTransactionRejectsNonPositiveAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	_, err = svc.RecordTransaction(55, models.TransactionInput{Amount: 0})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestRecordSupplierPaymentIncrementsCostPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	costCols := []string{"id", "supplier", "category", "amount", "paid_amount", "description"}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	mock.ExpectQuery("FROM supplier_costs").WithArgs(int64(4), int64(55)).
		WillReturnRows(sqlmock.NewRows(costCols).AddRow(4, "AirCo", "FLIGHT", 600.0, 0.0, ""))
	mock.ExpectExec("INSERT INTO supplier_payments").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE supplier_costs SET paid_amount").WithArgs(250.0, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	p, err := svc.RecordSupplierPayment(55, models.SupplierPaymentInput{
		Amount:         250,
		Method:         "BANK",
		SupplierCostID: 4,
	})
	if err != nil {
		t.Fatalf("record supplier payment error: %v", err)
	}
	if p.ID != 12 {
		t.Fatalf("payment id = %d, want 12", p.ID)
	}
	if !strings.HasPrefix(p.Reference, "SPAY-") {
		t.Fatalf("blank reference must get a payment ref, got %q", p.Reference)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettleFlipsTerminalFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	mock.ExpectExec("UPDATE bookings SET is_settled=1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// reload after commit
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, true))
	emptyBookingChildren(mock, 55)

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	booking, err := svc.Settle(55)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if !booking.IsSettled || booking.SettledAt == "" {
		t.Fatalf("settled flags not set: %+v", booking)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettleTwiceConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, true))
	mock.ExpectRollback()

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	_, err = svc.Settle(55)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateLedgerRecomputesProfitFromStoredCosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	costCols := []string{"id", "supplier", "category", "amount", "paid_amount", "description"}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	mock.ExpectExec("UPDATE supplier_costs SET supplier").
		WithArgs("AirCo", "FLIGHT", 450.0, "", int64(4), int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO supplier_costs").
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectQuery("FROM supplier_costs").WithArgs(int64(55)).
		WillReturnRows(sqlmock.NewRows(costCols).
			AddRow(4, "AirCo", "FLIGHT", 450.0, 250.0, "").
			AddRow(6, "HotelCo", "HOTEL", 150.0, 0.0, ""))
	// profit = 1200 - (600 + 25 + 35)
	mock.ExpectExec("UPDATE bookings SET revenue").
		WithArgs(1200.0, 600.0, 25.0, 35.0, 540.0, int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// reload after commit
	mock.ExpectQuery("FROM bookings").WithArgs(int64(55)).
		WillReturnRows(bookingRow(55, false))
	emptyBookingChildren(mock, 55)

	svc := LedgerService{
		BookingRepo: repositories.BookingRepository{DB: db},
		LedgerRepo:  repositories.LedgerRepository{DB: db},
		DB:          db,
	}
	_, err = svc.UpdateLedger(55, models.LedgerUpdateInput{
		Revenue:   1200,
		TransFee:  25,
		Surcharge: 35,
		SupplierCosts: []models.SupplierCostInput{
			{ID: 4, Supplier: "AirCo", Category: "FLIGHT", Amount: 450},
			{Supplier: "HotelCo", Category: "HOTEL", Amount: 150},
		},
	})
	if err != nil {
		t.Fatalf("update ledger error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func emptyBookingChildren(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery("FROM passengers").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "first_name", "last_name", "gender", "category", "birthday", "email", "contact_no", "nationality"}))
	mock.ExpectQuery("FROM initial_payments").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "transaction_method", "payment_date"}))
	mock.ExpectQuery("FROM instalments").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "due_date", "amount", "paid_amount", "type", "status"}))
	mock.ExpectQuery("FROM supplier_costs").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "supplier", "category", "amount", "paid_amount", "description"}))
	mock.ExpectQuery("FROM transactions").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "method", "pay_date", "reference", "instalment_id", "created_at"}))
	mock.ExpectQuery("FROM supplier_payments").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "supplier_cost_id", "amount", "method", "pay_date", "reference", "created_at"}))
}
