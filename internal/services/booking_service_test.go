package services

import (
	"strings"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var pendingCols = []string{
	"id", "ref_no", "pax_name", "agent_name", "team_name", "num_pax",
	"pnr", "airline", "from_to", "booking_type", "booking_status", "description",
	"pc_date", "travel_date", "payment_method",
	"revenue", "prod_cost", "trans_fee", "surcharge", "profit", "balance",
	"created_by_id", "created_at", "created_by_name",
}

func pendingRow(id int64, method string, revenue, prodCost, profit, balance float64) *sqlmock.Rows {
	return sqlmock.NewRows(pendingCols).AddRow(
		id, "REF-1", "John Smith", "Alice", "Team A", 2,
		"PNR1", "BA", "LHR-JFK", "FLIGHT", "PENDING", "",
		"2025-06-01", "2025-07-01", method,
		revenue, prodCost, 0.0, 0.0, profit, balance,
		1, "2025-06-01 10:00:00", "Alice Agent",
	)
}

func emptyChildRows(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery("FROM pending_passengers").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "first_name", "last_name", "gender", "category", "birthday", "email", "contact_no", "nationality"}))
	mock.ExpectQuery("FROM pending_initial_payments").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "transaction_method", "payment_date"}))
	mock.ExpectQuery("FROM pending_instalments").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "due_date", "amount", "status"}))
	mock.ExpectQuery("FROM pending_supplier_costs").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "supplier", "category", "amount", "description"}))
}

func TestCreateRejectsMissingReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := BookingService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	_, err = svc.Create(models.BookingInput{PaxName: "John", PaymentMethod: "FULL"}, 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestCreateRejectsUnknownPaymentMethod(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := BookingService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	_, err = svc.Create(models.BookingInput{RefNo: "R1", PaxName: "John", PaymentMethod: "CREDIT"}, 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestCreateInternalRejectsInstalmentMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	input := models.BookingInput{
		RefNo:         "R1",
		PaxName:       "John Smith",
		PaymentMethod: "internal",
		Revenue:       1000,
		InitialPayments: []models.InitialPaymentInput{
			{Amount: 500, TransactionMethod: "CARD"},
		},
		Instalments: []models.InstalmentInput{
			{DueDate: "2025-07-01", Amount: 300},
		},
	}

	svc := BookingService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	_, err = svc.Create(input, 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "500.00") || !strings.Contains(msg, "300.00") {
		t.Fatalf("error must quote both figures, got %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rejected draft must leave no rows behind: %v", err)
	}
}

func TestCreateFullMethodDerivesProductCost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pending_bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO pending_initial_payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pending_supplier_costs").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// reload after commit
	mock.ExpectQuery("FROM pending_bookings pb").WithArgs(int64(7)).
		WillReturnRows(pendingRow(7, "FULL", 1000, 600, 350, 800))
	emptyChildRows(mock, 7)

	input := models.BookingInput{
		RefNo:         "REF-1",
		PaxName:       "John Smith",
		PaymentMethod: "FULL",
		Revenue:       1000,
		TransFee:      20,
		Surcharge:     30,
		// client-sent prodCost is ignored on create
		ProdCost: 9999,
		InitialPayments: []models.InitialPaymentInput{
			{Amount: 200, TransactionMethod: "CARD", PaymentDate: "2025-06-01"},
		},
		SupplierCosts: []models.SupplierCostInput{
			{Supplier: "AirCo", Category: "FLIGHT", Amount: 600},
		},
	}

	svc := BookingService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	draft, err := svc.Create(input, 1)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if draft.ID != 7 {
		t.Fatalf("draft id = %d, want 7", draft.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateInternalReenforcesInstalmentRule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM pending_bookings pb").WithArgs(int64(5)).
		WillReturnRows(pendingRow(5, "INTERNAL", 1000, 600, 350, 500))
	mock.ExpectQuery("FROM pending_passengers").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "first_name", "last_name", "gender", "category", "birthday", "email", "contact_no", "nationality"}))
	mock.ExpectQuery("FROM pending_initial_payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "transaction_method", "payment_date"}).
			AddRow(1, 500.0, "CARD", "2025-06-01"))
	mock.ExpectQuery("FROM pending_instalments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "due_date", "amount", "status"}).
			AddRow(1, "2025-07-01", 500.0, "PENDING"))
	mock.ExpectQuery("FROM pending_supplier_costs").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "supplier", "category", "amount", "description"}))
	mock.ExpectRollback()

	// raising revenue moves the balance away from the scheduled 500
	input := models.BookingInput{
		RefNo:    "REF-1",
		PaxName:  "John Smith",
		Revenue:  1200,
		ProdCost: 600,
	}

	svc := BookingService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	_, err = svc.Update(5, input)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "700.00") {
		t.Fatalf("error must quote the new balance, got %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
