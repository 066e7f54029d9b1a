package services

import (
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApproveCopiesDraftAllocatesFolderAndDeletesIt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()

	mock.ExpectQuery("FROM pending_bookings pb").WithArgs(int64(5)).
		WillReturnRows(pendingRow(5, "INTERNAL", 1000, 600, 350, 500))
	mock.ExpectQuery("FROM pending_passengers").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "first_name", "last_name", "gender", "category", "birthday", "email", "contact_no", "nationality"}).
			AddRow(1, "Mr", "John", "Smith", "M", "ADULT", "1980-01-01", "john@example.com", "0700", "UK"))
	mock.ExpectQuery("FROM pending_initial_payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "transaction_method", "payment_date"}).
			AddRow(1, 500.0, "CARD", "2025-06-01"))
	mock.ExpectQuery("FROM pending_instalments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "due_date", "amount", "status"}).
			AddRow(1, "2025-07-01", 500.0, "PENDING"))
	mock.ExpectQuery("FROM pending_supplier_costs").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "supplier", "category", "amount", "description"}).
			AddRow(1, "AirCo", "FLIGHT", 600.0, ""))

	// folder counter increment
	mock.ExpectExec("UPDATE counters").WithArgs("folder_no").
		WillReturnResult(sqlmock.NewResult(101, 1))

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO initial_payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO instalments").
		WithArgs(int64(55), "2025-07-01", 500.0, 0.0, "INSTALMENT", "PENDING").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO supplier_costs").
		WithArgs(int64(55), "AirCo", "FLIGHT", 600.0, 0.0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("DELETE FROM pending_passengers").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM pending_initial_payments").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM pending_instalments").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM pending_supplier_costs").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM pending_bookings").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	svc := ApprovalService{
		PendingRepo: repositories.PendingRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}
	booking, err := svc.Approve(5, 9)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if booking.FolderNo != "101" {
		t.Fatalf("folder no = %q, want 101", booking.FolderNo)
	}
	if booking.BookingStatus != domain.StatusConfirmed {
		t.Fatalf("status = %q, want CONFIRMED", booking.BookingStatus)
	}
	if booking.ApprovedByID != 9 {
		t.Fatalf("approved_by = %d, want 9", booking.ApprovedByID)
	}
	if len(booking.Instalments) != 1 || booking.Instalments[0].PaidAmount != 0 || booking.Instalments[0].Status != domain.InstalmentPending {
		t.Fatalf("instalments must restart at zero paid / PENDING, got %+v", booking.Instalments)
	}
	if len(booking.SupplierCosts) != 1 || booking.SupplierCosts[0].PaidAmount != 0 {
		t.Fatalf("supplier costs must restart at zero paid, got %+v", booking.SupplierCosts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApproveMissingDraftRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM pending_bookings pb").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(pendingCols))
	mock.ExpectRollback()

	svc := ApprovalService{
		PendingRepo: repositories.PendingRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}
	_, err = svc.Approve(42, 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectDeletesDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	for _, table := range []string{"pending_passengers", "pending_initial_payments", "pending_instalments", "pending_supplier_costs"} {
		mock.ExpectExec("DELETE FROM " + table).WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("DELETE FROM pending_bookings").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := ApprovalService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	if err := svc.Reject(5); err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectMissingDraftReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	for _, table := range []string{"pending_passengers", "pending_initial_payments", "pending_instalments", "pending_supplier_costs"} {
		mock.ExpectExec("DELETE FROM " + table).WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("DELETE FROM pending_bookings").WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := ApprovalService{PendingRepo: repositories.PendingRepository{DB: db}, DB: db}
	err = svc.Reject(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
