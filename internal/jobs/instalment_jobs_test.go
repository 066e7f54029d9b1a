package jobs

import (
	"testing"

	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInstalmentScanReportsOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "booking_id", "folder_no", "pax_name", "due_date", "amount", "paid_amount", "status"}
	mock.ExpectQuery("FROM instalments i").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, 55, "101", "John Smith", "2025-06-01", 200.0, 50.0, "PARTIAL"))

	scanner := InstalmentScanner{LedgerRepo: repositories.LedgerRepository{DB: db}}
	scanner.Run()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	if _, err := NewScheduler("not a spec", InstalmentScanner{}); err == nil {
		t.Fatal("expected error for malformed cron spec")
	}
}
