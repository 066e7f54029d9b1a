package repositories

import (
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// LedgerRepository appends cash-flow rows and keeps instalment and
// supplier-cost paid totals in step with them. Transactions and
// supplier payments are append-only; paid amounts only ever increase.
type LedgerRepository struct {
	DB *sql.DB
}

func (r LedgerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// InsertTransaction appends one incoming client payment row.
func (r LedgerRepository) InsertTransaction(q intdb.DBTX, bookingID int64, t models.Transaction) (int64, error) {
	var instalmentID any
	if t.InstalmentID > 0 {
		instalmentID = t.InstalmentID
	}
	res, err := q.Exec(`
		INSERT INTO transactions (booking_id, amount, method, pay_date, reference, instalment_id)
		VALUES (?,?,?,?,?,?)`,
		bookingID, t.Amount, t.Method, intdb.NullIfEmpty(t.Date), t.Reference, instalmentID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetInstalment loads one instalment, scoped to its booking.
func (r LedgerRepository) GetInstalment(q intdb.DBTX, bookingID, instalmentID int64) (models.Instalment, error) {
	var i models.Instalment
	err := q.QueryRow(`
		SELECT id, COALESCE(due_date,''), amount, paid_amount, COALESCE(type,''), status
		FROM instalments
		WHERE id = ? AND booking_id = ?
		LIMIT 1`, instalmentID, bookingID).
		Scan(&i.ID, &i.DueDate, &i.Amount, &i.PaidAmount, &i.Type, &i.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Instalment{}, domain.NotFoundError{Resource: "instalment", Err: err}
		}
		return models.Instalment{}, err
	}
	return i, nil
}

// AddInstalmentPaid increments the cumulative paid amount. There is no
// decrement path anywhere in the system.
func (r LedgerRepository) AddInstalmentPaid(q intdb.DBTX, instalmentID int64, amount float64) error {
	_, err := q.Exec(`UPDATE instalments SET paid_amount = paid_amount + ? WHERE id = ?`, amount, instalmentID)
	return err
}

func (r LedgerRepository) SetInstalmentStatus(q intdb.DBTX, instalmentID int64, status string) error {
	_, err := q.Exec(`UPDATE instalments SET status = ? WHERE id = ?`, status, instalmentID)
	return err
}

// GetSupplierCost loads one cost line, scoped to its booking.
func (r LedgerRepository) GetSupplierCost(q intdb.DBTX, bookingID, costID int64) (models.SupplierCost, error) {
	var c models.SupplierCost
	err := q.QueryRow(`
		SELECT id, COALESCE(supplier,''), COALESCE(category,''), amount, paid_amount, COALESCE(description,'')
		FROM supplier_costs
		WHERE id = ? AND booking_id = ?
		LIMIT 1`, costID, bookingID).
		Scan(&c.ID, &c.Supplier, &c.Category, &c.Amount, &c.PaidAmount, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SupplierCost{}, domain.NotFoundError{Resource: "supplier cost item", Err: err}
		}
		return models.SupplierCost{}, err
	}
	return c, nil
}

// InsertSupplierPayment appends one outgoing payment row.
func (r LedgerRepository) InsertSupplierPayment(q intdb.DBTX, bookingID int64, p models.SupplierPayment) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO supplier_payments (booking_id, supplier_cost_id, amount, method, pay_date, reference)
		VALUES (?,?,?,?,?,?)`,
		bookingID, p.SupplierCostID, p.Amount, p.Method, intdb.NullIfEmpty(p.Date), p.Reference)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSupplierCosts returns every cost line for one booking.
func (r LedgerRepository) ListSupplierCosts(q intdb.DBTX, bookingID int64) ([]models.SupplierCost, error) {
	rows, err := q.Query(`
		SELECT id, COALESCE(supplier,''), COALESCE(category,''), amount, paid_amount, COALESCE(description,'')
		FROM supplier_costs WHERE booking_id = ? ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SupplierCost{}
	for rows.Next() {
		var c models.SupplierCost
		if err := rows.Scan(&c.ID, &c.Supplier, &c.Category, &c.Amount, &c.PaidAmount, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddSupplierCostPaid increments a cost line's cumulative paid amount.
func (r LedgerRepository) AddSupplierCostPaid(q intdb.DBTX, costID int64, amount float64) error {
	_, err := q.Exec(`UPDATE supplier_costs SET paid_amount = paid_amount + ? WHERE id = ?`, amount, costID)
	return err
}

// ListDueUnpaid returns instalments past their due date and not PAID,
// joined with folder context for the reminder report.
func (r LedgerRepository) ListDueUnpaid(today string) ([]OverdueInstalment, error) {
	rows, err := r.db().Query(`
		SELECT i.id, i.booking_id, b.folder_no, b.pax_name,
		       COALESCE(i.due_date,''), i.amount, i.paid_amount, i.status
		FROM instalments i
		JOIN bookings b ON b.id = i.booking_id
		WHERE i.status <> ? AND i.due_date IS NOT NULL AND i.due_date < ?
		  AND b.is_settled = 0
		ORDER BY i.due_date, i.id`, domain.InstalmentPaid, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OverdueInstalment{}
	for rows.Next() {
		var o OverdueInstalment
		if err := rows.Scan(&o.InstalmentID, &o.BookingID, &o.FolderNo, &o.PaxName,
			&o.DueDate, &o.Amount, &o.PaidAmount, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// OverdueInstalment is one line of the daily reminder report.
type OverdueInstalment struct {
	InstalmentID int64
	BookingID    int64
	FolderNo     string
	PaxName      string
	DueDate      string
	Amount       float64
	PaidAmount   float64
	Status       string
}
