package repositories

import (
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// BookingRepository persists live (approved) bookings and their children.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelectCols = `
	SELECT id, folder_no, ref_no, pax_name,
	       COALESCE(agent_name,''), COALESCE(team_name,''), num_pax,
	       COALESCE(pnr,''), COALESCE(airline,''), COALESCE(from_to,''),
	       COALESCE(booking_type,''), booking_status, COALESCE(description,''),
	       COALESCE(pc_date,''), COALESCE(travel_date,''), payment_method,
	       revenue, prod_cost, trans_fee, surcharge, profit, balance,
	       approved_by_id, is_settled, COALESCE(settled_at,''), COALESCE(created_at,'')
	FROM bookings`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.FolderNo, &b.RefNo, &b.PaxName,
		&b.AgentName, &b.TeamName, &b.NumPax,
		&b.PNR, &b.Airline, &b.FromTo,
		&b.BookingType, &b.BookingStatus, &b.Description,
		&b.PCDate, &b.TravelDate, &b.PaymentMethod,
		&b.Revenue, &b.ProdCost, &b.TransFee, &b.Surcharge, &b.Profit, &b.Balance,
		&b.ApprovedByID, &b.IsSettled, &b.SettledAt, &b.CreatedAt,
	)
	return b, err
}

// GetByID loads one live booking with all children.
func (r BookingRepository) GetByID(q intdb.DBTX, id int64) (models.Booking, error) {
	if q == nil {
		q = r.db()
	}
	b, err := scanBooking(q.QueryRow(bookingSelectCols+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	if err := r.loadChildren(q, &b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// GetScalars loads one live booking without children, for guards and
// financial updates that do not need the full tree.
func (r BookingRepository) GetScalars(q intdb.DBTX, id int64) (models.Booking, error) {
	if q == nil {
		q = r.db()
	}
	b, err := scanBooking(q.QueryRow(bookingSelectCols+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ListApproved returns every live booking newest-first with children.
func (r BookingRepository) ListApproved() ([]models.Booking, error) {
	q := r.db()
	rows, err := q.Query(bookingSelectCols + ` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadChildren(q, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Count reports how many live bookings exist.
func (r BookingRepository) Count() (int64, error) {
	var n int64
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (r BookingRepository) loadChildren(q intdb.DBTX, b *models.Booking) error {
	paxRows, err := q.Query(`
		SELECT id, COALESCE(title,''), COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(gender,''), COALESCE(category,''), COALESCE(birthday,''),
		       COALESCE(email,''), COALESCE(contact_no,''), COALESCE(nationality,'')
		FROM passengers WHERE booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer paxRows.Close()
	for paxRows.Next() {
		var p models.Passenger
		if err := paxRows.Scan(&p.ID, &p.Title, &p.FirstName, &p.LastName, &p.Gender,
			&p.Category, &p.Birthday, &p.Email, &p.ContactNo, &p.Nationality); err != nil {
			return err
		}
		b.Passengers = append(b.Passengers, p)
	}
	if err := paxRows.Err(); err != nil {
		return err
	}

	payRows, err := q.Query(`
		SELECT id, amount, COALESCE(transaction_method,''), COALESCE(payment_date,'')
		FROM initial_payments WHERE booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p models.InitialPayment
		if err := payRows.Scan(&p.ID, &p.Amount, &p.TransactionMethod, &p.PaymentDate); err != nil {
			return err
		}
		b.InitialPayments = append(b.InitialPayments, p)
	}
	if err := payRows.Err(); err != nil {
		return err
	}

	instRows, err := q.Query(`
		SELECT id, COALESCE(due_date,''), amount, paid_amount, COALESCE(type,''), status
		FROM instalments WHERE booking_id = ? ORDER BY due_date, id`, b.ID)
	if err != nil {
		return err
	}
	defer instRows.Close()
	for instRows.Next() {
		var i models.Instalment
		if err := instRows.Scan(&i.ID, &i.DueDate, &i.Amount, &i.PaidAmount, &i.Type, &i.Status); err != nil {
			return err
		}
		b.Instalments = append(b.Instalments, i)
	}
	if err := instRows.Err(); err != nil {
		return err
	}

	costRows, err := q.Query(`
		SELECT id, COALESCE(supplier,''), COALESCE(category,''), amount, paid_amount, COALESCE(description,'')
		FROM supplier_costs WHERE booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer costRows.Close()
	for costRows.Next() {
		var c models.SupplierCost
		if err := costRows.Scan(&c.ID, &c.Supplier, &c.Category, &c.Amount, &c.PaidAmount, &c.Description); err != nil {
			return err
		}
		b.SupplierCosts = append(b.SupplierCosts, c)
	}
	if err := costRows.Err(); err != nil {
		return err
	}

	txRows, err := q.Query(`
		SELECT id, amount, COALESCE(method,''), COALESCE(pay_date,''),
		       COALESCE(reference,''), COALESCE(instalment_id,0), COALESCE(created_at,'')
		FROM transactions WHERE booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer txRows.Close()
	for txRows.Next() {
		var t models.Transaction
		if err := txRows.Scan(&t.ID, &t.Amount, &t.Method, &t.Date, &t.Reference, &t.InstalmentID, &t.CreatedAt); err != nil {
			return err
		}
		b.Transactions = append(b.Transactions, t)
	}
	if err := txRows.Err(); err != nil {
		return err
	}

	spRows, err := q.Query(`
		SELECT id, supplier_cost_id, amount, COALESCE(method,''), COALESCE(pay_date,''),
		       COALESCE(reference,''), COALESCE(created_at,'')
		FROM supplier_payments WHERE booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer spRows.Close()
	for spRows.Next() {
		var p models.SupplierPayment
		if err := spRows.Scan(&p.ID, &p.SupplierCostID, &p.Amount, &p.Method, &p.Date, &p.Reference, &p.CreatedAt); err != nil {
			return err
		}
		b.SupplierPayments = append(b.SupplierPayments, p)
	}
	return spRows.Err()
}

// Insert writes the live booking parent row and returns its id.
func (r BookingRepository) Insert(q intdb.DBTX, b models.Booking) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO bookings
			(folder_no, ref_no, pax_name, agent_name, team_name, num_pax, pnr, airline, from_to,
			 booking_type, booking_status, description, pc_date, travel_date, payment_method,
			 revenue, prod_cost, trans_fee, surcharge, profit, balance, approved_by_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.FolderNo, b.RefNo, b.PaxName, b.AgentName, b.TeamName, b.NumPax, b.PNR, b.Airline, b.FromTo,
		b.BookingType, b.BookingStatus, b.Description,
		intdb.NullIfEmpty(b.PCDate), intdb.NullIfEmpty(b.TravelDate), b.PaymentMethod,
		b.Revenue, b.ProdCost, b.TransFee, b.Surcharge, b.Profit, b.Balance, b.ApprovedByID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) InsertPassenger(q intdb.DBTX, bookingID int64, p models.Passenger) error {
	_, err := q.Exec(`
		INSERT INTO passengers
			(booking_id, title, first_name, last_name, gender, category, birthday, email, contact_no, nationality)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		bookingID, p.Title, p.FirstName, p.LastName, p.Gender, p.Category,
		intdb.NullIfEmpty(p.Birthday), p.Email, p.ContactNo, p.Nationality)
	return err
}

func (r BookingRepository) InsertInitialPayment(q intdb.DBTX, bookingID int64, p models.InitialPayment) error {
	_, err := q.Exec(`
		INSERT INTO initial_payments (booking_id, amount, transaction_method, payment_date)
		VALUES (?,?,?,?)`,
		bookingID, p.Amount, p.TransactionMethod, intdb.NullIfEmpty(p.PaymentDate))
	return err
}

func (r BookingRepository) InsertInstalment(q intdb.DBTX, bookingID int64, i models.Instalment) error {
	_, err := q.Exec(`
		INSERT INTO instalments (booking_id, due_date, amount, paid_amount, type, status)
		VALUES (?,?,?,?,?,?)`,
		bookingID, intdb.NullIfEmpty(i.DueDate), i.Amount, i.PaidAmount, i.Type, i.Status)
	return err
}

func (r BookingRepository) InsertSupplierCost(q intdb.DBTX, bookingID int64, c models.SupplierCost) error {
	_, err := q.Exec(`
		INSERT INTO supplier_costs (booking_id, supplier, category, amount, paid_amount, description)
		VALUES (?,?,?,?,?,?)`,
		bookingID, c.Supplier, c.Category, c.Amount, c.PaidAmount, c.Description)
	return err
}

// UpdateFinancials overwrites the planned figures on a live booking.
func (r BookingRepository) UpdateFinancials(q intdb.DBTX, id int64, revenue, prodCost, transFee, surcharge, profit float64) error {
	res, err := q.Exec(`
		UPDATE bookings SET revenue=?, prod_cost=?, trans_fee=?, surcharge=?, profit=?
		WHERE id=?`,
		revenue, prodCost, transFee, surcharge, profit, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// UpdateSupplierCost overwrites one cost line in place, keeping its
// payment history.
func (r BookingRepository) UpdateSupplierCost(q intdb.DBTX, bookingID int64, c models.SupplierCost) error {
	_, err := q.Exec(`
		UPDATE supplier_costs SET supplier=?, category=?, amount=?, description=?
		WHERE id=? AND booking_id=?`,
		c.Supplier, c.Category, c.Amount, c.Description, c.ID, bookingID)
	return err
}

// Settle flips the terminal flags. Returns not-found when the id is
// unknown; the already-settled guard lives in the service.
func (r BookingRepository) Settle(q intdb.DBTX, id int64, settledAt string) error {
	res, err := q.Exec(`
		UPDATE bookings SET is_settled=1, settled_at=?, booking_status=?
		WHERE id=?`,
		settledAt, domain.StatusCompleted, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
