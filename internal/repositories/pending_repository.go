package repositories

import (
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// PendingRepository persists draft bookings and their children.
type PendingRepository struct {
	DB *sql.DB
}

func (r PendingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const pendingSelectCols = `
	SELECT pb.id, pb.ref_no, pb.pax_name,
	       COALESCE(pb.agent_name,''), COALESCE(pb.team_name,''), pb.num_pax,
	       COALESCE(pb.pnr,''), COALESCE(pb.airline,''), COALESCE(pb.from_to,''),
	       COALESCE(pb.booking_type,''), pb.booking_status, COALESCE(pb.description,''),
	       COALESCE(pb.pc_date,''), COALESCE(pb.travel_date,''), pb.payment_method,
	       pb.revenue, pb.prod_cost, pb.trans_fee, pb.surcharge, pb.profit, pb.balance,
	       pb.created_by_id, COALESCE(pb.created_at,''),
	       COALESCE(CONCAT(u.first_name, ' ', u.last_name),'')
	FROM pending_bookings pb
	LEFT JOIN users u ON u.id = pb.created_by_id`

func scanPending(row interface{ Scan(...any) error }) (models.PendingBooking, error) {
	var b models.PendingBooking
	err := row.Scan(
		&b.ID, &b.RefNo, &b.PaxName,
		&b.AgentName, &b.TeamName, &b.NumPax,
		&b.PNR, &b.Airline, &b.FromTo,
		&b.BookingType, &b.BookingStatus, &b.Description,
		&b.PCDate, &b.TravelDate, &b.PaymentMethod,
		&b.Revenue, &b.ProdCost, &b.TransFee, &b.Surcharge, &b.Profit, &b.Balance,
		&b.CreatedByID, &b.CreatedAt,
		&b.CreatedByName,
	)
	return b, err
}

// GetByID loads one draft with all children.
func (r PendingRepository) GetByID(q intdb.DBTX, id int64) (models.PendingBooking, error) {
	if q == nil {
		q = r.db()
	}
	b, err := scanPending(q.QueryRow(pendingSelectCols+` WHERE pb.id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingBooking{}, domain.NotFoundError{Resource: "pending booking", Err: err}
		}
		return models.PendingBooking{}, err
	}
	if err := r.loadChildren(q, &b); err != nil {
		return models.PendingBooking{}, err
	}
	return b, nil
}

// List returns all drafts newest-first, with instalments attached.
func (r PendingRepository) List() ([]models.PendingBooking, error) {
	q := r.db()
	rows, err := q.Query(pendingSelectCols + ` ORDER BY pb.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PendingBooking{}
	for rows.Next() {
		b, err := scanPending(rows)
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

func (r PendingRepository) loadChildren(q intdb.DBTX, b *models.PendingBooking) error {
	rows, err := q.Query(`
		SELECT id, COALESCE(title,''), COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(gender,''), COALESCE(category,''), COALESCE(birthday,''),
		       COALESCE(email,''), COALESCE(contact_no,''), COALESCE(nationality,'')
		FROM pending_passengers WHERE pending_booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.Title, &p.FirstName, &p.LastName, &p.Gender,
			&p.Category, &p.Birthday, &p.Email, &p.ContactNo, &p.Nationality); err != nil {
			return err
		}
		b.Passengers = append(b.Passengers, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	payRows, err := q.Query(`
		SELECT id, amount, COALESCE(transaction_method,''), COALESCE(payment_date,'')
		FROM pending_initial_payments WHERE pending_booking_id = ? ORDER BY id`, b.ID)
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
		SELECT id, COALESCE(due_date,''), amount, status
		FROM pending_instalments WHERE pending_booking_id = ? ORDER BY due_date, id`, b.ID)
	if err != nil {
		return err
	}
	defer instRows.Close()
	for instRows.Next() {
		var i models.Instalment
		if err := instRows.Scan(&i.ID, &i.DueDate, &i.Amount, &i.Status); err != nil {
			return err
		}
		b.Instalments = append(b.Instalments, i)
	}
	if err := instRows.Err(); err != nil {
		return err
	}

	costRows, err := q.Query(`
		SELECT id, COALESCE(supplier,''), COALESCE(category,''), amount, COALESCE(description,'')
		FROM pending_supplier_costs WHERE pending_booking_id = ? ORDER BY id`, b.ID)
	if err != nil {
		return err
	}
	defer costRows.Close()
	for costRows.Next() {
		var c models.SupplierCost
		if err := costRows.Scan(&c.ID, &c.Supplier, &c.Category, &c.Amount, &c.Description); err != nil {
			return err
		}
		b.SupplierCosts = append(b.SupplierCosts, c)
	}
	return costRows.Err()
}

// Insert writes the draft parent row and returns its id.
func (r PendingRepository) Insert(q intdb.DBTX, b models.PendingBooking) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO pending_bookings
			(ref_no, pax_name, agent_name, team_name, num_pax, pnr, airline, from_to,
			 booking_type, booking_status, description, pc_date, travel_date, payment_method,
			 revenue, prod_cost, trans_fee, surcharge, profit, balance, created_by_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.RefNo, b.PaxName, b.AgentName, b.TeamName, b.NumPax, b.PNR, b.Airline, b.FromTo,
		b.BookingType, b.BookingStatus, b.Description,
		intdb.NullIfEmpty(b.PCDate), intdb.NullIfEmpty(b.TravelDate), b.PaymentMethod,
		b.Revenue, b.ProdCost, b.TransFee, b.Surcharge, b.Profit, b.Balance, b.CreatedByID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PendingRepository) InsertPassenger(q intdb.DBTX, pendingID int64, p models.Passenger) error {
	_, err := q.Exec(`
		INSERT INTO pending_passengers
			(pending_booking_id, title, first_name, last_name, gender, category, birthday, email, contact_no, nationality)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		pendingID, p.Title, p.FirstName, p.LastName, p.Gender, p.Category,
		intdb.NullIfEmpty(p.Birthday), p.Email, p.ContactNo, p.Nationality)
	return err
}

func (r PendingRepository) InsertInitialPayment(q intdb.DBTX, pendingID int64, p models.InitialPayment) error {
	_, err := q.Exec(`
		INSERT INTO pending_initial_payments (pending_booking_id, amount, transaction_method, payment_date)
		VALUES (?,?,?,?)`,
		pendingID, p.Amount, p.TransactionMethod, intdb.NullIfEmpty(p.PaymentDate))
	return err
}

func (r PendingRepository) InsertInstalment(q intdb.DBTX, pendingID int64, i models.Instalment) error {
	_, err := q.Exec(`
		INSERT INTO pending_instalments (pending_booking_id, due_date, amount, status)
		VALUES (?,?,?,?)`,
		pendingID, intdb.NullIfEmpty(i.DueDate), i.Amount, i.Status)
	return err
}

func (r PendingRepository) InsertSupplierCost(q intdb.DBTX, pendingID int64, c models.SupplierCost) error {
	_, err := q.Exec(`
		INSERT INTO pending_supplier_costs (pending_booking_id, supplier, category, amount, description)
		VALUES (?,?,?,?,?)`,
		pendingID, c.Supplier, c.Category, c.Amount, c.Description)
	return err
}

// UpdateScalars overwrites the draft's descriptive and financial fields.
func (r PendingRepository) UpdateScalars(q intdb.DBTX, b models.PendingBooking) error {
	res, err := q.Exec(`
		UPDATE pending_bookings
		SET ref_no=?, pax_name=?, agent_name=?, num_pax=?, pnr=?, airline=?, from_to=?,
		    booking_type=?, pc_date=?, travel_date=?,
		    revenue=?, prod_cost=?, trans_fee=?, surcharge=?, profit=?, balance=?
		WHERE id=?`,
		b.RefNo, b.PaxName, b.AgentName, b.NumPax, b.PNR, b.Airline, b.FromTo,
		b.BookingType, intdb.NullIfEmpty(b.PCDate), intdb.NullIfEmpty(b.TravelDate),
		b.Revenue, b.ProdCost, b.TransFee, b.Surcharge, b.Profit, b.Balance, b.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "pending booking"}
	}
	return nil
}

// UpdateLeadPassenger overwrites passenger fields across every row
// linked to the draft. A multi-passenger draft loses per-passenger
// distinctness here; the edit form only carries the lead passenger.
func (r PendingRepository) UpdateLeadPassenger(q intdb.DBTX, pendingID int64, p models.Passenger) error {
	_, err := q.Exec(`
		UPDATE pending_passengers
		SET title=?, first_name=?, last_name=?, gender=?, category=?, birthday=?, email=?, contact_no=?
		WHERE pending_booking_id=?`,
		p.Title, p.FirstName, p.LastName, p.Gender, p.Category,
		intdb.NullIfEmpty(p.Birthday), p.Email, p.ContactNo, pendingID)
	return err
}

// Delete hard-deletes the draft and all children. Returns the number of
// parent rows removed so callers can distinguish a missing draft.
func (r PendingRepository) Delete(q intdb.DBTX, id int64) (int64, error) {
	for _, stmt := range []string{
		`DELETE FROM pending_passengers WHERE pending_booking_id = ?`,
		`DELETE FROM pending_initial_payments WHERE pending_booking_id = ?`,
		`DELETE FROM pending_instalments WHERE pending_booking_id = ?`,
		`DELETE FROM pending_supplier_costs WHERE pending_booking_id = ?`,
	} {
		if _, err := q.Exec(stmt, id); err != nil {
			return 0, err
		}
	}
	res, err := q.Exec(`DELETE FROM pending_bookings WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
