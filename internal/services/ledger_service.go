package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/google/uuid"
)

// LedgerService tracks actual cash flow against the plan on live
// bookings: client transactions in, supplier payments out, the live
// ledger edit, and settlement. Every mutation checks the settled flag
// here, not in the UI.
type LedgerService struct {
	BookingRepo repositories.BookingRepository
	LedgerRepo  repositories.LedgerRepository
	DB          *sql.DB
	RequestID   string
}

func (s LedgerService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s LedgerService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s LedgerService) ledger() repositories.LedgerRepository {
	if s.LedgerRepo.DB != nil {
		return s.LedgerRepo
	}
	return repositories.LedgerRepository{DB: s.db()}
}

// ListApproved returns all live bookings with full payment history.
func (s LedgerService) ListApproved() ([]models.Booking, error) {
	return s.bookings().ListApproved()
}

// Get returns one live booking with children.
func (s LedgerService) Get(bookingID int64) (models.Booking, error) {
	return s.bookings().GetByID(nil, bookingID)
}

// RecordTransaction appends an incoming client payment and, when the
// payment is linked to an instalment, rolls the instalment's paid
// amount and status forward. Paid amounts never decrease; there is no
// void or reversal.
func (s LedgerService) RecordTransaction(bookingID int64, in models.TransactionInput) (models.Transaction, error) {
	amount := in.Amount.Value()
	if amount <= 0 {
		return models.Transaction{}, domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}

	t := models.Transaction{
		Amount:       amount,
		Method:       strings.TrimSpace(in.Method),
		Date:         in.Date,
		Reference:    strings.TrimSpace(in.Reference),
		InstalmentID: int64(in.InstalmentID),
	}
	if t.Reference == "" {
		t.Reference = "RCPT-" + shortRef()
	}

	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.bookings().GetScalars(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.IsSettled {
			return domain.ConflictError{Resource: "booking", Msg: "already settled; ledger is closed"}
		}

		id, err := s.ledger().InsertTransaction(tx, bookingID, t)
		if err != nil {
			return domain.InternalError{Msg: "failed to record transaction", Err: err}
		}
		t.ID = id

		if t.InstalmentID > 0 {
			if _, err := s.ledger().GetInstalment(tx, bookingID, t.InstalmentID); err != nil {
				return err
			}
			if err := s.ledger().AddInstalmentPaid(tx, t.InstalmentID, amount); err != nil {
				return domain.InternalError{Msg: "failed to update instalment", Err: err}
			}
			// Re-read so the status reflects the committed running total.
			inst, err := s.ledger().GetInstalment(tx, bookingID, t.InstalmentID)
			if err != nil {
				return err
			}
			status := domain.InstalmentStatus(inst.Amount, inst.PaidAmount)
			if err := s.ledger().SetInstalmentStatus(tx, t.InstalmentID, status); err != nil {
				return domain.InternalError{Msg: "failed to update instalment status", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	utils.LogEvent(s.RequestID, "ledger", "record_transaction",
		fmt.Sprintf("booking_id=%d amount=%s ref=%s", bookingID, utils.FormatMoney(amount), t.Reference))
	return t, nil
}

// RecordSupplierPayment appends an outgoing payment against one
// supplier cost line and rolls its paid amount forward. Owed is always
// derived on read as expected minus paid; no status is stored.
func (s LedgerService) RecordSupplierPayment(bookingID int64, in models.SupplierPaymentInput) (models.SupplierPayment, error) {
	amount := in.Amount.Value()
	if amount <= 0 {
		return models.SupplierPayment{}, domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	costID := int64(in.SupplierCostID)
	if costID <= 0 {
		return models.SupplierPayment{}, domain.ValidationError{Field: "supplierCostId", Msg: "is required"}
	}

	p := models.SupplierPayment{
		SupplierCostID: costID,
		Amount:         amount,
		Method:         strings.TrimSpace(in.Method),
		Date:           in.Date,
		Reference:      strings.TrimSpace(in.Reference),
	}
	if p.Reference == "" {
		p.Reference = "SPAY-" + shortRef()
	}

	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.bookings().GetScalars(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.IsSettled {
			return domain.ConflictError{Resource: "booking", Msg: "already settled; ledger is closed"}
		}

		if _, err := s.ledger().GetSupplierCost(tx, bookingID, costID); err != nil {
			return err
		}
		id, err := s.ledger().InsertSupplierPayment(tx, bookingID, p)
		if err != nil {
			return domain.InternalError{Msg: "failed to record supplier payment", Err: err}
		}
		p.ID = id

		if err := s.ledger().AddSupplierCostPaid(tx, costID, amount); err != nil {
			return domain.InternalError{Msg: "failed to update supplier cost", Err: err}
		}
		return nil
	})
	if err != nil {
		return models.SupplierPayment{}, err
	}

	utils.LogEvent(s.RequestID, "ledger", "record_supplier_payment",
		fmt.Sprintf("booking_id=%d cost_id=%d amount=%s", bookingID, costID, utils.FormatMoney(amount)))
	return p, nil
}

// Settle closes the booking's ledger: terminal flag flip only, no
// recomputation. Any residual balance is written off implicitly.
func (s LedgerService) Settle(bookingID int64) (models.Booking, error) {
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.bookings().GetScalars(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.IsSettled {
			return domain.ConflictError{Resource: "booking", Msg: "already settled"}
		}
		now := utils.NowUTC().Format("2006-01-02 15:04:05")
		return s.bookings().Settle(tx, bookingID, now)
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "ledger", "settle", fmt.Sprintf("booking_id=%d", bookingID))
	return s.bookings().GetByID(nil, bookingID)
}

// UpdateLedger is the only post-approval edit path for planned
// financials. Existing supplier lines are updated in place by id (to
// preserve payment history), new lines are inserted, and the product
// cost and profit are recomputed from the full stored list.
func (s LedgerService) UpdateLedger(bookingID int64, in models.LedgerUpdateInput) (models.Booking, error) {
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.bookings().GetScalars(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.IsSettled {
			return domain.ConflictError{Resource: "booking", Msg: "already settled; ledger is closed"}
		}

		for _, c := range in.SupplierCosts {
			cost := models.SupplierCost{
				ID:          int64(c.ID),
				Supplier:    c.Supplier,
				Category:    c.Category,
				Amount:      c.Amount.Value(),
				Description: c.Description,
			}
			if cost.ID > 0 {
				if err := s.bookings().UpdateSupplierCost(tx, bookingID, cost); err != nil {
					return domain.InternalError{Msg: "failed to update supplier cost", Err: err}
				}
			} else {
				if err := s.bookings().InsertSupplierCost(tx, bookingID, cost); err != nil {
					return domain.InternalError{Msg: "failed to add supplier cost", Err: err}
				}
			}
		}

		stored, err := s.ledger().ListSupplierCosts(tx, bookingID)
		if err != nil {
			return domain.InternalError{Msg: "failed to load supplier costs", Err: err}
		}
		prodCost := domain.ProductCost(stored)

		revenue := in.Revenue.Value()
		transFee := in.TransFee.Value()
		surcharge := in.Surcharge.Value()
		profit := domain.Profit(revenue, prodCost, transFee, surcharge)

		return s.bookings().UpdateFinancials(tx, bookingID, revenue, prodCost, transFee, surcharge, profit)
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "ledger", "update_ledger", fmt.Sprintf("booking_id=%d", bookingID))
	return s.bookings().GetByID(nil, bookingID)
}

func shortRef() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
