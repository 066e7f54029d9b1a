package services

import (
	"database/sql"
	"fmt"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

// ApprovalService moves drafts through the approval gate: approve
// converts a draft into a live booking with a folder number, reject
// hard-deletes it. Both are single transactions.
type ApprovalService struct {
	PendingRepo repositories.PendingRepository
	BookingRepo repositories.BookingRepository
	FolderRepo  repositories.FolderRepository
	DB          *sql.DB
	RequestID   string
}

func (s ApprovalService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ApprovalService) pendingRepo() repositories.PendingRepository {
	if s.PendingRepo.DB != nil {
		return s.PendingRepo
	}
	return repositories.PendingRepository{DB: s.db()}
}

func (s ApprovalService) bookingRepo() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// Approve copies the draft and every child into the live tables,
// allocates the folder number, and deletes the draft, all inside one
// transaction so a failure at any step leaves no trace of either half.
// Instalments restart at zero paid / PENDING; supplier costs restart at
// zero paid.
func (s ApprovalService) Approve(pendingID, approverID int64) (models.Booking, error) {
	if pendingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	var approved models.Booking
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		pending, err := s.pendingRepo().GetByID(tx, pendingID)
		if err != nil {
			return err
		}

		folderNo, err := s.FolderRepo.Next(tx)
		if err != nil {
			return domain.InternalError{Msg: "failed to allocate folder number", Err: err}
		}

		live := models.Booking{
			FolderNo:      folderNo,
			RefNo:         pending.RefNo,
			PaxName:       pending.PaxName,
			AgentName:     pending.AgentName,
			TeamName:      pending.TeamName,
			NumPax:        pending.NumPax,
			PNR:           pending.PNR,
			Airline:       pending.Airline,
			FromTo:        pending.FromTo,
			BookingType:   pending.BookingType,
			BookingStatus: domain.StatusConfirmed,
			Description:   pending.Description,
			PCDate:        pending.PCDate,
			TravelDate:    pending.TravelDate,
			PaymentMethod: pending.PaymentMethod,
			Revenue:       pending.Revenue,
			ProdCost:      pending.ProdCost,
			TransFee:      pending.TransFee,
			Surcharge:     pending.Surcharge,
			Profit:        pending.Profit,
			Balance:       pending.Balance,
			ApprovedByID:  approverID,
		}

		repo := s.bookingRepo()
		id, err := repo.Insert(tx, live)
		if err != nil {
			return domain.InternalError{Msg: "failed to create live booking", Err: err}
		}
		live.ID = id

		for _, p := range pending.Passengers {
			if err := repo.InsertPassenger(tx, id, p); err != nil {
				return domain.InternalError{Msg: "failed to copy passenger", Err: err}
			}
		}
		live.Passengers = pending.Passengers

		for _, p := range pending.InitialPayments {
			if err := repo.InsertInitialPayment(tx, id, p); err != nil {
				return domain.InternalError{Msg: "failed to copy deposit", Err: err}
			}
		}
		live.InitialPayments = pending.InitialPayments

		for _, i := range pending.Instalments {
			reset := models.Instalment{
				DueDate:    i.DueDate,
				Amount:     i.Amount,
				PaidAmount: 0,
				Type:       "INSTALMENT",
				Status:     domain.InstalmentPending,
			}
			if err := repo.InsertInstalment(tx, id, reset); err != nil {
				return domain.InternalError{Msg: "failed to copy instalment", Err: err}
			}
			live.Instalments = append(live.Instalments, reset)
		}

		for _, c := range pending.SupplierCosts {
			copied := models.SupplierCost{
				Supplier:    c.Supplier,
				Category:    c.Category,
				Amount:      c.Amount,
				PaidAmount:  0,
				Description: c.Description,
			}
			if err := repo.InsertSupplierCost(tx, id, copied); err != nil {
				return domain.InternalError{Msg: "failed to copy supplier cost", Err: err}
			}
			live.SupplierCosts = append(live.SupplierCosts, copied)
		}

		n, err := s.pendingRepo().Delete(tx, pendingID)
		if err != nil {
			return domain.InternalError{Msg: "failed to remove draft", Err: err}
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "pending booking"}
		}

		approved = live
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "approval", "approve",
		fmt.Sprintf("pending_id=%d folder_no=%s approver=%d", pendingID, approved.FolderNo, approverID))
	return approved, nil
}

// Reject hard-deletes the draft and its children. There is no audit
// trail and no recovery path; a repeat call reports not-found.
func (s ApprovalService) Reject(pendingID int64) error {
	if pendingID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		n, err := s.pendingRepo().Delete(tx, pendingID)
		if err != nil {
			return domain.InternalError{Msg: "failed to delete draft", Err: err}
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "pending booking"}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "approval", "reject", fmt.Sprintf("pending_id=%d", pendingID))
	return nil
}
