package handlers

import (
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func ledgerService(c *gin.Context) services.LedgerService {
	return services.LedgerService{RequestID: middleware.GetRequestID(c)}
}

type bookingView struct {
	models.Booking
	Ledger domain.LedgerSnapshot `json:"ledger"`
}

func withSnapshot(b models.Booking) bookingView {
	return bookingView{Booking: b, Ledger: domain.Snapshot(b)}
}

// GET /api/bookings/approved
func ListApprovedBookings(c *gin.Context) {
	bookings, err := ledgerService(c).ListApproved()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, withSnapshot(b))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/bookings/approved/:id
func GetApprovedBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := ledgerService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, withSnapshot(booking))
}

// PUT /api/bookings/approved/:id
func UpdateApprovedBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var input models.LedgerUpdateInput
	if !BindJSONOrError(c, &input) {
		return
	}
	booking, err := ledgerService(c).UpdateLedger(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, withSnapshot(booking))
}

// POST /api/bookings/:id/transaction
func RecordTransaction(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var input models.TransactionInput
	if !BindJSONOrError(c, &input) {
		return
	}
	txn, err := ledgerService(c).RecordTransaction(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// POST /api/bookings/:id/supplier-payment
func RecordSupplierPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var input models.SupplierPaymentInput
	if !BindJSONOrError(c, &input) {
		return
	}
	payment, err := ledgerService(c).RecordSupplierPayment(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// POST /api/bookings/:id/settle
func SettleBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := ledgerService(c).Settle(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, withSnapshot(booking))
}
