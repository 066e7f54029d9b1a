package handlers

import (
	"net/http"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

func approvalService(c *gin.Context) services.ApprovalService {
	return services.ApprovalService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	drafts, err := bookingService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drafts)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var input models.BookingInput
	if !BindJSONOrError(c, &input) {
		return
	}
	sess := middleware.GetSession(c)
	draft, err := bookingService(c).Create(input, sess.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var input models.BookingInput
	if !BindJSONOrError(c, &input) {
		return
	}
	draft, err := bookingService(c).Update(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// POST /api/bookings/:id/approve
func ApproveBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	sess := middleware.GetSession(c)
	booking, err := approvalService(c).Approve(id, sess.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/bookings/:id/reject
func RejectBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := approvalService(c).Reject(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "draft rejected"})
}
