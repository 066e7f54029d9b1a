package domain

// ID is used across domain entities.
type ID = int64

// RequestContext carries the authenticated session for one request.
// It is built once by the auth middleware and passed explicitly into
// services; nothing reads token state from globals.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
	Team   string `json:"team"`
}

// Payment methods accepted on a booking.
const (
	PaymentFull     = "FULL"
	PaymentInternal = "INTERNAL"
)

// Booking lifecycle statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
)

// Instalment payment statuses.
const (
	InstalmentPending = "PENDING"
	InstalmentPartial = "PARTIAL"
	InstalmentPaid    = "PAID"
)
