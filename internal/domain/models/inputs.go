package models

import (
	"bytes"
	"strconv"
	"strings"

	"backoffice/internal/utils"
)

// Amount is a decimal currency value that tolerates the loose shapes
// the booking forms submit: a JSON number, a numeric string, or an
// empty string. Malformed or missing input parses to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "null" {
		s = ""
	}
	*a = Amount(utils.ParseAmount(s))
	return nil
}

func (a Amount) Value() float64 { return float64(a) }

// OptionalID accepts a record id as a JSON number, a numeric string,
// or an empty string (meaning "not linked").
type OptionalID int64

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		*o = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*o = 0
		return nil
	}
	*o = OptionalID(v)
	return nil
}

// PassengerInput carries one traveller's details on create/update.
type PassengerInput struct {
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	Category    string `json:"category"`
	Birthday    string `json:"birthday"`
	Email       string `json:"email"`
	ContactNo   string `json:"contactNo"`
	Nationality string `json:"nationality"`
}

type InitialPaymentInput struct {
	Amount            Amount `json:"amount"`
	TransactionMethod string `json:"transactionMethod"`
	PaymentDate       string `json:"paymentDate"`
}

type InstalmentInput struct {
	DueDate string `json:"dueDate"`
	Amount  Amount `json:"amount"`
}

// SupplierCostInput is one expected-cost line. On live ledger edits a
// non-zero ID updates the existing row in place; zero inserts a new one.
type SupplierCostInput struct {
	ID          OptionalID `json:"id"`
	Supplier    string     `json:"supplier"`
	Category    string     `json:"category"`
	Amount      Amount     `json:"amount"`
	Description string     `json:"description"`
}

// BookingInput is the fully-typed create/update command for a draft
// booking, parsed once at the HTTP boundary.
type BookingInput struct {
	RefNo         string `json:"refNo"`
	PaxName       string `json:"paxName"`
	AgentName     string `json:"agentName"`
	TeamName      string `json:"teamName"`
	NumPax        int    `json:"numPax"`
	PNR           string `json:"pnr"`
	Airline       string `json:"airline"`
	FromTo        string `json:"fromTo"`
	BookingType   string `json:"bookingType"`
	Description   string `json:"description"`
	PCDate        string `json:"pcDate"`
	TravelDate    string `json:"travelDate"`
	PaymentMethod string `json:"paymentMethod"`

	Revenue Amount `json:"revenue"`
	// ProdCost is honoured only on draft updates; create derives the
	// product cost from the supplier lines and ignores this field.
	ProdCost  Amount `json:"prodCost"`
	TransFee  Amount `json:"transFee"`
	Surcharge Amount `json:"surcharge"`

	Passengers      []PassengerInput      `json:"passengers"`
	InitialPayments []InitialPaymentInput `json:"initialPayments"`
	Instalments     []InstalmentInput     `json:"instalments"`
	SupplierCosts   []SupplierCostInput   `json:"supplierCosts"`
}

// TransactionInput records one incoming client payment.
type TransactionInput struct {
	Amount       Amount     `json:"amount"`
	Method       string     `json:"method"`
	Date         string     `json:"date"`
	Reference    string     `json:"reference"`
	InstalmentID OptionalID `json:"instalmentId"`
}

// SupplierPaymentInput records one outgoing payment against a cost line.
type SupplierPaymentInput struct {
	Amount         Amount     `json:"amount"`
	Method         string     `json:"method"`
	Date           string     `json:"date"`
	Reference      string     `json:"reference"`
	SupplierCostID OptionalID `json:"supplierCostId"`
}

// LedgerUpdateInput is the live ledger edit for an approved booking.
type LedgerUpdateInput struct {
	Revenue       Amount              `json:"revenue"`
	TransFee      Amount              `json:"transFee"`
	Surcharge     Amount              `json:"surcharge"`
	SupplierCosts []SupplierCostInput `json:"supplierCosts"`
}
