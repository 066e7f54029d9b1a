package models

// InitialPayment is a deposit taken at booking time.
type InitialPayment struct {
	ID                int64   `json:"id"`
	Amount            float64 `json:"amount"`
	TransactionMethod string  `json:"transactionMethod"`
	PaymentDate       string  `json:"paymentDate"`
}

// Transaction is an immutable record of one incoming client payment.
// Append-only: there is no reversal or void path.
type Transaction struct {
	ID           int64   `json:"id"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	Date         string  `json:"date"`
	Reference    string  `json:"reference,omitempty"`
	InstalmentID int64   `json:"instalmentId,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// SupplierPayment is an immutable record of one outgoing payment,
// linked to exactly one supplier cost line.
type SupplierPayment struct {
	ID             int64   `json:"id"`
	SupplierCostID int64   `json:"supplierCostId"`
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	Date           string  `json:"date"`
	Reference      string  `json:"reference,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}
