package domain

import "backoffice/internal/domain/models"

// Tolerance is the absolute currency slack applied to every
// "fully paid" / "does this balance" comparison in the system.
const Tolerance = 0.05

// ProductCost sums the expected amounts across supplier cost lines.
func ProductCost(items []models.SupplierCost) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

// Profit is revenue minus every cost component. This is the canonical
// formula; the surcharge is a cost, never added to revenue.
func Profit(revenue, prodCost, transFee, surcharge float64) float64 {
	return revenue - (prodCost + transFee + surcharge)
}

// Balance is the amount a client still owes after deposits.
func Balance(revenue, depositTotal float64) float64 {
	return revenue - depositTotal
}

// DepositTotal sums the initial payments taken at booking time.
func DepositTotal(payments []models.InitialPayment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// InstalmentTotal sums the expected instalment amounts.
func InstalmentTotal(instalments []models.Instalment) float64 {
	var sum float64
	for _, i := range instalments {
		sum += i.Amount
	}
	return sum
}

// InstalmentMatchesBalance reports whether the scheduled instalments
// cover the outstanding balance within Tolerance (the strict math rule
// for INTERNAL payment-method bookings).
func InstalmentMatchesBalance(balance, instalmentTotal float64) bool {
	diff := balance - instalmentTotal
	if diff < 0 {
		diff = -diff
	}
	return diff <= Tolerance
}

// InstalmentStatus derives the status from cumulative paid vs expected.
func InstalmentStatus(expected, paid float64) string {
	switch {
	case paid >= expected-Tolerance:
		return InstalmentPaid
	case paid > 0:
		return InstalmentPartial
	default:
		return InstalmentPending
	}
}

// LedgerSnapshot is the read-side reconciliation of a live booking:
// planned figures against actual cash flow. It is recomputed from raw
// rows on every read and never persisted.
type LedgerSnapshot struct {
	DepositTotal     float64 `json:"depositTotal"`
	TransactionTotal float64 `json:"transactionTotal"`
	Collected        float64 `json:"collected"`
	RealizedProfit   float64 `json:"realizedProfit"`
	Outstanding      float64 `json:"outstanding"`
	SupplierCost     float64 `json:"supplierCost"`
	SupplierPaid     float64 `json:"supplierPaid"`
	SupplierOwed     float64 `json:"supplierOwed"`
}

// Snapshot computes the cash position of a booking.
// Collected = deposits + post-approval transactions.
// RealizedProfit strictly subtracts the supplier product cost from
// cash collected (fees are excluded from the realized basis).
// Outstanding is collected minus contract revenue; negative means the
// client still owes money.
func Snapshot(b models.Booking) LedgerSnapshot {
	var snap LedgerSnapshot
	snap.DepositTotal = DepositTotal(b.InitialPayments)
	for _, t := range b.Transactions {
		snap.TransactionTotal += t.Amount
	}
	snap.Collected = snap.DepositTotal + snap.TransactionTotal
	snap.RealizedProfit = snap.Collected - b.ProdCost
	snap.Outstanding = snap.Collected - b.Revenue
	for _, c := range b.SupplierCosts {
		snap.SupplierCost += c.Amount
		snap.SupplierPaid += c.PaidAmount
	}
	snap.SupplierOwed = snap.SupplierCost - snap.SupplierPaid
	return snap
}
