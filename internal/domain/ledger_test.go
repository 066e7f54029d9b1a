package domain

import (
	"testing"

	"backoffice/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestProfitSubtractsAllCosts(t *testing.T) {
	// surcharge reduces profit, it is never added to revenue
	got := Profit(1000, 600, 20, 30)
	assert.InDelta(t, 350.0, got, 0.001)

	got = Profit(1000, 1100, 0, 0)
	assert.InDelta(t, -100.0, got, 0.001, "loss-making bookings keep a negative profit")
}

func TestProductCostSumsSupplierLines(t *testing.T) {
	costs := []models.SupplierCost{
		{Supplier: "AirCo", Amount: 400},
		{Supplier: "HotelCo", Amount: 150.50},
		{Supplier: "TransferCo", Amount: 49.50},
	}
	assert.InDelta(t, 600.0, ProductCost(costs), 0.001)
	assert.Zero(t, ProductCost(nil))
}

func TestBalanceAfterDeposits(t *testing.T) {
	deposits := []models.InitialPayment{{Amount: 200}, {Amount: 100}}
	assert.InDelta(t, 300.0, DepositTotal(deposits), 0.001)
	assert.InDelta(t, 700.0, Balance(1000, 300), 0.001)
}

func TestInstalmentMatchesBalanceWithinTolerance(t *testing.T) {
	assert.True(t, InstalmentMatchesBalance(500, 500))
	assert.True(t, InstalmentMatchesBalance(500, 499.96))
	assert.True(t, InstalmentMatchesBalance(500, 500.04))
	assert.False(t, InstalmentMatchesBalance(500, 500.05))
	assert.False(t, InstalmentMatchesBalance(500, 499.94))
	assert.False(t, InstalmentMatchesBalance(500, 300))
}

func TestInstalmentStatusTransitions(t *testing.T) {
	assert.Equal(t, InstalmentPending, InstalmentStatus(200, 0))
	assert.Equal(t, InstalmentPartial, InstalmentStatus(200, 100))
	assert.Equal(t, InstalmentPartial, InstalmentStatus(200, 199.94))
	assert.Equal(t, InstalmentPaid, InstalmentStatus(200, 199.95))
	assert.Equal(t, InstalmentPaid, InstalmentStatus(200, 200))
	assert.Equal(t, InstalmentPaid, InstalmentStatus(200, 250), "overpayment still reads as paid")
}

func TestSnapshotReconcilesCashAgainstPlan(t *testing.T) {
	b := models.Booking{
		Revenue:  1000,
		ProdCost: 600,
		InitialPayments: []models.InitialPayment{
			{Amount: 200},
		},
		Transactions: []models.Transaction{
			{Amount: 300},
			{Amount: 100},
		},
		SupplierCosts: []models.SupplierCost{
			{Amount: 400, PaidAmount: 250},
			{Amount: 200, PaidAmount: 0},
		},
	}

	snap := Snapshot(b)
	assert.InDelta(t, 200.0, snap.DepositTotal, 0.001)
	assert.InDelta(t, 400.0, snap.TransactionTotal, 0.001)
	assert.InDelta(t, 600.0, snap.Collected, 0.001)
	assert.InDelta(t, 0.0, snap.RealizedProfit, 0.001)
	assert.InDelta(t, -400.0, snap.Outstanding, 0.001, "client still owes 400")
	assert.InDelta(t, 600.0, snap.SupplierCost, 0.001)
	assert.InDelta(t, 250.0, snap.SupplierPaid, 0.001)
	assert.InDelta(t, 350.0, snap.SupplierOwed, 0.001)
}

func TestSnapshotDoesNotMutateBooking(t *testing.T) {
	b := models.Booking{
		Revenue:      500,
		ProdCost:     300,
		Transactions: []models.Transaction{{Amount: 500}},
	}
	first := Snapshot(b)
	second := Snapshot(b)
	assert.Equal(t, first, second)
	assert.InDelta(t, 500.0, b.Revenue, 0.001)
	assert.InDelta(t, 300.0, b.ProdCost, 0.001)
}
