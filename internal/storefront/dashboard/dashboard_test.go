package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	orders := []Order{
		{OrderID: "1", Status: StatusPending, Total: 1100},
		{OrderID: "2", Status: StatusShipped, Total: 500},
		{OrderID: "3", Status: StatusDelivered, Total: 2000},
		{OrderID: "4", Status: StatusCancelled, Total: 300},
	}

	stats := Summarize(orders)

	assert.Equal(t, Stats{TotalOrders: 4, PendingOrders: 2, CompletedOrders: 1, TotalSpent: 3900}, stats)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(Order{Status: StatusPending}))
	assert.False(t, CanCancel(Order{Status: StatusConfirmed}))
	assert.False(t, CanCancel(Order{Status: StatusDelivered}))
}

func TestRecent(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	orders := []Order{
		{OrderID: "old", CreatedAt: base},
		{OrderID: "new", CreatedAt: base.Add(48 * time.Hour)},
		{OrderID: "mid", CreatedAt: base.Add(24 * time.Hour)},
	}

	got := Recent(orders, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "new", got[0].OrderID)
	assert.Equal(t, "mid", got[1].OrderID)
	assert.Equal(t, "old", orders[0].OrderID)
}
