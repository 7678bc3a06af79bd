// internal/services/admin_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func orderAt(status models.OrderStatus, total float64, created time.Time) models.Order {
	o := models.Order{
		Status: status,
		Total:  total,
	}
	o.CreatedAt = created
	return o
}

func TestBuildDashboard(t *testing.T) {
	users := []models.User{
		{Name: "a"},
		{Name: "b", IsBlocked: true},
		{Name: "c", IsBlocked: true},
	}

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt(models.OrderStatusProcessing, 1000, base),
		orderAt(models.OrderStatusDelivered, 2000, base.Add(time.Hour)),
		orderAt(models.OrderStatusCancelled, 3000, base.Add(2*time.Hour)),
		orderAt(models.OrderStatusCancelRequest, 500, base.Add(3*time.Hour)),
	}

	stats := BuildDashboard(users, orders)

	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.BlockedUsers)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingCancellations)

	// Cancelled orders never count toward revenue; a pending cancellation
	// is not cancelled yet, but it is excluded until resolved.
	assert.Equal(t, 3000.0, stats.TotalRevenue)

	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderStatusProcessing])
	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderStatusCancelled])
}

func TestBuildDashboardRecentOrdersNewestFirst(t *testing.T) {
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	var orders []models.Order
	for i := 0; i < 8; i++ {
		orders = append(orders, orderAt(models.OrderStatusProcessing, 100, base.Add(time.Duration(i)*time.Hour)))
	}

	stats := BuildDashboard(nil, orders)

	assert.Len(t, stats.RecentOrders, 5)
	for i := 1; i < len(stats.RecentOrders); i++ {
		assert.True(t, stats.RecentOrders[i-1].CreatedAt.After(stats.RecentOrders[i].CreatedAt))
	}
	assert.Equal(t, base.Add(7*time.Hour), stats.RecentOrders[0].CreatedAt)
}

func TestBuildDashboardEmpty(t *testing.T) {
	stats := BuildDashboard(nil, nil)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Empty(t, stats.RecentOrders)
	assert.NotNil(t, stats.OrdersByStatus)
}
