// internal/services/admin_service.go
package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/models"
)

const recentOrdersLimit = 5

type AdminService struct {
	db *gorm.DB
}

// DashboardStats is the admin landing page summary, derived from the users
// and orders snapshots.
type DashboardStats struct {
	TotalUsers           int                        `json:"total_users"`
	BlockedUsers         int                        `json:"blocked_users"`
	TotalOrders          int                        `json:"total_orders"`
	TotalRevenue         float64                    `json:"total_revenue"`
	PendingCancellations int                        `json:"pending_cancellations"`
	OrdersByStatus       map[models.OrderStatus]int `json:"orders_by_status"`
	RecentOrders         []models.Order             `json:"recent_orders"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboard() (*DashboardStats, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	var orders []models.Order
	if err := s.db.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	stats := BuildDashboard(users, orders)
	return &stats, nil
}

// BuildDashboard folds the two snapshots into one summary. Pure so the two
// reads never need to be consistent with each other; each refresh converges.
func BuildDashboard(users []models.User, orders []models.Order) DashboardStats {
	stats := DashboardStats{
		TotalUsers:     len(users),
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.OrderStatus]int),
	}

	for i := range users {
		if users[i].IsBlocked {
			stats.BlockedUsers++
		}
	}

	for i := range orders {
		order := &orders[i]
		stats.OrdersByStatus[order.Status]++

		switch order.Status {
		case models.OrderStatusCancelRequest:
			stats.PendingCancellations++
		case models.OrderStatusCancelled:
			// Cancelled orders do not count toward revenue
		default:
			stats.TotalRevenue += order.Total
		}
	}

	recent := make([]models.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	stats.RecentOrders = recent

	return stats
}
