package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"zoo_management/pkg/models"
)

// DashboardStats counts animals, employees and cages and sums ticket revenue.
// Revenue is 0 when there are no sales.
func (s *GormStore) DashboardStats(ctx context.Context) (DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Animal{}, &stats.Animals},
		{&models.Employee{}, &stats.Employees},
		{&models.Cage{}, &stats.Cages},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
		}
	}

	var revenue float64
	err := db.Model(&models.TicketSale{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard revenue: %w", err)
	}
	stats.Revenue = decimal.NewFromFloat(revenue).Round(2).InexactFloat64()
	return stats, nil
}
