package service

import (
	"context"
	"time"

	"parfumpos/internal/dto"
	"parfumpos/internal/repository"
)

// DashboardService aggregates the landing-screen figures.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
	SalesChart(ctx context.Context, days int) (*dto.SalesChartResponse, error)
}

type dashboardService struct {
	transactions  repository.TransactionRepository
	products      repository.ProductRepository
	stockRequests repository.StockRequestRepository
	lowStockLimit int
}

func NewDashboardService(
	transactions repository.TransactionRepository,
	products repository.ProductRepository,
	stockRequests repository.StockRequestRepository,
	lowStockLimit int,
) DashboardService {
	return &dashboardService{
		transactions:  transactions,
		products:      products,
		stockRequests: stockRequests,
		lowStockLimit: lowStockLimit,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	revenue, err := s.transactions.RevenueSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	txCount, err := s.transactions.CountPaidSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, s.lowStockLimit)
	if err != nil {
		return nil, err
	}
	pending, err := s.stockRequests.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummary{
		RevenueToday:      revenue,
		TransactionsToday: txCount,
		ProductCount:      productCount,
		LowStockCount:     lowStock,
		PendingRequests:   pending,
	}, nil
}

// SalesChart buckets paid revenue by day over the trailing window. Days with
// no sales are filled in with zero rows so the series is continuous.
func (s *dashboardService) SalesChart(ctx context.Context, days int) (*dto.SalesChartResponse, error) {
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)

	rows, err := s.transactions.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]repository.SalesByDayRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row
	}

	points := make([]dto.SalesPoint, 0, days)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		point := dto.SalesPoint{Date: key}
		if row, ok := byDay[key]; ok {
			point.Revenue = row.Revenue
			point.Count = row.Count
		}
		points = append(points, point)
	}
	return &dto.SalesChartResponse{Data: points}, nil
}
