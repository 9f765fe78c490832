package dto

import "github.com/shopspring/decimal"

// DashboardSummary carries the headline figures for the landing screen.
type DashboardSummary struct {
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	TransactionsToday int64           `json:"transactions_today"`
	ProductCount      int64           `json:"product_count"`
	LowStockCount     int64           `json:"low_stock_count"`
	PendingRequests   int64           `json:"pending_requests"`
}

// SalesPoint is one bucket of the sales chart, keyed by day.
type SalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

type SalesChartResponse struct {
	Data []SalesPoint `json:"data"`
}
