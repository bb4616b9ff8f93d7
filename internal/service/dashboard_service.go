package service

import (
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
)

// lowStockThreshold marks ingredients that need restocking soon.
const lowStockThreshold = 10

// DashboardStats is the homepage summary block.
type DashboardStats struct {
	TodaySales        int64 `json:"today_sales"`
	PaidCount         int64 `json:"paid_count"`
	PendingCount      int64 `json:"pending_count"`
	InCartCount       int64 `json:"in_cart_count"`
	LowStockCount     int64 `json:"low_stock_count"`
	LowStockThreshold int64 `json:"low_stock_threshold"`
}

type DashboardService interface {
	Stats() (*DashboardStats, error)
	DailySales(days int) ([]repository.DailySalesData, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: repo}
}

func todayWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}

func (s *dashboardService) Stats() (*DashboardStats, error) {
	start, end := todayWindow()

	todaySales, err := s.dashboardRepo.PaidSalesTotal(start, end)
	if err != nil {
		return nil, err
	}
	paid, err := s.dashboardRepo.CountByStatus(model.TransactionPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.dashboardRepo.CountByStatus(model.TransactionPending)
	if err != nil {
		return nil, err
	}
	inCart, err := s.dashboardRepo.CountByStatus(model.TransactionInCart)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.dashboardRepo.LowStockCount(lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodaySales:        todaySales,
		PaidCount:         paid,
		PendingCount:      pending,
		InCartCount:       inCart,
		LowStockCount:     lowStock,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

func (s *dashboardService) DailySales(days int) ([]repository.DailySalesData, error) {
	if days <= 0 {
		days = 7
	}
	_, end := todayWindow()
	startDay := time.Now().UTC().AddDate(0, 0, -(days - 1))
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, time.UTC)
	return s.dashboardRepo.DailySales(start, end)
}
