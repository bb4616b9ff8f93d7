package repository

import (
	"time"

	"go-restaurant-api/internal/model"

	"gorm.io/gorm"
)

// DailySalesData is one point of the revenue-over-time series.
type DailySalesData struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
	Count int64  `json:"count"`
}

type DashboardRepository interface {
	PaidSalesTotal(start, end time.Time) (int64, error)
	CountByStatus(status model.TransactionStatus) (int64, error)
	LowStockCount(threshold int64) (int64, error)
	DailySales(start, end time.Time) ([]DailySalesData, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) PaidSalesTotal(start, end time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.Transaction{}).
		Where("status = ? AND transaction_status = ?", model.StatusActive, model.TransactionPaid).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *dashboardRepo) CountByStatus(status model.TransactionStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).
		Where("status = ? AND transaction_status = ?", model.StatusActive, status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) LowStockCount(threshold int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ingredient{}).
		Where("status = ? AND stock_amount < ?", model.StatusActive, threshold).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) DailySales(start, end time.Time) ([]DailySalesData, error) {
	var rows []DailySalesData
	err := r.db.Model(&model.Transaction{}).
		Where("status = ? AND transaction_status = ?", model.StatusActive, model.TransactionPaid).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("DATE(created_at) AS day, SUM(total_price) AS total, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}
