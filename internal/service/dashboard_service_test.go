package service

import (
	"testing"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
)

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := NewDashboardService(repository.NewDashboardRepo(db))

	seedIngredient(t, db, "Plenty", 500)
	seedIngredient(t, db, "Scarce", 3)
	seedIngredient(t, db, "Gone", 0)

	transactions := []model.Transaction{
		{TotalPrice: 10000, TransactionStatus: model.TransactionPaid},
		{TotalPrice: 25000, TransactionStatus: model.TransactionPaid},
		{TotalPrice: 5000, TransactionStatus: model.TransactionPending},
		{TotalPrice: 2000, TransactionStatus: model.TransactionInCart},
	}
	for i := range transactions {
		if err := db.Create(&transactions[i]).Error; err != nil {
			t.Fatalf("seed transaction: %v", err)
		}
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TodaySales != 35000 {
		t.Errorf("today_sales = %d, want 35000", stats.TodaySales)
	}
	if stats.PaidCount != 2 || stats.PendingCount != 1 || stats.InCartCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", stats.PaidCount, stats.PendingCount, stats.InCartCount)
	}
	if stats.LowStockCount != 2 {
		t.Errorf("low_stock_count = %d, want 2", stats.LowStockCount)
	}
}

func TestDashboardDailySales(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := NewDashboardService(repository.NewDashboardRepo(db))

	paid := model.Transaction{TotalPrice: 10000, TransactionStatus: model.TransactionPaid}
	if err := db.Create(&paid).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	series, err := svc.DailySales(7)
	if err != nil {
		t.Fatalf("DailySales: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	if series[0].Total != 10000 || series[0].Count != 1 {
		t.Errorf("series[0] = %+v, want total 10000 count 1", series[0])
	}
}

func TestDashboardStatsEmptyDatabase(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := NewDashboardService(repository.NewDashboardRepo(db))

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TodaySales != 0 {
		t.Errorf("today_sales = %d, want 0", stats.TodaySales)
	}
}
