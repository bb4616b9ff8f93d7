package repository

import (
	"strings"
	"time"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows the transaction list. Date selects a single UTC
// day window relative to now; Cashier is a case-insensitive substring over
// the cashier's full name.
type TransactionFilter struct {
	Date          string // today, yesterday, last_week, last_month
	Cashier       string
	PaymentMethod string
	Status        model.TransactionStatus
}

type TransactionSorting struct {
	Field     string // date, total_price
	Direction string
}

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindActiveByID(id uuid.UUID) (*model.Transaction, error)
	FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error)
	Save(tx *gorm.DB, transaction *model.Transaction) error
	ReplaceMenus(tx *gorm.DB, transactionID uuid.UUID, menus []model.Menu) error
	SoftDelete(tx *gorm.DB, id uuid.UUID) error
	List(filter TransactionFilter, sorting *TransactionSorting, pagination *Pagination) ([]model.Transaction, int64, error)
	// NextQueueNumber atomically increments and returns the per-day counter
	NextQueueNumber(tx *gorm.DB, day string) (int, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.Preload("Menus", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Menus.Recipe").Preload("Cashier")
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindActiveByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := preloadOrder(r.db).First(&transaction, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindActiveByIDForUpdate loads the order inside the caller's transaction so
// the read and the stock reconciliation commit or roll back together.
func (r *transactionRepo) FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := preloadOrder(tx).First(&transaction, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) Save(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Omit("Menus", "Cashier").Save(transaction).Error
}

func (r *transactionRepo) ReplaceMenus(tx *gorm.DB, transactionID uuid.UUID, menus []model.Menu) error {
	if err := tx.Delete(&model.Menu{}, "transaction_id = ?", transactionID).Error; err != nil {
		return err
	}
	for i := range menus {
		menus[i].TransactionID = transactionID
		menus[i].Position = i
	}
	if len(menus) == 0 {
		return nil
	}
	return tx.Omit("Recipe").Create(&menus).Error
}

func (r *transactionRepo) SoftDelete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

// dayWindow returns the 00:00:00-23:59:59 UTC window of the day offsetDays
// before today.
func dayWindow(offsetDays int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, -offsetDays)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}

func (r *transactionRepo) List(filter TransactionFilter, sorting *TransactionSorting, pagination *Pagination) ([]model.Transaction, int64, error) {
	query := r.db.Model(&model.Transaction{}).Where("transactions.status = ?", model.StatusActive)

	var offset int
	switch filter.Date {
	case "today":
		offset = 0
	case "yesterday":
		offset = 1
	case "last_week":
		offset = 7
	case "last_month":
		offset = 30
	default:
		offset = -1
	}
	if filter.Date != "" && offset >= 0 {
		start, end := dayWindow(offset)
		query = query.Where("transactions.created_at BETWEEN ? AND ?", start, end)
	}

	if filter.Cashier != "" {
		query = query.Joins("JOIN users ON users.id = transactions.cashier_id").
			Where("LOWER(users.first_name || ' ' || users.last_name) LIKE ?",
				"%"+strings.ToLower(filter.Cashier)+"%")
	}
	if filter.PaymentMethod != "" {
		query = query.Where("transactions.payment_method = ?", filter.PaymentMethod)
	}
	if filter.Status != "" {
		query = query.Where("transactions.transaction_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "transactions.created_at DESC"
	if sorting != nil {
		direction := "ASC"
		if strings.EqualFold(sorting.Direction, "desc") {
			direction = "DESC"
		}
		switch sorting.Field {
		case "date":
			order = "transactions.created_at " + direction
		case "total_price":
			order = "transactions.total_price " + direction
		}
	}
	query = query.Order(order)

	if pagination != nil && pagination.Limit > 0 {
		query = query.Offset(pagination.Page * pagination.Limit).Limit(pagination.Limit)
	}

	var transactions []model.Transaction
	if err := preloadOrder(query).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *transactionRepo) NextQueueNumber(tx *gorm.DB, day string) (int, error) {
	var value int
	err := tx.Raw(`INSERT INTO queue_counters (day, value) VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET value = queue_counters.value + 1
		RETURNING value`, day).Scan(&value).Error
	return value, err
}
