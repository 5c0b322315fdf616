package repository

import (
	"time"

	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// BillFilter carries the storage-level filters for listing bills. When
// FetchAll is set the query must not apply LIMIT/OFFSET; the caller paginates
// after deriving payment statuses.
type BillFilter struct {
	BillID        *uint
	HouseholdID   *uint
	HouseholdName string
	CollectorName string
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Page          int
	Limit         int
	FetchAll      bool
}

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	GetBillByID(id uint) (*models.Bill, error)
	ListBills(filter BillFilter) ([]*models.Bill, int64, error)
	CreateBill(bill *models.Bill) error
	UpdateBill(bill *models.Bill) error
	DeleteBill(id uint) error
}

// billRepository implements BillRepository
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new instance of BillRepository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{
		db: db,
	}
}

// GetBillByID retrieves a bill by ID with its related rows
func (r *billRepository) GetBillByID(id uint) (*models.Bill, error) {
	var bill models.Bill

	err := r.db.
		Preload("Household").
		Preload("Collector").
		Preload("FeeType").
		Where("id = ?", id).
		First(&bill).Error
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

// ListBills retrieves bills matching the filter. Name filters are pushed down
// as case-insensitive substring matches via joins; the billing period range is
// pushed down as a closed interval. The returned total is the count of rows
// matching the storage-level filters.
func (r *billRepository) ListBills(filter BillFilter) ([]*models.Bill, int64, error) {
	var bills []*models.Bill
	var total int64

	query := r.db.Model(&models.Bill{}).
		Joins("JOIN households ON households.id = bills.household_id").
		Joins("LEFT JOIN users AS collectors ON collectors.id = bills.collector_id")

	if filter.BillID != nil {
		query = query.Where("bills.id = ?", *filter.BillID)
	}
	if filter.HouseholdID != nil {
		query = query.Where("bills.household_id = ?", *filter.HouseholdID)
	}
	if filter.HouseholdName != "" {
		query = query.Where("households.owner_name ILIKE ?", "%"+filter.HouseholdName+"%")
	}
	if filter.CollectorName != "" {
		query = query.Where("collectors.full_name ILIKE ?", "%"+filter.CollectorName+"%")
	}
	if filter.PeriodStart != nil && filter.PeriodEnd != nil {
		query = query.Where("bills.billing_period BETWEEN ? AND ?", *filter.PeriodStart, *filter.PeriodEnd)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("bills.billing_period DESC, bills.id DESC")

	if !filter.FetchAll {
		page := filter.Page
		limit := filter.Limit
		if page < 1 {
			page = 1
		}
		if limit <= 0 {
			limit = 10
		}
		query = query.Limit(limit).Offset((page - 1) * limit)
	}

	err := query.
		Preload("Household").
		Preload("Collector").
		Preload("FeeType").
		Find(&bills).Error
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// CreateBill inserts a new bill
func (r *billRepository) CreateBill(bill *models.Bill) error {
	return r.db.Create(bill).Error
}

// UpdateBill saves changes to an existing bill
func (r *billRepository) UpdateBill(bill *models.Bill) error {
	return r.db.Save(bill).Error
}

// DeleteBill physically removes a bill
func (r *billRepository) DeleteBill(id uint) error {
	result := r.db.Delete(&models.Bill{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
