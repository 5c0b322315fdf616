package repository

import (
	"time"

	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// StatisticsRepository defines the interface for statistics data operations
type StatisticsRepository interface {
	GetBillsInRange(start, end time.Time) ([]*models.Bill, error)
	GetHouseholdNames(ids []uint) (map[uint]string, error)
	GetUserNames(ids []uint) (map[uint]string, error)
	GetFeeTypeNames(ids []uint) (map[uint]string, error)
}

// statisticsRepository implements StatisticsRepository
type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new instance of StatisticsRepository
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{
		db: db,
	}
}

// GetBillsInRange retrieves all bills whose billing period falls inside the
// closed range [start, end]
func (r *statisticsRepository) GetBillsInRange(start, end time.Time) ([]*models.Bill, error) {
	var bills []*models.Bill

	err := r.db.
		Where("billing_period BETWEEN ? AND ?", start, end).
		Order("billing_period ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// GetHouseholdNames resolves household IDs to owner display names in one query
func (r *statisticsRepository) GetHouseholdNames(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID        uint
		OwnerName string
		Code      string
	}
	err := r.db.Model(&models.Household{}).
		Select("id, owner_name, code").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.OwnerName + " (" + row.Code + ")"
	}
	return names, nil
}

// GetUserNames resolves user IDs to full names in one query
func (r *statisticsRepository) GetUserNames(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID       uint
		FullName string
		Username string
	}
	err := r.db.Model(&models.User{}).
		Select("id, full_name, username").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.FullName != "" {
			names[row.ID] = row.FullName
		} else {
			names[row.ID] = row.Username
		}
	}
	return names, nil
}

// GetFeeTypeNames resolves fee type IDs to fee names in one query
func (r *statisticsRepository) GetFeeTypeNames(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID      uint
		FeeName string
	}
	err := r.db.Model(&models.FeeType{}).
		Select("id, fee_name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.FeeName
	}
	return names, nil
}
