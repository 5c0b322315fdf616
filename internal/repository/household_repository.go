package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// HouseholdFilter carries the storage-level filters for listing households
type HouseholdFilter struct {
	Keyword string
	Page    int
	Limit   int
}

// HouseholdRepository defines the interface for household data operations
type HouseholdRepository interface {
	GetHouseholdByID(id uint) (*models.Household, error)
	GetHouseholdByUserID(userID uint) (*models.Household, error)
	ListHouseholds(filter HouseholdFilter) ([]*models.Household, int64, error)
	CreateHousehold(household *models.Household) error
	UpdateHousehold(household *models.Household) error
	DeleteHousehold(id uint) error
}

// householdRepository implements HouseholdRepository
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new instance of HouseholdRepository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{
		db: db,
	}
}

// GetHouseholdByID retrieves a household by ID
func (r *householdRepository) GetHouseholdByID(id uint) (*models.Household, error) {
	var household models.Household

	err := r.db.Preload("User").Where("id = ?", id).First(&household).Error
	if err != nil {
		return nil, err
	}

	return &household, nil
}

// GetHouseholdByUserID retrieves the household linked to a resident account
func (r *householdRepository) GetHouseholdByUserID(userID uint) (*models.Household, error) {
	var household models.Household

	err := r.db.Where("user_id = ?", userID).First(&household).Error
	if err != nil {
		return nil, err
	}

	return &household, nil
}

// ListHouseholds retrieves households matching the filter with pagination
func (r *householdRepository) ListHouseholds(filter HouseholdFilter) ([]*models.Household, int64, error) {
	var households []*models.Household
	var total int64

	query := r.db.Model(&models.Household{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("code ILIKE ? OR owner_name ILIKE ? OR address ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	err := query.
		Order("code ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&households).Error
	if err != nil {
		return nil, 0, err
	}

	return households, total, nil
}

// CreateHousehold inserts a new household
func (r *householdRepository) CreateHousehold(household *models.Household) error {
	return r.db.Create(household).Error
}

// UpdateHousehold saves changes to an existing household
func (r *householdRepository) UpdateHousehold(household *models.Household) error {
	return r.db.Save(household).Error
}

// DeleteHousehold physically removes a household
func (r *householdRepository) DeleteHousehold(id uint) error {
	result := r.db.Delete(&models.Household{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
