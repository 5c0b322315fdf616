package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// ResidentFilter carries the storage-level filters for listing residents
type ResidentFilter struct {
	HouseholdID *uint
	Keyword     string
	IsStaying   *bool
	Page        int
	Limit       int
}

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	GetResidentByID(id uint) (*models.Resident, error)
	ListResidents(filter ResidentFilter) ([]*models.Resident, int64, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(resident *models.Resident) error
	DeleteResident(id uint) error
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// GetResidentByID retrieves a resident by ID
func (r *residentRepository) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Preload("Household").Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// ListResidents retrieves residents matching the filter with pagination
func (r *residentRepository) ListResidents(filter ResidentFilter) ([]*models.Resident, int64, error) {
	var residents []*models.Resident
	var total int64

	query := r.db.Model(&models.Resident{})

	if filter.HouseholdID != nil {
		query = query.Where("household_id = ?", *filter.HouseholdID)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("full_name ILIKE ? OR identity_card_number ILIKE ?", pattern, pattern)
	}
	if filter.IsStaying != nil {
		query = query.Where("is_staying = ?", *filter.IsStaying)
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
		Preload("Household").
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&residents).Error
	if err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// CreateResident inserts a new resident
func (r *residentRepository) CreateResident(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// UpdateResident saves changes to an existing resident
func (r *residentRepository) UpdateResident(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// DeleteResident physically removes a resident
func (r *residentRepository) DeleteResident(id uint) error {
	result := r.db.Delete(&models.Resident{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
