package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// FeeTypeFilter carries the storage-level filters for listing fee types
type FeeTypeFilter struct {
	Keyword  string
	IsActive *bool
	Page     int
	Limit    int
}

// FeeTypeRepository defines the interface for fee type data operations
type FeeTypeRepository interface {
	GetFeeTypeByID(id uint) (*models.FeeType, error)
	ListFeeTypes(filter FeeTypeFilter) ([]*models.FeeType, int64, error)
	CreateFeeType(feeType *models.FeeType) error
	UpdateFeeType(feeType *models.FeeType) error
	DeleteFeeType(id uint) error
}

// feeTypeRepository implements FeeTypeRepository
type feeTypeRepository struct {
	db *gorm.DB
}

// NewFeeTypeRepository creates a new instance of FeeTypeRepository
func NewFeeTypeRepository(db *gorm.DB) FeeTypeRepository {
	return &feeTypeRepository{
		db: db,
	}
}

// GetFeeTypeByID retrieves a fee type by ID
func (r *feeTypeRepository) GetFeeTypeByID(id uint) (*models.FeeType, error) {
	var feeType models.FeeType

	err := r.db.Where("id = ?", id).First(&feeType).Error
	if err != nil {
		return nil, err
	}

	return &feeType, nil
}

// ListFeeTypes retrieves fee types matching the filter with pagination
func (r *feeTypeRepository) ListFeeTypes(filter FeeTypeFilter) ([]*models.FeeType, int64, error) {
	var feeTypes []*models.FeeType
	var total int64

	query := r.db.Model(&models.FeeType{})

	if filter.Keyword != "" {
		query = query.Where("fee_name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
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
		Order("fee_name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&feeTypes).Error
	if err != nil {
		return nil, 0, err
	}

	return feeTypes, total, nil
}

// CreateFeeType inserts a new fee type
func (r *feeTypeRepository) CreateFeeType(feeType *models.FeeType) error {
	return r.db.Create(feeType).Error
}

// UpdateFeeType saves changes to an existing fee type
func (r *feeTypeRepository) UpdateFeeType(feeType *models.FeeType) error {
	return r.db.Save(feeType).Error
}

// DeleteFeeType physically removes a fee type
func (r *feeTypeRepository) DeleteFeeType(id uint) error {
	result := r.db.Delete(&models.FeeType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
