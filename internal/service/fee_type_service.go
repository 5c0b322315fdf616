package service

import (
	"github.com/shopspring/decimal"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// FeeTypeInput carries the writable fields of a fee type
type FeeTypeInput struct {
	FeeName     string          `json:"fee_name" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

// FeeTypeService interface defines fee type service methods
type FeeTypeService interface {
	GetFeeTypeByID(id uint) (*models.FeeType, error)
	ListFeeTypes(filter repository.FeeTypeFilter) ([]*models.FeeType, int64, error)
	CreateFeeType(input FeeTypeInput) (*models.FeeType, error)
	UpdateFeeType(id uint, input FeeTypeInput) (before *models.FeeType, after *models.FeeType, err error)
	DeleteFeeType(id uint) (*models.FeeType, error)
}

// feeTypeService implements FeeTypeService interface
type feeTypeService struct {
	feeTypeRepo repository.FeeTypeRepository
	logger      *logger.Logger
}

// NewFeeTypeService creates a new fee type service
func NewFeeTypeService(feeTypeRepo repository.FeeTypeRepository, logger *logger.Logger) FeeTypeService {
	return &feeTypeService{
		feeTypeRepo: feeTypeRepo,
		logger:      logger,
	}
}

// GetFeeTypeByID gets a fee type by ID
func (s *feeTypeService) GetFeeTypeByID(id uint) (*models.FeeType, error) {
	return s.feeTypeRepo.GetFeeTypeByID(id)
}

// ListFeeTypes gets fee types matching the filter with pagination
func (s *feeTypeService) ListFeeTypes(filter repository.FeeTypeFilter) ([]*models.FeeType, int64, error) {
	feeTypes, total, err := s.feeTypeRepo.ListFeeTypes(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list fee types")
		return nil, 0, err
	}
	return feeTypes, total, nil
}

// CreateFeeType creates a new fee type
func (s *feeTypeService) CreateFeeType(input FeeTypeInput) (*models.FeeType, error) {
	if input.UnitPrice.IsNegative() {
		return nil, ErrInvalidAmount
	}

	feeType := &models.FeeType{
		FeeName:     input.FeeName,
		UnitPrice:   input.UnitPrice,
		Unit:        input.Unit,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		feeType.IsActive = *input.IsActive
	}

	if err := s.feeTypeRepo.CreateFeeType(feeType); err != nil {
		s.logger.WithError(err).WithField("fee_name", input.FeeName).Error("Failed to create fee type")
		return nil, err
	}

	return feeType, nil
}

// UpdateFeeType saves changes to a fee type, returning before/after for audit
func (s *feeTypeService) UpdateFeeType(id uint, input FeeTypeInput) (*models.FeeType, *models.FeeType, error) {
	if input.UnitPrice.IsNegative() {
		return nil, nil, ErrInvalidAmount
	}

	existing, err := s.feeTypeRepo.GetFeeTypeByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	existing.FeeName = input.FeeName
	existing.UnitPrice = input.UnitPrice
	existing.Unit = input.Unit
	existing.Description = input.Description
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := s.feeTypeRepo.UpdateFeeType(existing); err != nil {
		s.logger.WithError(err).WithField("fee_type_id", id).Error("Failed to update fee type")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteFeeType removes a fee type and returns the deleted row for audit
func (s *feeTypeService) DeleteFeeType(id uint) (*models.FeeType, error) {
	feeType, err := s.feeTypeRepo.GetFeeTypeByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.feeTypeRepo.DeleteFeeType(id); err != nil {
		s.logger.WithError(err).WithField("fee_type_id", id).Error("Failed to delete fee type")
		return nil, err
	}

	return feeType, nil
}
