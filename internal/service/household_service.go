package service

import (
	"errors"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// ErrHouseholdCodeTaken is returned when a household code collides
var ErrHouseholdCodeTaken = errors.New("Mã hộ khẩu đã tồn tại")

// HouseholdInput carries the writable fields of a household
type HouseholdInput struct {
	Code      string  `json:"code" binding:"required"`
	OwnerName string  `json:"owner_name" binding:"required"`
	Address   string  `json:"address"`
	AreaSqm   float64 `json:"area_sqm"`
	UserID    *uint   `json:"user_id"`
}

// HouseholdService interface defines household service methods
type HouseholdService interface {
	GetHouseholdByID(id uint) (*models.Household, error)
	GetHouseholdByUserID(userID uint) (*models.Household, error)
	ListHouseholds(filter repository.HouseholdFilter) ([]*models.Household, int64, error)
	CreateHousehold(input HouseholdInput) (*models.Household, error)
	UpdateHousehold(id uint, input HouseholdInput) (before *models.Household, after *models.Household, err error)
	DeleteHousehold(id uint) (*models.Household, error)
}

// householdService implements HouseholdService interface
type householdService struct {
	householdRepo repository.HouseholdRepository
	logger        *logger.Logger
}

// NewHouseholdService creates a new household service
func NewHouseholdService(householdRepo repository.HouseholdRepository, logger *logger.Logger) HouseholdService {
	return &householdService{
		householdRepo: householdRepo,
		logger:        logger,
	}
}

// GetHouseholdByID gets a household by ID
func (s *householdService) GetHouseholdByID(id uint) (*models.Household, error) {
	return s.householdRepo.GetHouseholdByID(id)
}

// GetHouseholdByUserID gets the household linked to a resident account
func (s *householdService) GetHouseholdByUserID(userID uint) (*models.Household, error) {
	return s.householdRepo.GetHouseholdByUserID(userID)
}

// ListHouseholds gets households matching the filter with pagination
func (s *householdService) ListHouseholds(filter repository.HouseholdFilter) ([]*models.Household, int64, error) {
	households, total, err := s.householdRepo.ListHouseholds(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list households")
		return nil, 0, err
	}
	return households, total, nil
}

// CreateHousehold creates a new household
func (s *householdService) CreateHousehold(input HouseholdInput) (*models.Household, error) {
	household := &models.Household{
		Code:      input.Code,
		OwnerName: input.OwnerName,
		Address:   input.Address,
		AreaSqm:   input.AreaSqm,
		UserID:    input.UserID,
	}

	if err := s.householdRepo.CreateHousehold(household); err != nil {
		s.logger.WithError(err).WithField("code", input.Code).Error("Failed to create household")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"household_id": household.ID,
		"code":         household.Code,
	}).Info("Household created successfully")

	return household, nil
}

// UpdateHousehold saves changes to a household, returning before/after for audit
func (s *householdService) UpdateHousehold(id uint, input HouseholdInput) (*models.Household, *models.Household, error) {
	existing, err := s.householdRepo.GetHouseholdByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	existing.Code = input.Code
	existing.OwnerName = input.OwnerName
	existing.Address = input.Address
	existing.AreaSqm = input.AreaSqm
	existing.UserID = input.UserID
	existing.User = nil

	if err := s.householdRepo.UpdateHousehold(existing); err != nil {
		s.logger.WithError(err).WithField("household_id", id).Error("Failed to update household")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteHousehold removes a household and returns the deleted row for audit
func (s *householdService) DeleteHousehold(id uint) (*models.Household, error) {
	household, err := s.householdRepo.GetHouseholdByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.DeleteHousehold(id); err != nil {
		s.logger.WithError(err).WithField("household_id", id).Error("Failed to delete household")
		return nil, err
	}

	return household, nil
}
