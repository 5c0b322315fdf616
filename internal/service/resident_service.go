package service

import (
	"time"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// ResidentInput carries the writable fields of a resident
type ResidentInput struct {
	HouseholdID        uint   `json:"household_id" binding:"required"`
	FullName           string `json:"full_name" binding:"required"`
	DateOfBirth        string `json:"date_of_birth"` // YYYY-MM-DD
	IdentityCardNumber string `json:"identity_card_number"`
	Relation           string `json:"relation"`
	Job                string `json:"job"`
	Phone              string `json:"phone"`
	IsStaying          *bool  `json:"is_staying"`
}

// ResidentService interface defines resident service methods
type ResidentService interface {
	GetResidentByID(id uint) (*models.Resident, error)
	ListResidents(filter repository.ResidentFilter) ([]*models.Resident, int64, error)
	CreateResident(input ResidentInput) (*models.Resident, error)
	UpdateResident(id uint, input ResidentInput) (before *models.Resident, after *models.Resident, err error)
	DeleteResident(id uint) (*models.Resident, error)
}

// residentService implements ResidentService interface
type residentService struct {
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewResidentService creates a new resident service
func NewResidentService(residentRepo repository.ResidentRepository, logger *logger.Logger) ResidentService {
	return &residentService{
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// GetResidentByID gets a resident by ID
func (s *residentService) GetResidentByID(id uint) (*models.Resident, error) {
	return s.residentRepo.GetResidentByID(id)
}

// ListResidents gets residents matching the filter with pagination
func (s *residentService) ListResidents(filter repository.ResidentFilter) ([]*models.Resident, int64, error) {
	residents, total, err := s.residentRepo.ListResidents(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list residents")
		return nil, 0, err
	}
	return residents, total, nil
}

func applyResidentInput(resident *models.Resident, input ResidentInput) {
	resident.HouseholdID = input.HouseholdID
	resident.FullName = input.FullName
	resident.IdentityCardNumber = input.IdentityCardNumber
	resident.Relation = input.Relation
	resident.Job = input.Job
	resident.Phone = input.Phone
	if input.IsStaying != nil {
		resident.IsStaying = *input.IsStaying
	}
	if input.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", input.DateOfBirth); err == nil {
			resident.DateOfBirth = &dob
		}
	}
}

// CreateResident creates a new resident
func (s *residentService) CreateResident(input ResidentInput) (*models.Resident, error) {
	resident := &models.Resident{IsStaying: true}
	applyResidentInput(resident, input)

	if err := s.residentRepo.CreateResident(resident); err != nil {
		s.logger.WithError(err).WithField("household_id", input.HouseholdID).Error("Failed to create resident")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id":  resident.ID,
		"household_id": resident.HouseholdID,
	}).Info("Resident created successfully")

	return resident, nil
}

// UpdateResident saves changes to a resident, returning before/after for audit
func (s *residentService) UpdateResident(id uint, input ResidentInput) (*models.Resident, *models.Resident, error) {
	existing, err := s.residentRepo.GetResidentByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	applyResidentInput(existing, input)
	existing.Household = nil

	if err := s.residentRepo.UpdateResident(existing); err != nil {
		s.logger.WithError(err).WithField("resident_id", id).Error("Failed to update resident")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteResident removes a resident and returns the deleted row for audit
func (s *residentService) DeleteResident(id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.residentRepo.DeleteResident(id); err != nil {
		s.logger.WithError(err).WithField("resident_id", id).Error("Failed to delete resident")
		return nil, err
	}

	return resident, nil
}
