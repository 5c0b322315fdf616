package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// UserFilter carries the storage-level filters for listing users
type UserFilter struct {
	Keyword string
	Role    string
	Status  string
	Page    int
	Limit   int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers(filter UserFilter) ([]*models.User, int64, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	// RegisterUser runs the duplicate check and insert inside one transaction
	// to prevent a duplicate-username race between concurrent sign-ups.
	RegisterUser(user *models.User) error
}

// ErrDuplicateUsername and ErrDuplicateEmail identify which field collided
// during sign-up.
var (
	ErrDuplicateUsername = &DuplicateFieldError{Field: "username"}
	ErrDuplicateEmail    = &DuplicateFieldError{Field: "email"}
)

// DuplicateFieldError reports a unique-field collision
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return "duplicate " + e.Field
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// GetUserByID retrieves a user by ID
func (r *userRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User

	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUsers retrieves users matching the filter with pagination
func (r *userRepository) ListUsers(filter UserFilter) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.Model(&models.User{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
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
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CreateUser inserts a new user
func (r *userRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateUser saves changes to an existing user
func (r *userRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser physically removes a user
func (r *userRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RegisterUser checks username and email uniqueness and inserts the user in a
// single transaction
func (r *userRepository) RegisterUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}

		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		return tx.Create(user).Error
	})
}
