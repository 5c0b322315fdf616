package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"resifee-be-svc/internal/config"
	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// Auth and account errors with client-facing Vietnamese messages
var (
	ErrUsernameTaken      = errors.New("Tên đăng nhập đã tồn tại")
	ErrEmailTaken         = errors.New("Email đã tồn tại")
	ErrInvalidCredentials = errors.New("Tên đăng nhập hoặc mật khẩu không đúng")
	ErrAccountLocked      = errors.New("Tài khoản đã bị khóa")
	ErrSelfDelete         = errors.New("Không thể xóa tài khoản của chính mình")
	ErrInvalidRole        = errors.New("Vai trò không hợp lệ")
)

// RegisterInput carries the sign-up fields
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserInput carries the writable fields of a user for admin CRUD
type UserInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// AuthClaims are the JWT claims carried by access tokens
type AuthClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserService interface defines user and auth service methods
type UserService interface {
	Register(input RegisterInput) (*models.User, error)
	Login(username, password string) (*models.User, string, error)
	GetUserByID(id uint) (*models.User, error)
	ListUsers(filter repository.UserFilter) ([]*models.User, int64, error)
	CreateUser(input UserInput) (*models.User, error)
	UpdateUser(id uint, input UserInput) (before *models.User, after *models.User, err error)
	DeleteUser(id uint, actorID uint) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, jwtCfg config.JWTConfig, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		logger:   logger,
	}
}

// Register creates a new resident account. The duplicate check and insert run
// in one transaction so concurrent sign-ups cannot race past the check.
func (s *userService) Register(input RegisterInput) (*models.User, error) {
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: hash,
		Role:     models.RoleResident,
		Status:   models.UserActive,
	}

	if err := s.userRepo.RegisterUser(user); err != nil {
		var dup *repository.DuplicateFieldError
		if errors.As(err, &dup) {
			s.logger.WithField("field", dup.Field).Warn("Sign-up rejected: duplicate field")
			if dup.Field == "email" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		s.logger.WithError(err).Error("Failed to register user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered successfully")

	return user, nil
}

// Login verifies credentials and issues a signed access token
func (s *userService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	if user.Status == models.UserLocked {
		return nil, "", ErrAccountLocked
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to sign token")
		return nil, "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}).Info("User logged in successfully")

	return user, token, nil
}

func (s *userService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.jwtCfg.ExpiryMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetUserByID(id)
}

// ListUsers retrieves users matching the filter with pagination
func (s *userService) ListUsers(filter repository.UserFilter) ([]*models.User, int64, error) {
	users, total, err := s.userRepo.ListUsers(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		return nil, 0, err
	}
	return users, total, nil
}

// CreateUser creates an account with an explicit role (admin operation)
func (s *userService) CreateUser(input UserInput) (*models.User, error) {
	role := models.UserRole(input.Role)
	if input.Role == "" {
		role = models.RoleResident
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := models.UserStatus(input.Status)
	if input.Status == "" {
		status = models.UserActive
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: hash,
		Role:     role,
		Status:   status,
	}

	if err := s.userRepo.RegisterUser(user); err != nil {
		var dup *repository.DuplicateFieldError
		if errors.As(err, &dup) {
			if dup.Field == "email" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	return user, nil
}

// UpdateUser saves changes to an account, returning before/after for audit
func (s *userService) UpdateUser(id uint, input UserInput) (*models.User, *models.User, error) {
	existing, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	if input.Role != "" {
		role := models.UserRole(input.Role)
		if !role.Valid() {
			return nil, nil, ErrInvalidRole
		}
		existing.Role = role
	}
	if input.Status != "" {
		existing.Status = models.UserStatus(input.Status)
	}
	existing.Username = input.Username
	existing.Email = input.Email
	existing.FullName = input.FullName

	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, nil, err
		}
		existing.Password = hash
	}

	if err := s.userRepo.UpdateUser(existing); err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to update user")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteUser removes an account. Deleting one's own account is rejected.
func (s *userService) DeleteUser(id uint, actorID uint) (*models.User, error) {
	if id == actorID {
		return nil, ErrSelfDelete
	}

	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.DeleteUser(id); err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		return nil, err
	}

	return user, nil
}
