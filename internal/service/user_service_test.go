package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resifee-be-svc/internal/config"
	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/utils"
)

// fakeUserRepository is an in-memory UserRepository for service tests
type fakeUserRepository struct {
	users  []*models.User
	nextID uint
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	repo := &fakeUserRepository{nextID: 1}
	for _, user := range users {
		user.ID = repo.nextID
		repo.nextID++
		repo.users = append(repo.users, user)
	}
	return repo
}

func (r *fakeUserRepository) GetUserByID(id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) ListUsers(filter repository.UserFilter) ([]*models.User, int64, error) {
	return r.users, int64(len(r.users)), nil
}

func (r *fakeUserRepository) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepository) UpdateUser(user *models.User) error {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) DeleteUser(id uint) error {
	for i, existing := range r.users {
		if existing.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) RegisterUser(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	return r.CreateUser(user)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpiryMinutes: 60}
}

func TestRegisterCreatesResidentAccount(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	user, err := svc.Register(RegisterInput{
		Username: "nguyenvana",
		Email:    "a@example.com",
		FullName: "Nguyễn Văn A",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleResident, user.Role)
	assert.Equal(t, models.UserActive, user.Status)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, utils.CheckPassword("secret123", user.Password))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository(
		&models.User{Username: "nguyenvana", Email: "a@example.com"},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, err := svc.Register(RegisterInput{
		Username: "nguyenvana",
		Email:    "b@example.com",
		FullName: "Ai đó",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, "Tên đăng nhập đã tồn tại", err.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository(
		&models.User{Username: "nguyenvana", Email: "a@example.com"},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, err := svc.Register(RegisterInput{
		Username: "tranvanb",
		Email:    "a@example.com",
		FullName: "Trần Văn B",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "Email đã tồn tại", err.Error())
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := newFakeUserRepository(
		&models.User{Username: "admin", Password: hash, Role: models.RoleAdmin, Status: models.UserActive},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	user, token, err := svc.Login("admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := newFakeUserRepository(
		&models.User{Username: "admin", Password: hash, Status: models.UserActive},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, _, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, _, err := svc.Login("ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockedAccount(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := newFakeUserRepository(
		&models.User{Username: "locked", Password: hash, Status: models.UserLocked},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, _, err = svc.Login("locked", "secret123")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, err := svc.CreateUser(UserInput{
		Username: "someone",
		Email:    "s@example.com",
		Password: "secret123",
		Role:     "SUPERUSER",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeleteUserRejectsSelfDelete(t *testing.T) {
	repo := newFakeUserRepository(
		&models.User{Username: "admin", Role: models.RoleAdmin},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	_, err := svc.DeleteUser(1, 1)
	assert.ErrorIs(t, err, ErrSelfDelete)
	assert.Len(t, repo.users, 1)
}

func TestDeleteUserByAnotherAdmin(t *testing.T) {
	repo := newFakeUserRepository(
		&models.User{Username: "admin", Role: models.RoleAdmin},
		&models.User{Username: "resident", Role: models.RoleResident},
	)
	svc := NewUserService(repo, testJWTConfig(), testLogger())

	deleted, err := svc.DeleteUser(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "resident", deleted.Username)
	assert.Len(t, repo.users, 1)
}
