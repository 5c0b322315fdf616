package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// LoginRequest is the credential payload for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register handles POST /api/v1/auth/register
// @Summary Register a resident account
// @Description Create a new resident account. Username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} utils.APIResponse "Account created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Username or email already taken"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu đăng ký không hợp lệ", err)
		return
	}

	user, err := h.userService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to register user")
		utils.InternalServerErrorResponse(c, "Đăng ký thất bại", err)
		return
	}

	utils.CreatedResponse(c, "Đăng ký thành công", user)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Verify credentials and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=LoginResponse} "Logged in"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Failure 403 {object} utils.APIResponse "Account locked"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu đăng nhập không hợp lệ", err)
		return
	}

	user, token, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountLocked) {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("Login failed")
		utils.InternalServerErrorResponse(c, "Đăng nhập thất bại", err)
		return
	}

	utils.SuccessResponse(c, "Đăng nhập thành công", LoginResponse{
		Token: token,
		User:  user,
	})
}
