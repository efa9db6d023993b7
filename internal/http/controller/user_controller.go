package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/service"
)

// UserController handles HTTP requests for user operations.
type UserController struct {
	userService *service.UserService
}

// NewUserController creates a new UserController with the given user service.
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// ForgotPasswordRequest represents the request body for the forgot-password flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserResponse represents the response body for a user.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Signup handles the HTTP POST request for registering a new user.
func (uc *UserController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.userService.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser handles the HTTP GET request for fetching a user by username.
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// ForgotPassword handles the HTTP POST request for the forgot-password flow.
func (uc *UserController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := uc.userService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
