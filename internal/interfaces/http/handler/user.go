package handler

import (
	"time"

	identityapp "github.com/covu/backend/internal/application/identity"
	"github.com/covu/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles account-related API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest represents a sign-up request
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	City        string `json:"city" binding:"required,min=1,max=100"`
	State       string `json:"state" binding:"required,min=1,max=100"`
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RegisterResponse represents the outcome of a registration
type RegisterResponse struct {
	User   UserResponse `json:"user"`
	Wallet struct {
		ID       string `json:"id"`
		Currency string `json:"currency"`
		IsActive bool   `json:"is_active"`
	} `json:"wallet"`
}

// Register creates a user account together with its wallet
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.Register(c.Request.Context(), identityapp.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := RegisterResponse{User: toUserResponse(result.User)}
	resp.Wallet.ID = result.Wallet.ID.String()
	resp.Wallet.Currency = string(result.Wallet.Currency)
	resp.Wallet.IsActive = result.Wallet.IsActive

	h.Created(c, resp)
}

// Login verifies credentials and returns the account
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// Me returns the authenticated user's account
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		City:        u.City,
		State:       u.State,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
