package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/auth"
)

// Authenticator registers and authenticates users.
type Authenticator interface {
	Register(ctx context.Context, r auth.Registration) (*auth.Identity, error)
	Authenticate(ctx context.Context, username, password string) (*auth.Identity, error)
}

// TokenIssuer issues session tokens for authenticated identities.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// SignupRequest is the body of POST /auth/signup. Username defaults to name.
type SignupRequest struct {
	Name     string `json:"name" validate:"required_without=Username"`
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse confirms a registration.
type SignupResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthHandler handles sign-up and login.
type AuthHandler struct {
	users  Authenticator
	tokens TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users Authenticator, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup registers a new user.
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Registration"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req SignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err, "invalid signup request")
	}

	id, err := h.users.Register(c.Context(), auth.Registration{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, "failed to register user")
	}

	return c.JSON(SignupResponse{Message: "User created successfully", Username: id.Username})
}

// Login authenticates a user and returns a bearer token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err, "invalid login request")
	}

	id, err := h.users.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err, "failed to authenticate user")
	}

	token, err := h.tokens.Issue(*id)
	if err != nil {
		return respondError(c, err, "failed to issue token")
	}
	return c.JSON(LoginResponse{Username: id.Username, Token: token})
}
