package controllers

import (
	"net/http"

	"github.com/biyonik/groupbuy-api/internal/http/request"
	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/internal/services"
)

// AuthController, kayıt ve login isteklerini yönetir.
type AuthController struct {
	userService *services.UserService
}

func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register handles POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *request.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}

	user, err := c.userService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, user, nil)
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *request.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}

	tokens, err := c.userService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, tokens, nil)
}

// Me handles GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *request.Request) {
	user, err := r.AuthUser()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"id":    user.GetID(),
		"email": user.GetEmail(),
		"role":  user.GetRole(),
	}, nil)
}
