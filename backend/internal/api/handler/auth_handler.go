package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// AuthHandler handlers HTTP do módulo de autenticação
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler cria o AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login entrada no painel
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "e-mail ou senha incorretos")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Refresh renova o par de tokens
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, 11002, "sessão expirada, entre novamente")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout encerra a sessão
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), GetClaims(c)); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me dados do usuário autenticado
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "usuário não encontrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ChangePassword troca a senha do usuário autenticado
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, 11003, "senha atual incorreta")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "usuário não encontrado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
