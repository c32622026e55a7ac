package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// MustGetUserID extrai user_id do contexto Gin com segurança.
// Se o middleware JWT não injetou o user_id, escreve 401 e retorna false.
// O chamador deve dar return quando ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	return s, true
}

// GetClaims extrai as claims JWT completas do contexto, se presentes.
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
