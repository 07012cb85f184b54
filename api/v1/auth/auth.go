package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	v1 "atm-monitor/services/v1"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth *v1.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges a username and password for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, v1.ErrInvalidCredentials) {
		log.Printf("[AUTH] Rejected login for %q", strings.TrimSpace(req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		log.Println("[AUTH] Login error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
