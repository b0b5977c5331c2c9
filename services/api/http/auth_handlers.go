package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// handleLogin checks the dashboard credentials
// POST /api/auth/login
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := s.auth.Login(ctx, req.User, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnauthorized, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleLogout clears the dashboard session
// POST /api/auth/logout
func (s *Server) handleLogout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := s.auth.Logout(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleSession reports whether the dashboard is logged in
// GET /api/auth/session
func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"autenticado": s.auth.State().Authenticated()},
	})
}
