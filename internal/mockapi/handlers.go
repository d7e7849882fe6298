package mockapi

import (
	"errors"
	"net/http"

	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	auth    *AuthService
	signups *SignupStore
}

func NewHandler(auth *AuthService, signups *SignupStore) *Handler {
	return &Handler{auth: auth, signups: signups}
}

func (h *Handler) Login(c *gin.Context) {
	var body v1.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Message: err.Error()})
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "invalid email or password"})
			return
		}
		logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Message: "login failed"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	var body v1.RefreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Message: err.Error()})
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) MyRole(c *gin.Context) {
	claims := ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, v1.RoleResponse{Role: claims.Role})
}

func (h *Handler) CreateSignupRequest(c *gin.Context) {
	var body v1.SignupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Message: err.Error()})
		return
	}

	rec, err := h.signups.Create(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ListSignupRequests(c *gin.Context) {
	c.JSON(http.StatusOK, v1.SignupListResponse{Data: h.signups.List()})
}

func (h *Handler) ApproveSignupRequest(c *gin.Context) {
	h.decideSignup(c, h.signups.Approve)
}

func (h *Handler) RejectSignupRequest(c *gin.Context) {
	h.decideSignup(c, h.signups.Reject)
}

func (h *Handler) decideSignup(c *gin.Context, decide func(string) (v1.SignupRecord, error)) {
	rec, err := decide(c.Param("id"))
	switch {
	case errors.Is(err, ErrSignupNotFound):
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Message: err.Error()})
	case errors.Is(err, ErrSignupDecided):
		c.JSON(http.StatusConflict, v1.ErrorResponse{Message: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Message: "decision failed"})
	default:
		c.JSON(http.StatusOK, rec)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
