package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/trail-service/internal/handlers/dto"
	"github.com/thereayou/trail-service/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
	log  logrus.FieldLogger
}

func NewAuthHandler(authSvc *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	RegisterValidators()
	return &AuthHandler{auth: authSvc, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	res, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse(res))
}

// Login выдаёт JWT и обновляет время последнего входа
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, authResponse(res))
}

func authResponse(res *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		UserID:    res.UserID.String(),
		Username:  res.Username,
		Email:     res.Email,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}
}
