package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/user"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// RegisterHandler creates the account and profile. The client signs in with Firebase afterwards.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
