package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/user"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 5 << 20

type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) GetMeHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	u, err := h.Users.GetProfile(c.Request.Context(), s)
	if err != nil {
		utils.RespondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), s, upd)
	if err != nil {
		utils.RespondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadImageHandler takes a multipart "image" field.
func (h *UserHandler) UploadImageHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Image not provided", err.Error())
		return
	}
	if fh.Size > maxImageBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "Image too large", "")
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unreadable image", err.Error())
		return
	}
	defer f.Close()

	u, err := h.Users.UploadProfileImage(c.Request.Context(), s, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		utils.RespondError(c, "Failed to upload image", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.FCMTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Users.UpdateFCMToken(c.Request.Context(), s, req.Token); err != nil {
		utils.RespondError(c, "Failed to update FCM token", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTherapistsHandler supports ?search= on the therapist's name.
func (h *UserHandler) ListTherapistsHandler(c *gin.Context) {
	list, err := h.Users.ListTherapists(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.RespondError(c, "Failed to list therapists", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetTherapistHandler(c *gin.Context) {
	t, err := h.Users.GetTherapist(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to load therapist", err)
		return
	}
	c.JSON(http.StatusOK, t)
}
