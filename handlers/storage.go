package handlers

import (
	"net/http"
	"path"
	"strings"
	"time"

	"calmwave/services/storage"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

const signedURLTTL = 15 * time.Minute

// StorageHandler hands out time-limited links to stored files.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// SignedURLHandler signs ?path= for the caller's own profile files and for article images.
func (h *StorageHandler) SignedURLHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	objectPath := path.Clean(strings.TrimPrefix(c.Query("path"), "/"))
	if objectPath == "." || strings.HasPrefix(objectPath, "..") {
		utils.JSONError(c, http.StatusBadRequest, "Invalid path", "")
		return
	}
	if !strings.HasPrefix(objectPath, "profiles/"+s.UID+"/") && !strings.HasPrefix(objectPath, "articles/") {
		utils.JSONError(c, http.StatusForbidden, "Path not accessible", "")
		return
	}

	url, err := h.StorageSvc.SignedURL(objectPath, signedURLTTL)
	if err != nil {
		utils.RespondError(c, "Failed to sign URL", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(signedURLTTL.Seconds())})
}
