package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/article"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	Articles article.ArticleService
}

func NewArticleHandler(svc article.ArticleService) *ArticleHandler {
	return &ArticleHandler{Articles: svc}
}

func (h *ArticleHandler) ListHandler(c *gin.Context) {
	list, err := h.Articles.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list articles", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ArticleHandler) GetHandler(c *gin.Context) {
	a, err := h.Articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to load article", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CreateHandler accepts multipart form fields title and content plus an optional "image" file.
func (h *ArticleHandler) CreateHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var in models.ArticleInput
	if err := c.ShouldBind(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	var img *article.Image
	if fh, err := c.FormFile("image"); err == nil {
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
		img = &article.Image{ContentType: fh.Header.Get("Content-Type"), Body: f}
	}

	a, err := h.Articles.Create(c.Request.Context(), s, in, img)
	if err != nil {
		utils.RespondError(c, "Failed to create article", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}
