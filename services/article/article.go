package article

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	articleRepo "calmwave/database/repository/article"
	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/services/storage"
	"calmwave/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Image is an optional upload attached to a new article.
type Image struct {
	ContentType string
	Body        io.Reader
}

type ArticleService interface {
	Create(ctx context.Context, s utils.Session, in models.ArticleInput, img *Image) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
}

// DefaultArticleService is the production implementation.
type DefaultArticleService struct {
	Repo      articleRepo.ArticleRepository
	Storage   storage.StorageService
	Publisher realtime.Publisher
	Now       func() time.Time
}

func (s *DefaultArticleService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create publishes an article. Only therapists write articles.
func (s *DefaultArticleService) Create(ctx context.Context, sess utils.Session, in models.ArticleInput, img *Image) (*models.Article, error) {
	if !sess.IsTherapist() {
		return nil, fmt.Errorf("articles are written by therapists: %w", utils.ErrForbidden)
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, utils.NewValidationError("article", "title and content are required")
	}

	created := s.now()
	a := &models.Article{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Email:     sess.Email,
		CreatedAt: created,
	}

	var uploaded string
	if img != nil {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return nil, utils.NewValidationError("image", "must be an image")
		}
		obj, err := s.Storage.Upload(ctx, fmt.Sprintf("articles/%d_%s", created.UnixMilli(), sess.Email), img.ContentType, img.Body)
		if err != nil {
			return nil, fmt.Errorf("upload article image: %w", err)
		}
		a.ImageURL = obj.URL
		uploaded = obj.Path
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		if uploaded != "" {
			if delErr := s.Storage.Delete(ctx, uploaded); delErr != nil {
				utils.GetLogger().Warn("article: orphaned image", zap.String("path", uploaded), zap.Error(delErr))
			}
		}
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.Publish(realtime.TopicArticles, "article.created", a)
	}
	return a, nil
}

func (s *DefaultArticleService) List(ctx context.Context) ([]models.Article, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	return s.Repo.GetByID(ctx, id)
}
