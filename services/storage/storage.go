package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// StorageService defines the object storage operations used by profiles and articles.
type StorageService interface {
	// Upload writes r to objectPath and returns the stored object with its download URL.
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (*Object, error)
	Delete(ctx context.Context, objectPath string) error
	// SignedURL returns a time-limited GET URL.
	SignedURL(objectPath string, expires time.Duration) (string, error)
}

// Object describes an uploaded file.
type Object struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

// FirebaseStorageService implements StorageService using Firebase Storage.
type FirebaseStorageService struct {
	client     *storage.Client
	bucketName string
}

// NewFirebaseStorageService creates a storage client from the service account file.
func NewFirebaseStorageService(ctx context.Context, serviceAccountJSONPath, bucketName string) (*FirebaseStorageService, error) {
	if bucketName == "" {
		return nil, errors.New("storage bucket name is empty")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseStorageService{client: client, bucketName: bucketName}, nil
}

func (s *FirebaseStorageService) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (*Object, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(objectPath))
	}
	token := uuid.NewString()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ObjectAttrs.ContentType = contentType
	// Firebase download URLs are authorised by this metadata token.
	w.ObjectAttrs.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if err := writeObject(w, r, cancel); err != nil {
		return nil, err
	}

	return &Object{
		Path:        objectPath,
		URL:         DownloadURL(s.bucketName, objectPath, token),
		ContentType: contentType,
	}, nil
}

// writeObject copies r into w and finalizes it with Close. When the copy fails, cancel aborts the
// upload instead: closing a storage writer would save the truncated object.
func writeObject(w io.WriteCloser, r io.Reader, cancel context.CancelFunc) error {
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

func (s *FirebaseStorageService) Delete(ctx context.Context, objectPath string) error {
	if err := s.client.Bucket(s.bucketName).Object(objectPath).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FirebaseStorageService) SignedURL(objectPath string, expires time.Duration) (string, error) {
	signed, err := s.client.Bucket(s.bucketName).SignedURL(objectPath, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return signed, nil
}

func (s *FirebaseStorageService) Close() error {
	return s.client.Close()
}

// DownloadURL builds the Firebase download URL of an object. token may be empty for public objects.
func DownloadURL(bucket, objectPath, token string) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.QueryEscape(objectPath))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}
