package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"calmwave/services/storage"
)

// Storage keeps uploaded objects in memory.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewStorage() *Storage { return &Storage{Objects: map[string][]byte{}} }

func (s *Storage) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (*storage.Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.Objects[objectPath] = b
	s.mu.Unlock()
	return &storage.Object{
		Path:        objectPath,
		URL:         storage.DownloadURL("memory", objectPath, ""),
		ContentType: contentType,
	}, nil
}

func (s *Storage) Delete(_ context.Context, objectPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectPath)
	return nil
}

func (s *Storage) SignedURL(objectPath string, expires time.Duration) (string, error) {
	return fmt.Sprintf("%s&expires=%d", storage.DownloadURL("memory", objectPath, ""), int(expires.Seconds())), nil
}
