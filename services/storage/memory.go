package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryService is an in-process Service used in development and tests.
type MemoryService struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Deleted counts releases per object ID so tests can assert that preview
	// resources are released exactly once.
	Deleted map[string]int
}

// NewMemoryService creates an empty in-memory storage service.
func NewMemoryService() *MemoryService {
	return &MemoryService{
		objects: map[string][]byte{},
		Deleted: map[string]int{},
	}
}

func (s *MemoryService) Upload(ctx context.Context, folder, fileName, contentType string, data []byte) (*ObjectRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s/%s-%s", folder, uuid.New().String(), fileName)
	s.objects[id] = append([]byte(nil), data...)
	return &ObjectRef{ID: id, URL: "memory://" + id}, nil
}

func (s *MemoryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("MemoryService: object %s not found", id)
	}
	delete(s.objects, id)
	s.Deleted[id]++
	return nil
}

func (s *MemoryService) DownloadURL(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return "", fmt.Errorf("MemoryService: object %s not found", id)
	}
	return "memory://" + id, nil
}

// Len reports how many objects are currently stored.
func (s *MemoryService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
