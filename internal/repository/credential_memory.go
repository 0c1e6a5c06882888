package repository

import (
	"context"
	"sync"
)

// MemoryCredentialRepository keeps the slot for the life of the process.
type MemoryCredentialRepository struct {
	mu         sync.Mutex
	credential string
	found      bool
}

// NewMemoryCredentialRepository returns an empty in-memory slot.
func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{}
}

func (r *MemoryCredentialRepository) Save(_ context.Context, credential string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential, r.found = credential, true
	return nil
}

func (r *MemoryCredentialRepository) Load(_ context.Context) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.credential, r.found, nil
}

func (r *MemoryCredentialRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential, r.found = "", false
	return nil
}
