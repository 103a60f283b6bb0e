package repositories

import "sync"

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	records map[string][]byte
	mu      sync.RWMutex

	// FailPuts makes every Put return FailErr, for exercising the
	// persistence-failure path without a real storage fault.
	FailPuts bool
	FailErr  error
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		records: make(map[string][]byte),
	}
}

// Get returns the stored payload, or (nil, nil) when absent.
func (r *MockCartRepository) Get(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, nil
}

// Put stores a payload under the key.
func (r *MockCartRepository) Put(key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailPuts {
		return r.FailErr
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	r.records[key] = copied
	return nil
}

// Delete removes the key, absent keys included.
func (r *MockCartRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)
	return nil
}

// Seed places a raw payload directly into storage, bypassing Put failures.
// Tests use it to plant malformed payloads.
func (r *MockCartRepository) Seed(key string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = payload
}
