package storage

import "sync"

// MemoryRepository keeps everything in process memory. Used by tests
// and as the throwaway backend for local development.
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
	ops    []OperationRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		drafts: make(map[string][]byte),
	}
}

func (r *MemoryRepository) Get(key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.drafts[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (r *MemoryRepository) Set(key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	r.drafts[key] = stored
	return nil
}

func (r *MemoryRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, key)
	return nil
}

func (r *MemoryRepository) SaveOperation(record *OperationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = append(r.ops, *record)
	return nil
}

func (r *MemoryRepository) ListOperations(userID string) ([]OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []OperationRecord
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i].UserID == userID {
			records = append(records, r.ops[i])
		}
	}
	return records, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
