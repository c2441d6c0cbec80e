package storage

// Repository is the key-value system of record for in-progress drafts
// plus the archive of submitted operations. Implementations can back
// it with anything that stores bytes under a key; the draft logic
// never sees the backend.
type Repository interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// SaveOperation archives a submitted operation for reporting.
	SaveOperation(record *OperationRecord) error

	// ListOperations returns a user's archived operations, newest first.
	ListOperations(userID string) ([]OperationRecord, error)

	Close() error
}
