package storage

// KeyValue is the schema-less medium the tracker persists into: string keys,
// string values, no transactions. Implementations are not safe for concurrent
// use; a single process owning the backing file is assumed.
type KeyValue interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error

	// Path returns the backing file path.
	Path() string
}
