package domain

// RecentsStore holds the bounded, most-recent-first list of past queries.
// Every mutation is persisted before it becomes visible in memory.
type RecentsStore interface {
	// Load re-reads the persisted sequence, empty on first run
	Load() ([]string, error)

	// List returns a copy of the in-memory sequence
	List() []string

	// Add inserts value at the front unless it is already present
	Add(value string) error

	// RemoveAt drops the entries at the given positions of the current sequence
	RemoveAt(indices ...int) error

	// Clear drops every entry
	Clear() error

	Close() error
}

// ByteCache maps an opaque key to a byte blob held in memory.
// A Get may miss for a key that was just Put.
type ByteCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}
