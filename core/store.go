package core

// Collection names persisted by the Store.
const (
	SchoolsCollection       = "schools"
	UsersCollection         = "users"
	AttendanceCollection    = "attendance"
	FeesCollection          = "fees"
	LeavesCollection        = "leaves"
	NotificationsCollection = "notifications"
)

// Collections lists every named collection, in creation order.
var Collections = []string{
	SchoolsCollection,
	UsersCollection,
	AttendanceCollection,
	FeesCollection,
	LeavesCollection,
	NotificationsCollection,
}

// Store is a durable-enough key-value surface holding named collections as
// serialized arrays. Reads and writes always move a whole collection; there
// is no indexed access and the last writer wins.
type Store interface {
	// Read returns the serialized contents of a collection, or nil if the
	// collection has never been written.
	Read(collection string) ([]byte, error)

	// Write replaces the entire contents of a collection.
	Write(collection string, data []byte) error

	// Initialize creates all collections empty if the store has never been
	// initialized (keyed off the schools collection). It is idempotent and
	// must run once before any other operation.
	Initialize() error

	Close() error
}
