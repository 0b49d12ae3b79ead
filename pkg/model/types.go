package model

// HashValue is a SHA-256 hash stored as hex string.
type HashValue string

// StoreBackend identifies the persistence backend in use.
type StoreBackend string

const (
	BackendFile   StoreBackend = "file"
	BackendBadger StoreBackend = "badger"
	BackendMemory StoreBackend = "memory"
)

// AnonymousAuthor is the display name used when a revision carries no author.
const AnonymousAuthor = "anonymous"

// DisplayAuthor maps an empty author to the anonymous display name.
func DisplayAuthor(author string) string {
	if author == "" {
		return AnonymousAuthor
	}
	return author
}
