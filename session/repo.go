package session

// Store is key-value persistence for the serialized session, owned
// exclusively by the Manager. Nothing else reads or writes it.
type Store interface {
	// Load returns the stored session, or (nil, nil) when none is
	// stored. Malformed or partially written data is equivalent to
	// "not found", never an error: startup must reach a deterministic
	// state no matter what is on disk.
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}
