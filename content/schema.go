package content

// Schema is an implementation agnostic document parser interface.
//
// The goal is to be able to maintain different document schemas.
type Schema interface {
	// Name returns the name of the particular document schema.
	Name() string

	// Version returns the version number of the particular document schema.
	Version() int32

	// Parse tries to transform raw bytes into the particular document schema.
	//
	// Parse validates + normalizes raw JSON.
	// Returns canonical JSON.
	Parse(raw []byte) ([]byte, error)
}
