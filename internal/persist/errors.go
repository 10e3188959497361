package persist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/zenith/internal/state"
)

// ErrBlobNotFound is returned by BlobStore.Get when the key has never been
// written.
var ErrBlobNotFound = errors.New("blob not found")

// ImportErrorKind says which stage of an import failed.
type ImportErrorKind string

const (
	// ImportRead means the source could not be read.
	ImportRead ImportErrorKind = "READ"

	// ImportParse means the bytes are not a JSON AppData document.
	ImportParse ImportErrorKind = "PARSE"

	// ImportSchema means the document failed schema validation (strict mode).
	ImportSchema ImportErrorKind = "SCHEMA"

	// ImportIntegrity means the document has broken references (strict mode).
	ImportIntegrity ImportErrorKind = "INTEGRITY"
)

// ImportError reports a rejected import. The store is unchanged whenever an
// ImportError is returned.
type ImportError struct {
	Kind ImportErrorKind

	// Source names the file or stream, when known.
	Source string

	// Err is the underlying cause.
	Err error

	// Violations lists every integrity problem for ImportIntegrity.
	Violations []state.Violation
}

func (e *ImportError) Error() string {
	var b strings.Builder
	b.WriteString("import")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError reports whether err is an *ImportError of the given kind.
func IsImportError(err error, kind ImportErrorKind) bool {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Kind == kind
	}
	return false
}
