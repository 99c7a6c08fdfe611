package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations. Use errors.Is() to check for
// these through the error chain. Malformed property queries additionally
// surface as *property.SyntaxError via errors.As().
var (
	// ErrNotFound indicates no loaded provider offers a matching
	// implementation. This is a normal, recoverable outcome: callers may
	// load another provider or relax the property query and fetch again.
	ErrNotFound = errors.New("no matching implementation")

	// ErrLoad indicates a provider failed to load: module not found,
	// missing init entry point, or the init entry point returned failure.
	// Fatal to the single load call only; already-loaded providers are
	// unaffected.
	ErrLoad = errors.New("provider load failed")

	// ErrIncompleteDispatch indicates a matched record is missing a
	// mandatory dispatch function for the requested operation. Distinct
	// from ErrNotFound: something offers the algorithm but is broken.
	ErrIncompleteDispatch = errors.New("incomplete dispatch table")

	// ErrInUse indicates an unloaded provider still has outstanding
	// method handles. The provider is unavailable for new fetches; its
	// resources are released when the last handle drops.
	ErrInUse = errors.New("provider still referenced")

	// ErrClosed indicates the library context has been torn down.
	ErrClosed = errors.New("library context closed")

	// ErrNoIdentifier indicates a fetch was attempted without an
	// algorithm identifier. Implicit resolution policy belongs to the
	// calling API layer; the fetch engine never guesses a name.
	ErrNoIdentifier = errors.New("missing algorithm identifier")
)

// FetchError carries the context of a failed fetch: the operation, the
// requested identifier and the effective property query. It supports
// errors.Is() and errors.As() through Unwrap.
type FetchError struct {
	Op    Operation
	Name  string
	Query string
	Err   error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("fetch %s %q (properties %q): %v", e.Op, e.Name, e.Query, e.Err)
	}
	return fmt.Sprintf("fetch %s %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }
