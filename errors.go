package kaplay

import "fmt"

// StaleReferenceError reports an operation on a destroyed game object. It is
// thrown (panicked) because it indicates a composition bug that should
// surface immediately during development.
type StaleReferenceError struct {
	ID uint64
	Op string
}

func (e StaleReferenceError) Error() string {
	return fmt.Sprintf("kaplay: %s on destroyed game object %d", e.Op, e.ID)
}

// MissingDependencyError reports attaching a component whose required
// component ids are not present on the object.
type MissingDependencyError struct {
	Comp    string
	Missing string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("kaplay: component %q requires %q which is not attached", e.Comp, e.Missing)
}

// InvalidQueryError reports malformed query options, e.g. an unknown operator
// or a hierarchy filter that cannot be satisfied from the reference object.
type InvalidQueryError struct {
	Reason string
}

func (e InvalidQueryError) Error() string {
	return "kaplay: invalid query: " + e.Reason
}
