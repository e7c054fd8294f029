package vars

import "fmt"

// VariableConflictError reports two declarations of the same name with
// incompatible metadata. Always fatal, surfaced at registry-build time.
type VariableConflictError struct {
	Name   string
	First  string // component that declared the name first
	Second string // component whose declaration conflicts
	Detail string
}

func (e *VariableConflictError) Error() string {
	return fmt.Sprintf("vars: conflicting declarations of %q by %s and %s: %s",
		e.Name, e.First, e.Second, e.Detail)
}

// CompositionMismatchError reports a namespace structure disagreement
// between a registry and caller-supplied overrides. Fatal at construction.
type CompositionMismatchError struct {
	Namespace string
	Detail    string
}

func (e *CompositionMismatchError) Error() string {
	return fmt.Sprintf("vars: composition mismatch at namespace %q: %s", e.Namespace, e.Detail)
}

// NoSuchVariableError reports a flat-name lookup miss. Indicates a bug in
// the calling component, never recovered.
type NoSuchVariableError struct {
	Name string
}

func (e *NoSuchVariableError) Error() string {
	return fmt.Sprintf("vars: no variable named %q", e.Name)
}
