package diagram

import "errors"

// Sentinel failures returned by diagram operations. The command surface
// translates these to user-visible messages; the core never panics across
// a package boundary.
var (
	// ErrNotFound reports an unknown type, instance, wire, or connector id.
	ErrNotFound = errors.New("not found")

	// ErrIncompatibleConnectors reports a connect request between two
	// connector kinds with no matching cable-type rule.
	ErrIncompatibleConnectors = errors.New("incompatible connectors")

	// ErrSelfConnection reports a connect request whose endpoints belong
	// to the same component instance.
	ErrSelfConnection = errors.New("self connection")

	// ErrInvalidProjectData reports a malformed persisted project.
	ErrInvalidProjectData = errors.New("invalid project data")
)
