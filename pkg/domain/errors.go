package domain

import "errors"

// ErrNotEnumerated is returned when a state was never discovered by a reachability pass.
var ErrNotEnumerated = errors.New("state not enumerated")

// ErrOutOfRange is returned when an enumeration id falls outside [0, N).
var ErrOutOfRange = errors.New("enumeration id out of range")

// ErrUnsupportedDomain is returned when a domain with parameterized actions is tabulated.
var ErrUnsupportedDomain = errors.New("unsupported domain")

// ErrNotApplicable is returned when an action is performed in a state where its preconditions fail.
var ErrNotApplicable = errors.New("action not applicable")

// ErrSnapshotNotFound is returned when a snapshot name cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSnapshotMismatch is returned when a snapshot cannot be restored against a domain and hasher.
var ErrSnapshotMismatch = errors.New("snapshot does not match domain")
