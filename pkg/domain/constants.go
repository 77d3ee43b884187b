package domain

// Names of the single object class and attribute carried by tabulated domains.
const (
	ClassState = "state"
	AttState   = "state"
)
