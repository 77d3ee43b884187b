package domain

import "time"

// Snapshot is the persisted form of an enumeration table.
// The id of States[i] is i.
type Snapshot struct {
	Domain    string    `json:"domain" yaml:"domain"`
	Hasher    string    `json:"hasher" yaml:"hasher"`
	States    []*State  `json:"states" yaml:"states"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Unexpanded lists the ids an interrupted pass left unexpanded.
	Unexpanded []int `json:"unexpanded,omitempty" yaml:"unexpanded,omitempty"`

	// Sealed holds the encrypted States when a store encrypts tables at rest.
	// States is empty whenever Sealed is set.
	Sealed []byte `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}
