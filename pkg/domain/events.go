package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventStateDiscovered EventType = "state_discovered"
	EventStateExpanded   EventType = "state_expanded"
	EventPassComplete    EventType = "pass_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// DiscoveryEvent reports a state being assigned an id or expanded.
type DiscoveryEvent struct {
	EventBase
	ID    int    `json:"id"`
	State *State `json:"state"`
}

// PassEvent summarizes a completed reachability pass.
type PassEvent struct {
	EventBase
	SeedID     int           `json:"seed_id"`
	Discovered int           `json:"discovered"`
	Expanded   int           `json:"expanded"`
	Total      int           `json:"total"`
	Duration   time.Duration `json:"duration"`
}

// EnumerationHooks defines callbacks for enumerator observability.
type EnumerationHooks struct {
	OnStateDiscovered func(*DiscoveryEvent)
	OnStateExpanded   func(*DiscoveryEvent)
	OnPassComplete    func(*PassEvent)
}
