package mpqs

// EventKind distinguishes the observer-callback events an Orchestrator
// reports (spec.md §9: "structured debug tracing demoted to an
// implementation-internal observer callback"). A nil Trace means no
// tracing; Trace is never consulted for control flow, only informed.
type EventKind int

const (
	// EventBlock fires after one sieve block (one polynomial) has been
	// harvested into the relation store.
	EventBlock EventKind = iota
	// EventWiden fires when the orchestrator widens B and m after
	// exhausting every (a, {b}) family under the current configuration.
	EventWiden
	// EventEmit fires each time a (x, y) pair is handed to the caller.
	EventEmit
)

// Event is the payload delivered to a Trace hook.
type Event struct {
	Kind      EventKind
	Relations int // RelationStore.Len() at the time of the event
}

// Trace is the caller-supplied observer callback. It must not affect
// the orchestrator's output; it exists purely for diagnostics.
type Trace func(Event)
