package sportslink

import "github.com/mosfeq/sportslink/pkg/errors"

// StateKind is the lifecycle position of a logical list.
type StateKind int

// List states. Every list starts Uninitialized, becomes Ready on its
// first successful fetch, is fully replaced on every later fetch, and
// drops to Failed on a subscription error. A later successful delivery
// moves a Failed list back to Ready; the store's watch stream owns
// reconnection, so there is no retry logic here.
const (
	Uninitialized StateKind = iota
	Ready
	Failed
)

// String returns a short name for the state kind.
func (k StateKind) String() string {
	switch k {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// State is the observable condition of a logical list: loading, a
// last-known-good snapshot, or a failure with its reason.
type State struct {
	Kind StateKind
	Err  error
}

// ready is the Ready state.
var ready = State{Kind: Ready}

// failed builds a Failed state carrying the reason.
func failed(err error) State {
	return State{Kind: Failed, Err: err}
}

// Ready reports whether the list holds a last-known-good snapshot.
func (s State) Ready() bool {
	return s.Kind == Ready
}

// Error returns the failure reason for a Failed list, ErrNotReady for an
// Uninitialized one, and nil otherwise.
func (s State) Error() error {
	switch s.Kind {
	case Failed:
		return s.Err
	case Uninitialized:
		return errors.ErrNotReady
	default:
		return nil
	}
}

// worseState combines the states of two lists a derived list depends on:
// a failure anywhere dominates, then loading, then ready.
func worseState(a, b State) State {
	if a.Kind == Failed {
		return a
	}
	if b.Kind == Failed {
		return b
	}
	if a.Kind == Uninitialized {
		return a
	}
	return b
}
