package token

import (
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

// Event is a state-change notification. Events are emitted only after
// the state change has committed, in the order the sub-effects were
// applied (a reward mint precedes the transfer it rode on).
type Event interface {
	// Kind returns the event name ("transfer", "mint", ...).
	Kind() string
}

// TransferEvent records a balance move between two accounts.
type TransferEvent struct {
	From   types.Address
	To     types.Address
	Amount *uint256.Int
}

// Kind returns "transfer".
func (TransferEvent) Kind() string { return "transfer" }

// MintEvent records newly created supply credited to an account.
type MintEvent struct {
	To     types.Address
	Amount *uint256.Int
}

// Kind returns "mint".
func (MintEvent) Kind() string { return "mint" }

// BurnEvent records supply destroyed from a holder's balance.
type BurnEvent struct {
	From   types.Address
	Amount *uint256.Int
}

// Kind returns "burn".
func (BurnEvent) Kind() string { return "burn" }

// RewardRateChangedEvent records an owner update of the block reward rate.
type RewardRateChangedEvent struct {
	Old *uint256.Int
	New *uint256.Int
}

// Kind returns "reward_rate_changed".
func (RewardRateChangedEvent) Kind() string { return "reward_rate_changed" }

// DestroyedEvent records the terminal teardown of the token.
type DestroyedEvent struct {
	Owner types.Address
}

// Kind returns "destroyed".
func (DestroyedEvent) Kind() string { return "destroyed" }

// Emitter consumes events from the token service.
type Emitter interface {
	Emit(Event)
}

// Recorder collects events in order. Useful for tests and tooling.
type Recorder struct {
	Events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops all collected events.
func (r *Recorder) Reset() {
	r.Events = nil
}

// LogEmitter writes each event to a zerolog logger.
type LogEmitter struct {
	Log zerolog.Logger
}

// Emit logs the event with its fields.
func (l *LogEmitter) Emit(e Event) {
	ev := l.Log.Info().Str("event", e.Kind())
	switch e := e.(type) {
	case TransferEvent:
		ev = ev.Stringer("from", e.From).Stringer("to", e.To).Str("amount", e.Amount.Dec())
	case MintEvent:
		ev = ev.Stringer("to", e.To).Str("amount", e.Amount.Dec())
	case BurnEvent:
		ev = ev.Stringer("from", e.From).Str("amount", e.Amount.Dec())
	case RewardRateChangedEvent:
		ev = ev.Str("old", e.Old.Dec()).Str("new", e.New.Dec())
	case DestroyedEvent:
		ev = ev.Stringer("owner", e.Owner)
	}
	ev.Msg("token event")
}

// MultiEmitter fans an event out to several emitters in order.
type MultiEmitter []Emitter

// Emit forwards the event to each emitter.
func (m MultiEmitter) Emit(e Event) {
	for _, em := range m {
		em.Emit(e)
	}
}
