package token

// State is the token lifecycle state. The only transitions are
// Uninitialized -> Active (Initialize) and Active -> Destroyed
// (Destroy). There is no way out of Destroyed.
type State uint8

// Lifecycle states.
const (
	Uninitialized State = iota
	Active
	Destroyed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
