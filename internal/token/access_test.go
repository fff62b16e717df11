package token

import (
	"errors"
	"testing"
)

func TestAccessControl(t *testing.T) {
	ac := NewAccessControl(owner)

	if ac.Owner() != owner {
		t.Errorf("Owner() = %s, want %s", ac.Owner(), owner)
	}
	if err := ac.RequireOwner(owner); err != nil {
		t.Errorf("RequireOwner(owner) error: %v", err)
	}
	if err := ac.RequireOwner(stranger); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("RequireOwner(stranger) error = %v, want ErrUnauthorized", err)
	}
	if err := ac.RequireOwner(alice); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("RequireOwner(alice) error = %v, want ErrUnauthorized", err)
	}
}
