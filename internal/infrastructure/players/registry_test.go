package players

import (
	"context"
	"errors"
	"testing"

	"github.com/automationmc/vaultcc/internal/core/ports"
)

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	t.Run("stable identity", func(t *testing.T) {
		first, err := r.Resolve(ctx, "SirTZN")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if first.Name != "SirTZN" {
			t.Errorf("expected name to be preserved, got %q", first.Name)
		}

		second, err := r.Resolve(ctx, "SirTZN")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("same name must resolve to same ID: %s != %s", first.ID, second.ID)
		}
	})

	t.Run("distinct names get distinct ids", func(t *testing.T) {
		alice, _ := r.Resolve(ctx, "Alice")
		bob, _ := r.Resolve(ctx, "Bob")
		if alice.ID == bob.ID {
			t.Error("different names must resolve to different IDs")
		}
	})

	t.Run("deterministic across registries", func(t *testing.T) {
		other := NewRegistry()
		a, _ := r.Resolve(ctx, "Alice")
		b, _ := other.Resolve(ctx, "Alice")
		if a.ID != b.ID {
			t.Error("identity derivation must not depend on registry state")
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := r.Resolve(ctx, "   "); !errors.Is(err, ports.ErrInvalidPlayerName) {
			t.Errorf("expected ErrInvalidPlayerName, got %v", err)
		}
	})
}
