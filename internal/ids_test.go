package internal

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := NewID("sess_")

	if !strings.HasPrefix(id, "sess_") {
		t.Fatalf("missing prefix: %q", id)
	}
	if got := len(id) - len("sess_"); got != 21 {
		t.Fatalf("random part length = %d, want 21", got)
	}
}

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID("user_")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}
