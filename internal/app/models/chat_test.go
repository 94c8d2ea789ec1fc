package models

import "testing"

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		low, high string
	}{
		{"already ordered", "aaa", "bbb", "aaa", "bbb"},
		{"reversed", "bbb", "aaa", "aaa", "bbb"},
		{"equal", "aaa", "aaa", "aaa", "aaa"},
		{"uuid-like", "f0000000", "0f000000", "0f000000", "f0000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := CanonicalPair(tt.a, tt.b)
			if low != tt.low || high != tt.high {
				t.Errorf("CanonicalPair(%q, %q) = (%q, %q), want (%q, %q)", tt.a, tt.b, low, high, tt.low, tt.high)
			}

			// Order independence is the whole point.
			low2, high2 := CanonicalPair(tt.b, tt.a)
			if low2 != low || high2 != high {
				t.Errorf("CanonicalPair is order-dependent for (%q, %q)", tt.a, tt.b)
			}
		})
	}
}

func TestThreadParticipants(t *testing.T) {
	thread := &ChatThread{ParticipantLow: "alice", ParticipantHigh: "bob"}

	if !thread.HasParticipant("alice") || !thread.HasParticipant("bob") {
		t.Error("both members must be participants")
	}
	if thread.HasParticipant("mallory") {
		t.Error("outsider must not be a participant")
	}

	if got := thread.OtherParticipant("alice"); got != "bob" {
		t.Errorf("OtherParticipant(alice) = %q, want bob", got)
	}
	if got := thread.OtherParticipant("bob"); got != "alice" {
		t.Errorf("OtherParticipant(bob) = %q, want alice", got)
	}
	if got := thread.OtherParticipant("mallory"); got != "" {
		t.Errorf("OtherParticipant(outsider) = %q, want empty", got)
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("role %q should be valid", role)
		}
	}
	if Role("admin").Valid() {
		t.Error("unknown role should be invalid")
	}
	if RoleUnknown.Valid() {
		t.Error("the unknown sentinel is not a registrable role")
	}
}
