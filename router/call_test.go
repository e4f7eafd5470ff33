package router

import "testing"

func TestCallRegistryPairIsUnordered(t *testing.T) {
	calls := NewCallRegistry()

	if !calls.Begin(1, 2, CallInitiated) {
		t.Fatal("First attempt must be accepted")
	}
	if !calls.Active(2, 1) {
		t.Error("Attempt must be visible under the reversed pair")
	}
}

func TestCallRegistryRejectsSecondAttempt(t *testing.T) {
	calls := NewCallRegistry()

	calls.Begin(1, 2, CallInitiated)

	if calls.Begin(2, 1, CallInitiated) {
		t.Error("Callee starting a second call on the same pair must be refused")
	}
	if calls.Begin(2, 1, CallOffered) {
		t.Error("Callee offering on a busy pair must be refused")
	}
}

func TestCallRegistryCallerMayAdvanceOwnAttempt(t *testing.T) {
	calls := NewCallRegistry()

	calls.Begin(1, 2, CallInitiated)

	if !calls.Begin(1, 2, CallOffered) {
		t.Fatal("startCall followed by offer from the same caller must pass")
	}
	if phase := calls.Phase(1, 2); phase != CallOffered {
		t.Errorf("Expected phase %q, got %q", CallOffered, phase)
	}
}

func TestCallRegistryAdvance(t *testing.T) {
	calls := NewCallRegistry()

	// Candidates for an unknown pair are forwarded but tracked nowhere.
	calls.Advance(1, 2, CallIceExchanging)
	if calls.Active(1, 2) {
		t.Error("Advance must not create attempts")
	}

	calls.Begin(1, 2, CallOffered)
	calls.Advance(2, 1, CallAnswered)
	if phase := calls.Phase(1, 2); phase != CallAnswered {
		t.Errorf("Expected phase %q, got %q", CallAnswered, phase)
	}
}

func TestCallRegistryEndFreesPair(t *testing.T) {
	calls := NewCallRegistry()

	calls.Begin(1, 2, CallOffered)
	calls.End(2, 1)

	if calls.Active(1, 2) {
		t.Error("Ended attempt must be cleared")
	}
	if !calls.Begin(2, 1, CallInitiated) {
		t.Error("Pair must be free for a new attempt after end")
	}
}

func TestCallRegistryDropUser(t *testing.T) {
	calls := NewCallRegistry()

	calls.Begin(1, 2, CallOffered)
	calls.Begin(1, 3, CallInitiated)
	calls.Begin(4, 5, CallOffered)

	calls.DropUser(1)

	if calls.Active(1, 2) || calls.Active(1, 3) {
		t.Error("Disconnecting user must clear their attempts")
	}
	if !calls.Active(4, 5) {
		t.Error("Unrelated attempts must survive")
	}
}

func TestCallRegistryEndUnknownPair(t *testing.T) {
	calls := NewCallRegistry()

	// Must not panic or invent state.
	calls.End(7, 8)
	if calls.Active(7, 8) {
		t.Error("Unknown pair must stay inactive")
	}
}
