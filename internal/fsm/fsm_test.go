package fsm

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatal("expected pending -> confirmed to be allowed")
	}
	if !CanTransition(StatusPending, StatusCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if !CanTransition(StatusConfirmed, StatusInProgress) {
		t.Fatal("expected confirmed -> in_progress to be allowed")
	}
	if !CanTransition(StatusConfirmed, StatusCancelled) {
		t.Fatal("expected confirmed -> cancelled to be allowed")
	}
	if !CanTransition(StatusInProgress, StatusCompleted) {
		t.Fatal("expected in_progress -> completed to be allowed")
	}
}

func TestConfirmedOnlyFromPending(t *testing.T) {
	for _, from := range []string{StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		if CanTransition(from, StatusConfirmed) {
			t.Fatalf("unexpected %s -> confirmed allowed", from)
		}
	}
}

func TestCompletedOnlyFromInProgress(t *testing.T) {
	for _, from := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if CanTransition(from, StatusCompleted) {
			t.Fatalf("unexpected %s -> completed allowed", from)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{StatusCompleted, StatusCancelled} {
		if !IsTerminal(terminal) {
			t.Fatalf("expected %s to be terminal", terminal)
		}
		for _, to := range []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
			if CanTransition(terminal, to) {
				t.Fatalf("unexpected %s -> %s allowed", terminal, to)
			}
		}
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	if CanTransition("archived", StatusCancelled) {
		t.Fatal("unexpected transition from unknown status")
	}
	if CanTransition(StatusPending, StatusPending) {
		t.Fatal("self transition must be rejected")
	}
}
