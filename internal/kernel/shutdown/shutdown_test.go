package shutdown

import (
	"errors"
	"testing"
)

func TestFirstCaptureWins(t *testing.T) {
	c := New()
	if !c.Capture(Intent{Code: 7}) {
		t.Fatal("expected first capture to win")
	}
	if c.Capture(Intent{Code: 99}) {
		t.Fatal("expected second capture to lose")
	}
	intent, ok := c.Intent()
	if !ok || intent.Code != 7 {
		t.Fatalf("expected captured intent code 7, got %+v (ok=%v)", intent, ok)
	}
}

func TestResolveFallsBackToCause(t *testing.T) {
	c := New()
	cause := errors.New("boom")
	intent := c.Resolve(cause)
	if intent.Code != 1 || intent.Cause != cause {
		t.Fatalf("expected fallback intent wrapping cause, got %+v", intent)
	}
}

func TestResolveGenericExitWhenNothingCaptured(t *testing.T) {
	c := New()
	intent := c.Resolve(nil)
	if intent.Code != 1 || intent.Cause != nil {
		t.Fatalf("expected generic exit, got %+v", intent)
	}
}

func TestResolvePrefersCapturedIntent(t *testing.T) {
	c := New()
	c.Capture(Intent{Code: 3})
	intent := c.Resolve(errors.New("ignored"))
	if intent.Code != 3 {
		t.Fatalf("expected captured intent to take priority, got %+v", intent)
	}
}
