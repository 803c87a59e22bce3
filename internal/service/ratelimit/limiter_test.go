package ratelimit

import "testing"

func TestAllowConsumesBurst(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("client", 3, 0) {
		t.Error("request past the burst should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatal("first request for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Error("second request for a should be rejected")
	}
	if !l.Allow("b", 1, 0) {
		t.Error("b must not be affected by a's bucket")
	}
}
