package inkwell

import (
	"testing"
	"time"
)

func TestRenderLimiterAllowsUpToMax(t *testing.T) {
	l := newRenderLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
}

func TestRenderLimiterPerIP(t *testing.T) {
	l := newRenderLimiter(1, time.Minute)
	if !l.Allow("1.1.1.1") {
		t.Fatal("first IP should be allowed")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("a different IP should have its own window")
	}
}

func TestRenderLimiterWindowExpiry(t *testing.T) {
	l := newRenderLimiter(1, 20*time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("second request inside the window should be denied")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Error("request after the window should be allowed again")
	}
}
