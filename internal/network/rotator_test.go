package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	rotator, err := NewRotator([]string{"http://a:8080", "http://b:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}

	first, err := rotator.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	second, err := rotator.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.String() == second.String() {
		t.Fatalf("expected rotation, got %s twice", first)
	}
}

func TestRotatorBansBlockedProxy(t *testing.T) {
	rotator, err := NewRotator([]string{"http://a:8080", "http://b:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}

	banned, err := rotator.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	rotator.Report(banned, 429)

	for i := 0; i < 4; i++ {
		proxy, err := rotator.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if proxy.String() == banned.String() {
			t.Fatalf("banned proxy %s was handed out", banned)
		}
	}
}

func TestRotatorIgnoresOKStatus(t *testing.T) {
	rotator, err := NewRotator([]string{"http://a:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}

	proxy, err := rotator.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	rotator.Report(proxy, 200)

	if _, err := rotator.Next(); err != nil {
		t.Fatalf("Next() after 200 error = %v", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	rotator, err := NewRotator(nil, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}
}
