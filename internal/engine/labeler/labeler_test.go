package labeler

import (
	"context"
	"testing"
)

func TestGetUnknownKind(t *testing.T) {
	_, err := Get("no-such-kind")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRegisterAndGet(t *testing.T) {
	Register("test-kind", func(Config) (Labeler, error) { return Null{}, nil })
	ctor, err := Get("test-kind")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, err := ctor(Config{})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	defer l.Close()
}

func TestNullLabelsNothing(t *testing.T) {
	var l Labeler = Null{}
	spans, err := l.Label(context.Background(), "Apple opened an office in Berlin.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %d", len(spans))
	}
}

func TestNullRegistered(t *testing.T) {
	ctor, err := Get("null")
	if err != nil {
		t.Fatalf("null kind not registered: %v", err)
	}
	l, err := ctor(Config{})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
