package memory

import (
	"testing"

	"reliance-drill-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := app.NewQuizSession("s-1", nil, nil, app.SessionOptions{})
	store.Put(session)
	got, ok := store.Get("s-1")
	if !ok || got != session {
		t.Fatalf("expected session present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", store.Len())
	}

	store.Delete("s-1")
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session removed")
	}
	store.Delete("s-1")
}
