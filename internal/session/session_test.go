package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionKey_IsScopedPerOwnerAndConversation(t *testing.T) {
	t.Parallel()

	ownerA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ownerB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	if got := sessionKey(ownerA, "chat-1"); got != "session:11111111-1111-1111-1111-111111111111:chat-1" {
		t.Errorf("sessionKey() = %s", got)
	}
	if sessionKey(ownerA, "chat-1") == sessionKey(ownerB, "chat-1") {
		t.Error("different owners share a session key")
	}
	if sessionKey(ownerA, "chat-1") == sessionKey(ownerA, "chat-2") {
		t.Error("different conversations share a session key")
	}
}

func TestNewStore_TTLFallback(t *testing.T) {
	t.Parallel()

	if s := NewStore(nil, 0); s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want DefaultTTL", s.ttl)
	}
	if s := NewStore(nil, time.Hour); s.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", s.ttl)
	}
}
