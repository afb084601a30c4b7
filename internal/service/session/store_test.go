package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
	"github.com/wellchemy/wellchemy/backend/internal/service/session"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	if _, ok := store.Get(ctx, "dietary/u1"); ok {
		t.Fatal("expected miss for unknown key")
	}

	state := assessment.NewSessionState("u1", "dietary")
	store.Put(ctx, "dietary/u1", state)

	got, ok := store.Get(ctx, "dietary/u1")
	if !ok {
		t.Fatal("expected state after Put")
	}
	if got.SessionID != "u1" || got.Stage != assessment.StageInitial {
		t.Fatalf("unexpected state: %+v", got)
	}

	store.Delete(ctx, "dietary/u1")
	if _, ok := store.Get(ctx, "dietary/u1"); ok {
		t.Fatal("expected miss after Delete")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}

	// Deleting again must not panic.
	store.Delete(ctx, "dietary/u1")
}

func TestKeyedLockSerializesSameKey(t *testing.T) {
	locks := session.NewKeyedLock()

	var mu sync.Mutex
	counter := 0
	maxSeen := 0

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire("same")
			defer release()

			mu.Lock()
			counter++
			if counter > maxSeen {
				maxSeen = counter
			}
			mu.Unlock()

			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen)
	}
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	locks := session.NewKeyedLock()

	releaseA := locks.Acquire("a")
	done := make(chan struct{})
	go func() {
		releaseB := locks.Acquire("b")
		releaseB()
		close(done)
	}()

	<-done // must not deadlock while "a" is held
	releaseA()
}
