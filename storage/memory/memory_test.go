package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/storage"
)

func TestStoreBasics(t *testing.T) {
	ctx := context.Background()
	s := New[any]()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	at := time.Now()
	if err := s.AddOrUpdate(ctx, entry.New[any]("k", 1, at)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddOrUpdate(ctx, entry.New[any]("k", 2, at)); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || got.Value != 2 {
		t.Fatalf("last write should win: got=%v err=%v", got.Value, err)
	}
	if ok, _ := s.Contains(ctx, "k"); !ok {
		t.Fatalf("Contains should be true")
	}
	if n := s.Len(); n != 1 {
		t.Fatalf("Len=%d want 1", n)
	}
}

func TestRemoveReportsPresenceOnce(t *testing.T) {
	ctx := context.Background()
	s := New[[]byte]()
	_ = s.AddOrUpdate(ctx, entry.New("k", []byte("v"), time.Now()))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Remove(ctx, "k"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("exactly one Remove should observe the value, got %d", wins.Load())
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New[any]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := strconv.Itoa(i % 10)
				_ = s.AddOrUpdate(ctx, entry.New[any](k, g, time.Now()))
				if ok, _ := s.Contains(ctx, k); ok {
					_, _ = s.Get(ctx, k)
				}
				if i%17 == 0 {
					_, _ = s.Remove(ctx, k)
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestCloseClears(t *testing.T) {
	ctx := context.Background()
	s := New[any]()
	_ = s.AddOrUpdate(ctx, entry.New[any]("k", 1, time.Now()))
	_ = s.Close(ctx)
	if s.Len() != 0 {
		t.Fatalf("Close should clear the map")
	}
}
