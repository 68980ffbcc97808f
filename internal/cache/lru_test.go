package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)

	c.Set("a", "1")
	if got, ok := c.Get("a"); !ok || got != "1" {
		t.Fatalf("Get(a) = %q, %v, want 1, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("missing key must not be found")
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	if c.Size() != 3 {
		t.Fatalf("size = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Fatal("newest entry should still be present")
	}
}

func TestLRUCacheRecentUseProtectsFromEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry should have been evicted")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("CleanExpired removed %d, want 2", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d after cleanup, want 0", c.Size())
	}
}

func TestLRUCacheDeleteWhere(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("alice|checking|2024-03-01|2024-03-31", 1)
	c.Set("alice||2024-03-01|2024-03-31", 2)
	c.Set("bob|checking|2024-03-01|2024-03-31", 3)

	removed := c.DeleteWhere(func(key string) bool {
		return len(key) > 6 && key[:6] == "alice|"
	})
	if removed != 2 {
		t.Fatalf("DeleteWhere removed %d, want 2", removed)
	}
	if _, ok := c.Get("bob|checking|2024-03-01|2024-03-31"); !ok {
		t.Fatal("unrelated owner's entry must survive")
	}
}
