package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetGet(t *testing.T) {
	m := New[string, int]()

	m.Set("a", 1)
	m.Set("b", 2)

	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := m.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should return false")
	}
}

func TestOverwrite(t *testing.T) {
	m := New[string, string]()

	m.Set("k", "first")
	m.Set("k", "second")

	if v, _ := m.Get("k"); v != "second" {
		t.Errorf("Get(k) = %q, want %q", v, "second")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestDelete(t *testing.T) {
	m := New[string, int]()

	m.Set("k", 1)
	if !m.Delete("k") {
		t.Error("Delete(k) should return true for existing key")
	}
	if m.Delete("k") {
		t.Error("Delete(k) should return false for deleted key")
	}
	if _, ok := m.Get("k"); ok {
		t.Error("Get(k) should return false after delete")
	}
}

func TestLenAndKeys(t *testing.T) {
	m := New[string, int]()

	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	if m.Len() != 100 {
		t.Errorf("Len() = %d, want 100", m.Len())
	}
	if len(m.Keys()) != 100 {
		t.Errorf("len(Keys()) = %d, want 100", len(m.Keys()))
	}
}

func TestRangeStops(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 50; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	visited := 0
	m.Range(func(_ string, _ int) bool {
		visited++
		return visited < 10
	})

	if visited != 10 {
		t.Errorf("visited = %d, want 10", visited)
	}
}

func TestClear(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", m.Len())
	}
}

func TestInvalidShardCountFallsBack(t *testing.T) {
	for _, n := range []int{-1, 0, 3, 17} {
		m := NewWithShards[string, int](n)
		if len(m.shards) != DefaultShardCount {
			t.Errorf("NewWithShards(%d): shards = %d, want %d", n, len(m.shards), DefaultShardCount)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[string, int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				if v, ok := m.Get(key); !ok || v != i {
					t.Errorf("Get(%s) = %d, %v; want %d, true", key, v, ok, i)
				}
			}
		}(g)
	}
	wg.Wait()

	if m.Len() != 8*200 {
		t.Errorf("Len() = %d, want %d", m.Len(), 8*200)
	}
}
