package session

import (
	"fmt"
	"testing"
)

func TestCacheSelectionLifecycle(t *testing.T) {
	var c Cache

	if _, _, ok := c.Selection(); ok {
		t.Fatal("expected empty cache")
	}

	c.SetSelection(5, "some text")
	id, text, ok := c.Selection()
	if !ok || id != 5 || text != "some text" {
		t.Fatalf("unexpected selection: id=%d text=%q ok=%v", id, text, ok)
	}

	c.SetSelection(9, "replacement")
	id, text, _ = c.Selection()
	if id != 9 || text != "replacement" {
		t.Fatalf("expected replaced selection, got id=%d text=%q", id, text)
	}

	c.Clear()
	if _, _, ok := c.Selection(); ok {
		t.Fatal("expected cleared cache")
	}
}

func TestManagerCreateGetDelete(t *testing.T) {
	m, err := NewManager(8)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	s := m.Create(1, "Alice")
	if s.ID == "" {
		t.Fatal("expected session id")
	}

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatal("expected to get back the same session")
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
	if _, ok := m.Get(""); ok {
		t.Fatal("expected miss for empty id")
	}

	s.Cache.SetSelection(3, "text")
	m.Delete(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("expected session gone after delete")
	}
	if _, _, ok := s.Cache.Selection(); ok {
		t.Fatal("expected cache cleared on delete")
	}
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m, err := NewManager(8)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	a := m.Create(1, "Alice")
	b := m.Create(2, "Bob")
	a.Cache.SetSelection(10, "alice's book")

	if _, _, ok := b.Cache.Selection(); ok {
		t.Fatal("expected b's cache untouched")
	}
}

func TestManagerEvictsOldestSession(t *testing.T) {
	m, err := NewManager(2)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	first := m.Create(1, "first")
	for i := 2; i <= 3; i++ {
		m.Create(int64(i), fmt.Sprintf("user%d", i))
	}

	if m.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", m.Len())
	}
	if _, ok := m.Get(first.ID); ok {
		t.Fatal("expected oldest session evicted")
	}
}
