package attr

import "testing"

func test_set() *Set {
	s := New()
	s.Set("view:1", "a")
	s.Set("view:0", "b")
	s.Set("name", "edlib")
	s.Set("view:2", "c")
	return s
}

func TestGetSetReplace(t *testing.T) {
	s := test_set()

	if v, ok := s.Get("name"); !ok || v != "edlib" {
		t.Fatalf("Get(name) = %q, %v; want edlib, true", v, ok)
	}

	s.Set("name", "edlib2")
	if v, _ := s.Get("name"); v != "edlib2" {
		t.Fatalf("Get(name) after replace = %q; want edlib2", v)
	}

	if _, ok := s.Get("missing"); ok {
		t.Fatalf("Get(missing) ok = true, want false")
	}
}

func TestDelete(t *testing.T) {
	s := test_set()
	s.Delete("view:1")
	if _, ok := s.Get("view:1"); ok {
		t.Fatalf("view:1 still present after Delete")
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestFindNextWithPrefix(t *testing.T) {
	s := test_set()

	k, v, ok := s.FindNextWithPrefix("view:", "")
	if !ok || k != "view:0" || v != "b" {
		t.Fatalf("first view:* = %q,%q,%v; want view:0,b,true", k, v, ok)
	}

	k, _, ok = s.FindNextWithPrefix("view:", k)
	if !ok || k != "view:1" {
		t.Fatalf("second view:* = %q,%v; want view:1,true", k, ok)
	}

	k, _, ok = s.FindNextWithPrefix("view:", k)
	if !ok || k != "view:2" {
		t.Fatalf("third view:* = %q,%v; want view:2,true", k, ok)
	}

	_, _, ok = s.FindNextWithPrefix("view:", k)
	if ok {
		t.Fatalf("fourth view:* found, want none")
	}

	_, _, ok = s.FindNextWithPrefix("doc:", "")
	if ok {
		t.Fatalf("doc:* found in a set with no such keys")
	}
}

func TestIterateOrder(t *testing.T) {
	s := test_set()
	var keys []string
	s.Iterate(func(k, v string) bool {
		keys = append(keys, k)
		return true
	})
	want := []string{"name", "view:0", "view:1", "view:2"}
	if len(keys) != len(want) {
		t.Fatalf("Iterate produced %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Iterate order = %v, want %v", keys, want)
		}
	}
}

func TestIterateStopsEarly(t *testing.T) {
	s := test_set()
	count := 0
	s.Iterate(func(k, v string) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("Iterate visited %d entries, want 2", count)
	}
}

func TestClear(t *testing.T) {
	s := test_set()
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", s.Len())
	}
}

func TestNilSetIsReadSafe(t *testing.T) {
	var s *Set
	if _, ok := s.Get("x"); ok {
		t.Fatalf("nil Set.Get ok = true")
	}
	if s.Len() != 0 {
		t.Fatalf("nil Set.Len() != 0")
	}
}
