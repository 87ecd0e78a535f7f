package store

import (
	"context"
	"errors"
	"testing"
)

// roundTrip exercises the Store contract shared by every backend.
func roundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("load = %q, %v, want v1", got, err)
	}

	// Overwrite.
	if err := s.Save(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := s.Load(ctx, "k"); string(got) != "v2" {
		t.Errorf("load after overwrite = %q, want v2", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
}

func TestMemory(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestMemoryCopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	data := []byte("abc")
	m.Save(ctx, "k", data)
	data[0] = 'z'

	got, _ := m.Load(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value should be isolated from the caller's slice, got %q", got)
	}
}

func TestDiskv(t *testing.T) {
	s, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	roundTrip(t, s)
}

func TestDiskvPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewDiskv(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s1.Save(ctx, "boards", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s1.Close()

	s2, err := NewDiskv(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Load(ctx, "boards")
	if err != nil || string(got) != `{"v":1}` {
		t.Errorf("load after reopen = %q, %v", got, err)
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	a := NewScoped(inner, "a")
	b := NewScoped(inner, "b")

	a.Save(ctx, "k", []byte("from-a"))
	b.Save(ctx, "k", []byte("from-b"))

	got, _ := a.Load(ctx, "k")
	if string(got) != "from-a" {
		t.Errorf("scoped load = %q, want from-a", got)
	}
	if err := a.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Error("a's key should be gone")
	}
	if got, _ := b.Load(ctx, "k"); string(got) != "from-b" {
		t.Error("b's key should be untouched")
	}
}
