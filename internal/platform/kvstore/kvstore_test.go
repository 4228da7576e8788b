package kvstore

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("appointments", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := s.Get("appointments")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("expected [], got %s", data)
	}
}

func TestGet_MissingKey(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("admissions")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSet_Overwrites(t *testing.T) {
	s := newTestStore(t)
	s.Set("settings", []byte(`{"theme":"light"}`))
	s.Set("settings", []byte(`{"theme":"dark"}`))
	data, err := s.Get("settings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"theme":"dark"}` {
		t.Errorf("expected overwritten value, got %s", data)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	s.Set("user", []byte(`{}`))
	if err := s.Remove("user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get("user"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after remove, got %v", err)
	}
}

func TestRemove_MissingKeyIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.Remove("user"); err != nil {
		t.Errorf("expected no error removing absent key, got %v", err)
	}
}
