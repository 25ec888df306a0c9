package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	cases := []struct {
		t  Type
		ok bool
	}{
		{Memory, true},
		{SQLite, true},
		{"postgres", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := tc.t.IsValid(); got != tc.ok {
			t.Fatalf("%q: expected %v, got %v", tc.t, tc.ok, got)
		}
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).Create(context.Background(), Config{Type: Memory})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Store == nil {
		t.Fatalf("expected a store")
	}
	if res.AMQP != nil || res.Cleanup != nil {
		t.Fatalf("memory backend must not carry AMQP or cleanup: %+v", res)
	}
}

func TestCreateSQLiteBackendWithoutAMQP(t *testing.T) {
	res, err := NewFactory(nil).Create(context.Background(), Config{
		Type:         SQLite,
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Store == nil || res.Cleanup == nil {
		t.Fatalf("expected store and cleanup: %+v", res)
	}
	if res.AMQP != nil {
		t.Fatalf("no AMQP URL was configured")
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestCreateUnknownBackend(t *testing.T) {
	if _, err := NewFactory(nil).Create(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}
