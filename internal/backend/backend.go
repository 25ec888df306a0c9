// Package backend selects and constructs the record store implementation.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gharkharch/internal/amqp"
	"gharkharch/internal/store"
	"gharkharch/internal/store/memory"
	"gharkharch/internal/store/sqlite"
)

// Type identifies a record store backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Config holds what backend construction needs.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result is the constructed store plus optional cleanup and the AMQP client
// when one was connected (the caller wires it to consumption).
type Result struct {
	Store   store.RecordStore
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates record store backends from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	switch cfg.Type {
	case Memory:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	case SQLite:
		return f.createSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}

func (f *Factory) createSQLite(_ context.Context, cfg Config) (*Result, error) {
	// AMQP is optional: without it only this process observes its own writes.
	var notifier sqlite.Notifier
	var client *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		client, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without change fanout", "error", err)
		} else {
			notifier = client
			f.logger.Info("Initialized AMQP change fanout",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	st, err := sqlite.New(cfg.SQLiteDBPath, notifier)
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("Initialized sqlite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", client != nil)

	cleanup := func() error {
		var firstErr error
		if client != nil {
			firstErr = client.Close()
		}
		if err := st.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}
	return &Result{Store: st, AMQP: client, Cleanup: cleanup}, nil
}
