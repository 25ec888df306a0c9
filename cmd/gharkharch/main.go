// Command gharkharch is the headless family-expense client: it connects to
// the record store, watches the family's four collections and recomputes all
// derived views on every snapshot change.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gharkharch/internal/amqp"
	"gharkharch/internal/auth"
	"gharkharch/internal/backend"
	"gharkharch/internal/config"
	"gharkharch/internal/core"
	"gharkharch/internal/engine"
	applog "gharkharch/internal/log"
	"gharkharch/internal/store"
	"gharkharch/internal/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent("gharkharch")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Client stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Client stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *applog.Logger) error {
	res, err := backend.NewFactory(logger.Logger).Create(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		AMQPQueue:    cfg.AMQPQueue,
	})
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	familyID, err := resolveFamily(ctx, cfg, res.Store)
	if err != nil {
		return err
	}
	logger.Info("Watching family collections", "family_id", familyID, "backend", cfg.DataBackend)

	snapshots := store.NewSnapshotStore()
	snapshots.Subscribe(func(snap core.Snapshot) {
		logViews(logger, engine.Compute(snap, core.Today()))
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.WatchFamily(ctx, res.Store, familyID, snapshots)
	})

	// With the sqlite backend, other family members' writes arrive as AMQP
	// change events; feed them back into the local watchers.
	if st, ok := res.Store.(*sqlite.Store); ok && cfg.AMQPURL != "" {
		g.Go(func() error {
			return amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
				func(ev *amqp.ChangeEvent) error {
					return st.ApplyRemoteChange(ctx, ev.FamilyID, ev.Collection)
				})
		})
	}

	return g.Wait()
}

// resolveFamily picks the family to watch: an explicit FAMILY_ID wins,
// otherwise the family on the profile asserted by the ID token.
func resolveFamily(ctx context.Context, cfg *config.Config, rs store.RecordStore) (string, error) {
	if cfg.FamilyID != "" {
		return cfg.FamilyID, nil
	}
	if cfg.IDToken == "" {
		return "", errors.New("no family: set FAMILY_ID or provide ID_TOKEN")
	}

	ident, err := auth.NewValidator(cfg.AuthSecret).Validate(cfg.IDToken)
	if err != nil {
		return "", fmt.Errorf("validate identity token: %w", err)
	}

	prof, err := rs.Profiles().Get(ctx, ident.UID)
	if err != nil {
		return "", fmt.Errorf("load profile for %s: %w", ident.UID, err)
	}
	if prof.FamilyID == "" {
		return "", fmt.Errorf("user %s has not created or joined a family", ident.UID)
	}
	return prof.FamilyID, nil
}

func logViews(logger *applog.Logger, v engine.Views) {
	top := ""
	if len(v.ByCategory) > 0 {
		top = v.ByCategory[0].Category
	}
	logger.Info("Views recomputed",
		"cards", len(v.Cards),
		"banks", len(v.Banks),
		"total_bank_balance", v.TotalBankBalance.String(),
		"month_to_date", v.MonthToDate.String(),
		"top_category", top)
	for _, cv := range v.Cards {
		logger.Debug("Card due", "card", cv.Card.Name, "due", cv.Due.String())
	}
	for _, bv := range v.Banks {
		logger.Debug("Bank balance", "bank", bv.Bank.Name, "balance", bv.Balance.String(), "health", string(bv.Health))
	}
}
