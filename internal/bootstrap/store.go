package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/config"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/firestoredb"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/memory"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/postgres"
)

// OpenStore connects the configured document store backend. The returned
// cleanup releases every resource it opened.
func OpenStore(ctx context.Context, cfg *config.Config, app *firebase.App, log *zap.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFirestore:
		if app == nil {
			return nil, nil, fmt.Errorf("firestore backend requires Firebase credentials")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		s := firestoredb.New(client)
		log.Info("document store ready", zap.String("backend", cfg.Store.Backend))
		return s, func() { _ = s.Close() }, nil

	case config.BackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, nil, err
		}
		s := postgres.New(SQLDB(pool))

		sctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()
		if err := s.EnsureSchema(sctx); err != nil {
			_ = s.Close()
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info("document store ready", zap.String("backend", cfg.Store.Backend))
		return s, func() {
			_ = s.Close()
			pool.Close()
		}, nil

	case config.BackendMemory:
		log.Warn("using in-memory document store; data is lost on restart")
		return memory.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
