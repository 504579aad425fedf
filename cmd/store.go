package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/facloc-cli/internal/store"
)

// storeCloser is the store interface the commands need.
type storeCloser = store.Store

// initStore opens the configured validation-run store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, eris.Wrap(err, "init store: sqlite")
		}
		return s, nil
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("init store: postgres driver requires store.database_url")
		}
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init store: postgres")
		}
		return s, nil
	default:
		return nil, eris.Errorf("init store: unknown driver %q", cfg.Store.Driver)
	}
}
