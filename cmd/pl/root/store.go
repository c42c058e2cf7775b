package root

import (
	"context"
	"time"

	"planloop/internal/config"
	"planloop/internal/engine"
	"planloop/internal/storage"
)

// openStore wires config, sqlite and the engine together. The cleanup
// closes the store (final flush) before the database.
func openStore(ctx context.Context) (*engine.Store, func(), error) {
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == config.DefaultDBName {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}

	store, err := engine.Open(ctx, storage.NewKV(db), engine.Options{
		DayStartHour:  cfg.DayStartHour,
		Debounce:      time.Duration(cfg.DebounceMS) * time.Millisecond,
		AutosaveEvery: time.Duration(cfg.AutosaveSec) * time.Second,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = db.Close()
	}
	return store, cleanup, nil
}
