package cli

import (
	"database/sql"
	"errors"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// environment holds the stores and services a command works on.
type environment struct {
	db    *sql.DB
	local *pebble.DB

	transactions *service.TransactionService
	portfolio    *service.PortfolioService
	snapshots    *service.SnapshotService
}

// openEnvironment opens the stores named by cfg the same way the server does.
func openEnvironment(cfg *config.Config, logger *zap.Logger) (*environment, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	env := &environment{db: db}

	var localRepo repository.TransactionRepository
	if cfg.LocalStore.Path != "" {
		key, err := repository.ParseLocalStoreKey(cfg.LocalStore.Key)
		if err != nil {
			db.Close()
			return nil, err
		}
		env.local, err = database.OpenLocalStore(cfg.LocalStore.Path, nil)
		if err != nil {
			db.Close()
			return nil, err
		}
		localRepo = repository.NewLocalTransactionRepository(env.local, key)
	}

	selector := repository.NewSelector(repository.NewSQLiteTransactionRepository(db), localRepo)
	priceRepo := repository.NewPriceRepository(db)

	env.transactions = service.NewTransactionService(selector, logger)
	env.portfolio = service.NewPortfolioService(selector, priceRepo, logger)
	env.snapshots = service.NewSnapshotService(selector, repository.NewSnapshotRepository(db), env.portfolio, logger)
	return env, nil
}

func (e *environment) Close() error {
	var errs []error
	if e.local != nil {
		errs = append(errs, e.local.Close())
	}
	errs = append(errs, e.db.Close())
	return errors.Join(errs...)
}
