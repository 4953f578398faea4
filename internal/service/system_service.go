package service

import (
	"database/sql"
	"strconv"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db         *sql.DB
	localStore bool
}

// NewSystemService creates a new SystemService. localStore reports whether a
// local store backs the local user.
func NewSystemService(db *sql.DB, localStore bool) *SystemService {
	return &SystemService{
		db:         db,
		localStore: localStore,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and the applied migration version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"local_store":        s.localStore,
			"portfolio_snapshot": true,
		},
	}, nil
}
