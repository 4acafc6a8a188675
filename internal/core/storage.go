package core

import (
	"fmt"
	"os"

	"taxcore/internal/infra/persistence/memory"
	"taxcore/internal/infra/persistence/postgres"
	"taxcore/internal/infra/persistence/sqlite"
	"taxcore/pkg/domain"
)

// StorageDriver identifies a concrete saved-return storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenReturnStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	TAXCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	TAXCORE_SQLITE_PATH: path to sqlite file (default ./taxcore.db)
//	TAXCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenReturnStore() (domain.ReturnStore, error) {
	driver := os.Getenv("TAXCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("TAXCORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("TAXCORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
