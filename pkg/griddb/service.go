// GridDB stores the raw grid power readings collected from the Zappi.
// This database should only be written to by zappi_monitor
// but can be read by any service.
package griddb

import (
	"database/sql"
	"embed"
	"log"
	"sync"

	"github.com/NotCoffee418/dbmigrator"
	"github.com/kstephens1/ZappiMon/pkg/pathing"

	_ "modernc.org/sqlite"
)

var (
	defaultStore *Store
	once         sync.Once
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store wraps a sqlite database holding grid readings.
type Store struct {
	db *sql.DB
}

// Open connects to the sqlite database at dbPath, creating it if absent.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate applies the embedded schema migrations. Idempotent.
func (s *Store) Migrate() {
	// Create DB before migrations
	_, err := s.db.Exec("SELECT 1;")
	if err != nil {
		log.Printf("Warning: Could not create DB: %v", err)
	}

	// Apply migrations
	dbmigrator.SetDatabaseType(dbmigrator.SQLite)
	<-dbmigrator.MigrateUpCh(
		s.db,
		migrationFS,
		"migrations",
	)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Default returns the shared store at the standard data path.
func Default() *Store {
	once.Do(func() {
		var err error
		defaultStore, err = Open(pathing.GetGridDbPath())
		if err != nil {
			log.Fatal(err)
		}
	})
	return defaultStore
}
