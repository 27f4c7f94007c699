package runstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the run history schema to targetVersion. Negative
// means latest, zero rolls every migration back, positive pins an
// exact version. The connection string follows the same defaulting
// rules as New, so an empty sqlite string targets the default run
// database.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openMigrationDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", backend, err)
	}

	m, err := newMigrator(backend, db)
	if err != nil {
		return err
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		// A half-applied migration left the version table dirty. That
		// needs a manual forced version before anything else can run.
		return fmt.Errorf("run database is dirty at version %d, force a version to recover", currentVersion)
	}

	return applyTarget(m, currentVersion, targetVersion)
}

// openMigrationDB opens the database the same way the store does, for
// sqlite via the modernc-backed driver golang-migrate binds to.
func openMigrationDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetStoreDBFilePath()
		}
		return sql.Open("sqlite", connStr)
	case schema.MySQLBackend:
		return sql.Open("mysql", connStr)
	case schema.PostgreSQLBackend:
		return sql.Open("pgx", connStr)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// newMigrator pairs the embedded migration sources with the
// backend-specific migrate driver.
func newMigrator(backend schema.DatabaseBackend, db *sql.DB) (*migrate.Migrate, error) {
	var driver database.Driver
	var err error
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("create %s migrate driver: %w", backend, err)
	}

	sources, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	sourceDriver, err := iofs.New(sources, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "devex", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// applyTarget moves the schema and reports what happened. A no-change
// result is not an error, it just means the database was already where
// the caller asked it to be.
func applyTarget(m *migrate.Migrate, currentVersion uint, targetVersion int) error {
	var err error
	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && err != migrate.ErrNoChange {
		switch {
		case targetVersion < 0:
			return fmt.Errorf("migrate to latest version: %w", err)
		case targetVersion == 0:
			return fmt.Errorf("roll back migrations: %w", err)
		default:
			return fmt.Errorf("migrate to version %d: %w", targetVersion, err)
		}
	}

	if err == migrate.ErrNoChange {
		fmt.Printf("Run database already at the requested version (%d)\n", currentVersion)
		return nil
	}
	newVersion, _, _ := m.Version()
	fmt.Printf("Run database migrated from version %d to version %d\n", currentVersion, newVersion)
	return nil
}
