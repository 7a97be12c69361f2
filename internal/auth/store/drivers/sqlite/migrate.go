package sqlite

import (
	"errors"

	"github.com/aussiebroadwan/sessiond/internal/auth/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

// ApplyMigrations applies any pending migrations from the embedded users
// schema. It is safe to call on every start.
func (m *Store) ApplyMigrations() error {
	// 1. Create the SQLite migration driver
	driver, err := sqlite.WithInstance(m.db, &sqlite.Config{})
	if err != nil {
		return oops.In("sqlite").Wrapf(err, "migration driver")
	}

	// 2. Create the iofs (embedded filesystem) source driver
	migrationsFilesystem, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return oops.In("sqlite").Wrapf(err, "migration source")
	}

	// 3. Create the migrate instance to run migrations
	instance, err := migrate.NewWithInstance("iofs", migrationsFilesystem, "sqlite", driver)
	if err != nil {
		return oops.In("sqlite").Wrapf(err, "migration instance")
	}

	// 4. Apply all up migrations
	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.In("sqlite").With("dsn", m.dsn).Wrapf(err, "apply migrations")
	}

	return nil
}
