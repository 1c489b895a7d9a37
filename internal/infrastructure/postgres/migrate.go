package postgres

import (
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// RunMigrations aplica las migraciones SQL pendientes del directorio dado.
// Usa database/sql con lib/pq porque goose no trabaja sobre pgxpool.
func RunMigrations(dsn, dir string) error {
	db, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return fmt.Errorf("abrir DB para migraciones: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
