package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS tenants (
	tenant   TEXT PRIMARY KEY,
	quota    REAL NOT NULL,
	usage    REAL NOT NULL DEFAULT 0,
	valid_to TIMESTAMP NOT NULL
);`

// SqliteTenantStore is the on-premises tenant backend. Single writer;
// transactions open with an immediate lock so concurrent reservations
// serialize at the database.
type SqliteTenantStore struct {
	db *sql.DB
}

func NewSqliteTenantStore(dbPath string) (*SqliteTenantStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_txlock=immediate", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTablesSQL); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SqliteTenantStore{db: db}, nil
}

func (s *SqliteTenantStore) Close() error {
	return s.db.Close()
}
