package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

// NewConnectSQLite opens the vault database file, creating it with 0600
// permissions if needed. The connection runs in WAL mode with
// synchronous=FULL, so a committed note survives a crash, and with a single
// open connection.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("%w: error creating database file: %w", ErrStore, err)
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("%w: error opening connection to DB: %w", ErrStore, err)
	}

	// one writer at a time; the pool must not open a second connection
	conn.SetMaxOpenConns(1)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	busyBackoff := cfg.BusyBackoff
	if busyBackoff <= 0 {
		busyBackoff = config.DefaultBusyBackoff
	}

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
		busyRetries:        cfg.BusyRetries,
		busyBackoff:        busyBackoff,
	}

	return db, nil
}

// sqliteDSN appends the go-sqlite3 connection pragmas to the file path.
func sqliteDSN(cfg config.DB) string {
	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	params.Set("_synchronous", "FULL")
	params.Set("_foreign_keys", "on")
	if !isMemoryDSN(cfg.DSN) {
		params.Set("_journal_mode", "WAL")
	}

	sep := "?"
	if strings.Contains(cfg.DSN, "?") {
		sep = "&"
	}
	return cfg.DSN + sep + params.Encode()
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if isMemoryDSN(dbFile) || strings.HasPrefix(dbFile, "file:") {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.OpenFile(dbFile, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
