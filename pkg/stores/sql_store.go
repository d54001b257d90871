package stores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/todolist/todolist/pkg/items"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

const (
	listItemsQuery  = "SELECT * FROM items;"
	findItemQuery   = "SELECT * FROM items WHERE id = ?;"
	clearItemsQuery = "DELETE FROM items;"
	insertItemQuery = "INSERT INTO items (description) VALUES (?);"
)

// SQLStore implements ItemStore on top of database/sql.
// Every operation runs on its own connection, released before returning.
type SQLStore struct {
	db  *sql.DB
	cfg Config
}

// NewSQLStore creates a new SQL store instance
func NewSQLStore(cfg Config) (*SQLStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Driver != DriverSQLite && cfg.Driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Set defaults
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 25
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}

	// Each connection to an in-memory SQLite database sees its own database.
	if cfg.Driver == DriverSQLite && isMemoryDSN(cfg.DSN) {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = -1
	}

	return &SQLStore{cfg: cfg}, nil
}

// Init opens the database and verifies it can be reached.
func (s *SQLStore) Init(ctx context.Context) error {
	db, err := sql.Open(string(s.cfg.Driver), s.driverDSN())
	if err != nil {
		return storageError(OpInit, fmt.Errorf("failed to open database: %w", err))
	}

	// Configure connection pool
	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return storageError(OpInit, fmt.Errorf("failed to ping database: %w", err))
	}

	s.db = db
	return nil
}

// Close closes the database handle
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate creates or upgrades the items table. No connection stays checked
// out once it returns.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return storageError(OpMigrate, ErrNotInitialized)
	}

	// Create migration source from embedded FS
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+string(s.cfg.Driver))
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var driver database.Driver
	switch s.cfg.Driver {
	case DriverMySQL:
		// The mysql driver holds its connection until closed, and closing
		// the driver also closes s.db.
		conn, connErr := s.db.Conn(ctx)
		if connErr != nil {
			return storageError(OpMigrate, fmt.Errorf("failed to acquire connection: %w", connErr))
		}
		defer conn.Close()
		driver, err = migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	default:
		driver, err = migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	}
	if err != nil {
		return storageError(OpMigrate, fmt.Errorf("failed to create database driver: %w", err))
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(s.cfg.Driver), driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return storageError(OpMigrate, fmt.Errorf("failed to run migrations: %w", err))
	}

	return nil
}

// ListAll reads every row of the items table, mapping column 0 to the id and
// column 1 to the description. On failure no partial result is returned.
func (s *SQLStore) ListAll(ctx context.Context) ([]items.Item, error) {
	var all []items.Item

	err := s.withConn(ctx, OpListAll, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, listItemsQuery)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		defer rows.Close()

		list := []items.Item{}
		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			list = append(list, item)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating items: %w", err)
		}

		all = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return all, nil
}

// ClearAll deletes every row of the items table.
func (s *SQLStore) ClearAll(ctx context.Context) error {
	return s.withConn(ctx, OpClearAll, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, clearItemsQuery); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a single item by id
func (s *SQLStore) FindByID(ctx context.Context, id int64) (items.Item, error) {
	var found items.Item
	var missing bool

	err := s.withConn(ctx, OpFindByID, func(conn *sql.Conn) error {
		item, err := scanItem(conn.QueryRowContext(ctx, findItemQuery, id))
		if errors.Is(err, sql.ErrNoRows) {
			missing = true
			return nil
		}
		if err != nil {
			return err
		}
		found = item
		return nil
	})
	if err != nil {
		return items.Item{}, err
	}
	if missing {
		return items.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	return found, nil
}

// Save inserts a new item and returns it hydrated with its assigned id.
func (s *SQLStore) Save(ctx context.Context, item items.Item) (items.Item, error) {
	if item.Persisted() {
		return items.Item{}, fmt.Errorf("item %d: %w", item.ID, ErrAlreadyPersisted)
	}

	var saved items.Item
	err := s.withConn(ctx, OpSave, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, insertItemQuery, item.Description)
		if err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}

		// Get the auto-generated ID
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get item ID: %w", err)
		}

		saved = items.ItemFromRow(id, item.Description)
		return nil
	})
	if err != nil {
		return items.Item{}, err
	}

	return saved, nil
}

// HealthCheck verifies the database connection is healthy
func (s *SQLStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return storageError(OpHealthCheck, ErrNotInitialized)
	}

	if err := s.db.PingContext(ctx); err != nil {
		return storageError(OpHealthCheck, fmt.Errorf("failed to ping database: %w", err))
	}
	return nil
}

// Stats returns the connection pool statistics.
func (s *SQLStore) Stats() sql.DBStats {
	if s.db == nil {
		return sql.DBStats{}
	}
	return s.db.Stats()
}

// withConn acquires a dedicated connection for fn and releases it on every
// exit path. Errors returned by fn are reported as *StorageError.
func (s *SQLStore) withConn(ctx context.Context, op string, fn func(*sql.Conn) error) error {
	if s.db == nil {
		return storageError(op, ErrNotInitialized)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return storageError(op, fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Close()

	return storageError(op, fn(conn))
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps a positional row (id, description) into an item.
func scanItem(row rowScanner) (items.Item, error) {
	var (
		id          int64
		description string
	)
	if err := row.Scan(&id, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return items.Item{}, err
		}
		return items.Item{}, fmt.Errorf("failed to scan item: %w", err)
	}
	return items.ItemFromRow(id, description), nil
}

// driverDSN returns the DSN handed to database/sql, with connection-level
// SQLite pragmas appended unless the caller supplied query parameters.
func (s *SQLStore) driverDSN() string {
	if s.cfg.Driver != DriverSQLite || strings.Contains(s.cfg.DSN, "?") {
		return s.cfg.DSN
	}
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if !isMemoryDSN(s.cfg.DSN) {
		pragmas += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	return s.cfg.DSN + "?" + pragmas
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
