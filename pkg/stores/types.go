package stores

import (
	"context"
	"time"

	"github.com/todolist/todolist/pkg/items"
)

// Driver identifies the SQL dialect backing a store.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverMySQL  Driver = "mysql"
)

// Operation names used in errors, logs, spans, and metrics.
const (
	OpInit     = "init"
	OpMigrate  = "migrate"
	OpListAll  = "list_all"
	OpClearAll = "clear_all"
	OpFindByID = "find_by_id"
	OpSave     = "save"

	OpHealthCheck = "health_check"
)

// Config holds SQL store configuration
type Config struct {
	Driver          Driver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ItemStore defines the data-access operations over the items table
type ItemStore interface {
	// ListAll returns every stored item in the order storage yields them.
	ListAll(ctx context.Context) ([]items.Item, error)

	// ClearAll deletes every stored item.
	ClearAll(ctx context.Context) error

	// FindByID returns the item with the given id or an error wrapping ErrNotFound.
	FindByID(ctx context.Context, id int64) (items.Item, error)

	// Save persists a new item and returns it with its storage-assigned id.
	Save(ctx context.Context, item items.Item) (items.Item, error)
}
