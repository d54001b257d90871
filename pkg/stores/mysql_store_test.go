package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/todolist/todolist/pkg/items"
)

func TestMySQLStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MySQL container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("todo"),
		tcmysql.WithUsername("todo"),
		tcmysql.WithPassword("todo"),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %v", err)
	}

	store, err := NewSQLStore(Config{Driver: DriverMySQL, DSN: dsn})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}
	assertNoConnectionsInUse(t, store)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
	assertNoConnectionsInUse(t, store)

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty table, got %d items", len(all))
	}

	lawn, err := store.Save(ctx, items.NewItem("Mow the lawn"))
	if err != nil {
		t.Fatalf("failed to save item: %v", err)
	}
	dog, err := store.Save(ctx, items.NewItem("Walk the dog"))
	if err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	all, err = store.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(all) != 2 || all[0] != lawn || all[1] != dog {
		t.Errorf("expected [%+v %+v], got %+v", lawn, dog, all)
	}

	found, err := store.FindByID(ctx, dog.ID)
	if err != nil {
		t.Fatalf("failed to find item: %v", err)
	}
	if found != dog {
		t.Errorf("expected %+v, got %+v", dog, found)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("failed to clear items: %v", err)
	}
	if _, err := store.FindByID(ctx, dog.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}
