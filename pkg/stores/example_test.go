package stores_test

import (
	"context"
	"fmt"
	"log"

	"github.com/todolist/todolist/pkg/items"
	"github.com/todolist/todolist/pkg/stores"
)

// ExampleNewSQLStore demonstrates creating and initializing a new store.
func ExampleNewSQLStore() {
	store, err := stores.NewSQLStore(stores.Config{
		Driver: stores.DriverSQLite,
		DSN:    ":memory:", // Use in-memory database for example
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Store initialized successfully")
	// Output: Store initialized successfully
}

// ExampleSQLStore_ListAll demonstrates listing every stored item.
func ExampleSQLStore_ListAll() {
	store, _ := stores.NewSQLStore(stores.Config{DSN: ":memory:"})
	ctx := context.Background()
	_ = store.Init(ctx)
	_ = store.Migrate(ctx)
	defer store.Close()

	for _, description := range []string{"Mow the lawn", "Walk the dog"} {
		if _, err := store.Save(ctx, items.NewItem(description)); err != nil {
			log.Fatal(err)
		}
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, item := range all {
		fmt.Printf("%d: %s\n", item.ID, item.Description)
	}
	// Output:
	// 1: Mow the lawn
	// 2: Walk the dog
}

// ExampleSQLStore_FindByID demonstrates a lookup that misses.
func ExampleSQLStore_FindByID() {
	store, _ := stores.NewSQLStore(stores.Config{DSN: ":memory:"})
	ctx := context.Background()
	_ = store.Init(ctx)
	_ = store.Migrate(ctx)
	defer store.Close()

	_, err := store.FindByID(ctx, 99)
	fmt.Println(err)
	// Output: item 99: item not found
}
