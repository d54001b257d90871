package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/todolist/todolist/pkg/items"
	"github.com/todolist/todolist/pkg/telemetry"
)

// failingStore returns err from every operation
type failingStore struct {
	err error
}

func (f failingStore) ListAll(context.Context) ([]items.Item, error) { return nil, f.err }
func (f failingStore) ClearAll(context.Context) error                { return f.err }
func (f failingStore) FindByID(context.Context, int64) (items.Item, error) {
	return items.Item{}, f.err
}
func (f failingStore) Save(context.Context, items.Item) (items.Item, error) {
	return items.Item{}, f.err
}

func setupTestTelemetry(t *testing.T, buf *bytes.Buffer) *telemetry.Telemetry {
	t.Helper()

	cfg := telemetry.DefaultConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	tel, err := telemetry.NewTelemetryWithLogger(cfg, telemetry.NewLoggerWithWriter(cfg.Logging, buf))
	if err != nil {
		t.Fatalf("failed to create telemetry: %v", err)
	}
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })
	return tel
}

func TestInstrumentedStorePublishesEvents(t *testing.T) {
	var buf bytes.Buffer
	tel := setupTestTelemetry(t, &buf)

	var types []string
	tel.Events.Subscribe(func(e telemetry.Event) { types = append(types, e.Type) }, nil)

	store := NewInstrumentedStore(setupTestStore(t), tel)
	ctx := context.Background()

	saved, err := store.Save(ctx, items.NewItem("Mow the lawn"))
	if err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(all) != 1 || all[0] != saved {
		t.Errorf("expected [%+v], got %+v", saved, all)
	}

	if _, err := store.FindByID(ctx, saved.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("failed to clear items: %v", err)
	}

	want := []string{
		telemetry.EventTypeItemSaved,
		telemetry.EventTypeItemNotFound,
		telemetry.EventTypeItemsCleared,
	}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("expected events %v, got %v", want, types)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"component":"stores"`) {
		t.Errorf("expected store component logs, got %q", logs)
	}
	if want := fmt.Sprintf(`"item_id":%d`, saved.ID+100); !strings.Contains(logs, want) {
		t.Errorf("expected lookup log with %s, got %q", want, logs)
	}
	if !strings.Contains(logs, "all items cleared") {
		t.Errorf("expected clear to be logged, got %q", logs)
	}
}

func TestInstrumentedStoreStorageFailure(t *testing.T) {
	var buf bytes.Buffer
	tel := setupTestTelemetry(t, &buf)

	var failures int
	tel.Events.Subscribe(func(telemetry.Event) { failures++ },
		telemetry.FilterByType(telemetry.EventTypeStorageFailed))

	cause := &StorageError{Op: OpListAll, Err: errors.New("connection refused")}
	store := NewInstrumentedStore(failingStore{err: cause}, tel)

	if _, err := store.ListAll(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected the underlying storage error, got %v", err)
	}

	if failures != 1 {
		t.Errorf("expected 1 storage failure event, got %d", failures)
	}
	if !strings.Contains(buf.String(), "store operation failed") {
		t.Errorf("expected failure log line, got %q", buf.String())
	}
}
