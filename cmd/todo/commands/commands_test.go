package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/todolist/todolist/pkg/config"
	"github.com/todolist/todolist/pkg/items"
	"github.com/todolist/todolist/pkg/stores"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand("test", "none", "today")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupWorkspace(t *testing.T) string {
	t.Helper()

	t.Setenv(config.EnvDSN, "")
	t.Setenv(config.EnvDriver, "")
	t.Setenv(config.EnvLogLevel, "error")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "todo.yaml")

	out, err := run(t, "init", "--config", cfgPath, "--dsn", filepath.Join(dir, "data", "todo.db"))
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote config") || !strings.Contains(out, "Database ready") {
		t.Errorf("unexpected init output: %q", out)
	}

	return cfgPath
}

func TestInitRefusesToOverwrite(t *testing.T) {
	cfgPath := setupWorkspace(t)

	_, err := run(t, "init", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already exists error, got %v", err)
	}

	if _, err := run(t, "init", "--config", cfgPath, "--force"); err != nil {
		t.Errorf("forced init failed: %v", err)
	}
}

func TestCommandsLifecycle(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out, err := run(t, "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.TrimSpace(out) != "No items." {
		t.Errorf("expected empty list, got %q", out)
	}

	out, err = run(t, "add", "-c", cfgPath, "Mow", "the", "lawn")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if strings.TrimSpace(out) != "Added 1: Mow the lawn" {
		t.Errorf("unexpected add output: %q", out)
	}
	if _, err := run(t, "add", "-c", cfgPath, "Walk the dog"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err = run(t, "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out != "1: Mow the lawn\n2: Walk the dog\n" {
		t.Errorf("unexpected list output: %q", out)
	}

	out, err = run(t, "list", "-c", cfgPath, "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}
	var listed []items.Item
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("failed to decode list output: %v", err)
	}
	if len(listed) != 2 || listed[1] != items.ItemFromRow(2, "Walk the dog") {
		t.Errorf("unexpected JSON list: %+v", listed)
	}

	out, err = run(t, "find", "-c", cfgPath, "2")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if strings.TrimSpace(out) != "2: Walk the dog" {
		t.Errorf("unexpected find output: %q", out)
	}

	if _, err := run(t, "find", "-c", cfgPath, "99"); !errors.Is(err, stores.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := run(t, "find", "-c", cfgPath, "two"); err == nil {
		t.Error("expected error for non-numeric id")
	}

	if _, err := run(t, "clear", "-c", cfgPath); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	out, err = run(t, "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.TrimSpace(out) != "No items." {
		t.Errorf("expected empty list after clear, got %q", out)
	}
}

func TestAddRequiresDescription(t *testing.T) {
	cfgPath := setupWorkspace(t)

	if _, err := run(t, "add", "-c", cfgPath); err == nil {
		t.Error("expected error without description")
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := run(t, "list", "-c", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestCloseAfterInterrupt(t *testing.T) {
	cfgPath := setupWorkspace(t)

	configPath = cfgPath
	t.Cleanup(func() { configPath = "" })

	ctx, cancel := context.WithCancel(context.Background())
	a, err := openApp(ctx)
	if err != nil {
		t.Fatalf("failed to open app: %v", err)
	}

	if _, err := a.items.Save(ctx, items.NewItem("Mow the lawn")); err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	cancel()
	if err := a.close(ctx); err != nil {
		t.Errorf("expected clean shutdown after cancellation, got %v", err)
	}
}
