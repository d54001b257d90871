// Package telemetry provides observability instrumentation for the to-do store.
//
// It bundles structured logging (zerolog), distributed tracing (OpenTelemetry),
// metrics (Prometheus), and an in-process item event publisher behind a single
// Telemetry value.
//
// # Usage
//
//	cfg := telemetry.DefaultConfig()
//	tel, err := telemetry.NewTelemetry(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//
// Store operations are instrumented with StartOperation:
//
//	op := tel.StartOperation(ctx, "list_all")
//	items, err := store.ListAll(op.Ctx)
//	op.End(err)
//
// # Metrics
//
// When metrics are enabled, Handler exposes the Prometheus registry
// (names are prefixed with the configured namespace):
//
//	store_operations_total{operation,status}
//	store_operation_duration_seconds{operation}
//	store_errors_total{operation}
//	items_listed
//
// # Events
//
// Item events (item.saved, items.cleared, item.not_found, storage.failed) are
// delivered to subscribers registered with EventPublisher.Subscribe.
package telemetry
