// Package config loads the to-do application configuration.
//
// Configuration is read from a YAML file, layered over built-in defaults,
// overridden by the TODO_DSN, TODO_DRIVER, and LOG_LEVEL environment variables,
// and validated with struct tags. A Watcher reloads the file when it changes.
//
// # Example file
//
//	database:
//	  driver: sqlite
//	  dsn: ./data/todo.db
//	telemetry:
//	  log_level: info
//	  log_format: console
//	  metrics_enabled: true
//	  tracing_exporter: none
//	server:
//	  addr: ":8080"
package config
