// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task id, bad filter).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config.yaml.
	ConfigError = 2

	// StorageError indicates the storage backend could not be opened.
	StorageError = 3
)
