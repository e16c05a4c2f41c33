package config

// Config is the root configuration for the chronoprune daemon.
type Config struct {
	// Targets are the sets of files or directories to thin.
	Targets []TargetConfig `yaml:"targets"`

	// Schedule is a standard cron expression controlling when purge runs
	// happen (e.g. "0 3 * * *" for daily at 3 AM).
	Schedule string `yaml:"schedule"`

	// Watch re-plans a purge whenever a target's directory changes, in
	// addition to the schedule.
	Watch bool `yaml:"watch"`

	Metrics MetricsConfig `yaml:"metrics"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// TargetConfig describes one set of items governed by a single policy.
type TargetConfig struct {
	// Name identifies the target in logs, metrics and history records.
	Name string `yaml:"name"`

	// Paths are the files or directories to consider. Each entry may be a
	// shell glob when Glob is set.
	Paths []string `yaml:"paths"`

	// Glob expands wildcard characters in Paths.
	Glob bool `yaml:"glob"`

	// Policy is the retention policy (e.g. "w,m,y").
	Policy string `yaml:"policy"`

	// Leeway is the spacing tolerance (default "1%").
	Leeway string `yaml:"leeway"`

	// Timestamp selects how item timestamps are resolved: "ctime"
	// (default), "mtime", "atime" or "pattern".
	Timestamp string `yaml:"timestamp"`

	// TimeLayout is the Go time layout used when Timestamp is "pattern".
	TimeLayout string `yaml:"time_layout"`

	// LeafOnly matches TimeLayout against the final path element only.
	LeafOnly bool `yaml:"leaf_only"`

	// Remove deletes discarded items. When false the daemon only reports
	// what it would remove.
	Remove bool `yaml:"remove"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address of the metrics HTTP server
	// (default "127.0.0.1:9464").
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix (default "chronoprune").
	Namespace string `yaml:"namespace"`
}

// HistoryConfig controls the SQLite purge-run history.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file
	// (default "chronoprune-history.db").
	DBPath string `yaml:"db_path"`

	// KeepRuns caps how many run records are retained; older records are
	// pruned after each run. 0 means unlimited.
	KeepRuns int `yaml:"keep_runs"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}
