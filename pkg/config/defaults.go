package config

// Default values applied to fields left unset in the configuration file.
const (
	DefaultPolicy        = "w,m,y"
	DefaultLeeway        = "1%"
	DefaultTimestamp     = "ctime"
	DefaultSchedule      = "0 3 * * *"
	DefaultListenAddress = "127.0.0.1:9464"
	DefaultNamespace     = "chronoprune"
	DefaultDBPath        = "chronoprune-history.db"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// ApplyDefaults fills in default values for any unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}

	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if t.Policy == "" {
			t.Policy = DefaultPolicy
		}
		if t.Leeway == "" {
			t.Leeway = DefaultLeeway
		}
		if t.Timestamp == "" {
			t.Timestamp = DefaultTimestamp
		}
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}

	if cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultDBPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
