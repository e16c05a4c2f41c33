package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"halcyon-ops/chronoprune/pkg/policy"
)

// Validate checks the configuration for structural problems: missing
// targets, policies that do not compile, unusable leeway values and bad
// cron expressions. It returns the first error found.
func Validate(cfg *Config) error {
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("at least one target must be configured")
	}

	for i := range cfg.Targets {
		if err := validateTarget(&cfg.Targets[i], i); err != nil {
			return err
		}
	}

	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.Logging.Format)
	}

	return nil
}

func validateTarget(t *TargetConfig, index int) error {
	name := t.Name
	if name == "" {
		name = fmt.Sprintf("#%d", index)
	}

	if len(t.Paths) == 0 {
		return fmt.Errorf("target %s: no paths configured", name)
	}

	if err := policy.Validate(t.Policy); err != nil {
		return fmt.Errorf("target %s: %w", name, err)
	}

	leeway, relative, err := policy.ParseValue(t.Leeway)
	if err != nil {
		return fmt.Errorf("target %s: %w", name, err)
	}
	if relative && leeway >= 1 {
		return fmt.Errorf("target %s: %w", name,
			&policy.LeewayError{Leeway: t.Leeway, Message: "relative leeway must be less than 100%"})
	}

	switch t.Timestamp {
	case "ctime", "mtime", "atime":
	case "pattern":
		if t.TimeLayout == "" {
			return fmt.Errorf("target %s: timestamp \"pattern\" requires time_layout", name)
		}
	default:
		return fmt.Errorf("target %s: unknown timestamp source %q", name, t.Timestamp)
	}

	return nil
}
