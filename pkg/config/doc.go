// Package config defines the YAML configuration for chronoprune's daemon
// mode and its loading pipeline: read the file, apply defaults, validate.
//
// One-shot invocations of the CLI do not need a configuration file; the
// daemon uses it to describe purge targets, the schedule, and the optional
// metrics and history facilities.
package config
