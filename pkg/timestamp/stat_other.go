//go:build !linux && !darwin

package timestamp

import (
	"os"
	"time"
)

// Platforms without a portable access/change time fall back to the
// modification time.

func statAccessed(name string) (time.Time, error) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func statChanged(name string) (time.Time, error) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
