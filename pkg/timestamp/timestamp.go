package timestamp

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Func resolves the timestamp of a named item.
type Func func(name string) (time.Time, error)

// Source selects which file metadata timestamp to use.
type Source string

const (
	// Modified uses the file's last modification time.
	Modified Source = "mtime"
	// Accessed uses the file's last access time.
	Accessed Source = "atime"
	// Changed uses the file's inode change time. On platforms that do not
	// expose it, the modification time is used instead.
	Changed Source = "ctime"
)

// Stat returns a Func that reads the chosen timestamp from file metadata.
func Stat(source Source) (Func, error) {
	switch source {
	case Modified:
		return func(name string) (time.Time, error) {
			info, err := os.Stat(name)
			if err != nil {
				return time.Time{}, err
			}
			return info.ModTime(), nil
		}, nil
	case Accessed:
		return statAccessed, nil
	case Changed:
		return statChanged, nil
	default:
		return nil, fmt.Errorf("unknown timestamp source %q", source)
	}
}

// Pattern returns a Func that parses the timestamp from the item's name
// using a Go time layout (e.g. "backup-2006-01-02.tar.gz"). With leafOnly
// set, only the final path element is matched against the layout, so full
// paths can carry directories that the layout does not describe.
func Pattern(layout string, leafOnly bool) Func {
	return func(name string) (time.Time, error) {
		if leafOnly {
			name = filepath.Base(name)
		}
		t, err := time.ParseInLocation(layout, name, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("name %q does not match layout %q: %w", name, layout, err)
		}
		return t, nil
	}
}
