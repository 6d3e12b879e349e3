package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	logPrefix = "forge-"
	logSuffix = ".log"

	// DefaultKeep is how many run logs survive pruning.
	DefaultKeep = 5
)

// OpenRunLog creates a new timestamped log file in dir and prunes older ones
// so that at most keep files remain, the new one included.
func OpenRunLog(dir string, keep int, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	name := logPrefix + now.Format("20060102-150405.000") + logSuffix
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	if err := prune(dir, keep); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// prune removes the oldest run logs beyond keep. Names sort chronologically.
func prune(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading log directory: %w", err)
	}

	var logs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), logPrefix) && strings.HasSuffix(e.Name(), logSuffix) {
			logs = append(logs, e.Name())
		}
	}
	if len(logs) <= keep {
		return nil
	}

	sort.Strings(logs)
	for _, name := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing old log %s: %w", name, err)
		}
	}
	return nil
}
