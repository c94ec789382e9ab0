package report

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// filePrefix and fileSuffix frame the timestamp in every report file name.
	filePrefix = "testuri_"
	fileSuffix = ".out"

	// timestampLayout is YYYYMMDD_HHMMSS in local time.
	timestampLayout = "20060102_150405"

	dirPerm  = 0o755
	filePerm = 0o644
)

// EnsureDir creates dir and any missing parents.
//
// Calling EnsureDir on an existing directory is a no-op and leaves its
// contents untouched. Returns an error if dir exists but is not a directory.
func EnsureDir(dir string) error {
	if dir == "" {
		return errors.New("output directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

// FileName returns the report file name for a cycle started at t.
// The timestamp is rendered in t's location with second granularity.
func FileName(t time.Time) string {
	return filePrefix + t.Format(timestampLayout) + fileSuffix
}

// Path returns the full report path for a cycle started at t.
func Path(dir string, t time.Time) string {
	return filepath.Join(dir, FileName(t))
}

// File is a single cycle's report, open for writing.
//
// Lines are buffered; nothing is guaranteed to be on disk until
// [File.Close] returns without error. File is not safe for concurrent use.
type File struct {
	path string
	f    *os.File
	w    *bufio.Writer
	n    int
}

// Create opens the report for a cycle started at t, truncating any existing
// file with the same name.
func Create(dir string, t time.Time) (*File, error) {
	path := Path(dir, t)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return &File{
		path: path,
		f:    f,
		w:    bufio.NewWriter(f),
	}, nil
}

// Path returns the report's location on disk.
func (r *File) Path() string {
	return r.path
}

// Lines returns the number of lines written so far.
func (r *File) Lines() int {
	return r.n
}

// WriteLine appends line followed by a newline.
func (r *File) WriteLine(line string) error {
	if _, err := r.w.WriteString(line); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	r.n++
	return nil
}

// Close flushes buffered lines and closes the file.
//
// The file is closed even when the flush fails; the first error is returned.
func (r *File) Close() error {
	flushErr := r.w.Flush()
	closeErr := r.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush report: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close report: %w", closeErr)
	}
	return nil
}

// List returns the paths of report files in dir, oldest first.
//
// Ordering relies on the timestamp embedded in the name, which sorts
// lexically. Files that do not look like reports are ignored.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isReportName(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// isReportName reports whether name has the testuri_<timestamp>.out shape.
func isReportName(name string) bool {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	_, err := time.Parse(timestampLayout, stamp)
	return err == nil
}
