package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 999_000_000, time.Local)

	got := FileName(ts)
	want := "testuri_20240307_090503.out"
	if got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestFileName_UsesTimeLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC).In(loc)

	if got, want := FileName(ts), "testuri_20250101_013000.out"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestPath(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)

	got := Path("/data/out", ts)
	want := filepath.Join("/data/out", "testuri_20240102_030405.out")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "out")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "testuri_20240101_000000.out")
	if err := os.WriteFile(existing, []byte("http://a.test -> 200\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() call %d error = %v", i+1, err)
		}
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "http://a.test -> 200\n" {
		t.Errorf("existing file altered: %q", data)
	}
}

func TestEnsureDir_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if err := EnsureDir(""); err == nil {
			t.Error("EnsureDir(\"\") error = nil, want error")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if err := EnsureDir(file); err == nil {
			t.Error("EnsureDir() error = nil, want error for regular file")
		}
	})
}

func TestCreate_WritesLines(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.Local)

	f, err := Create(dir, ts)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.Path() != Path(dir, ts) {
		t.Errorf("Path() = %q, want %q", f.Path(), Path(dir, ts))
	}

	lines := []string{
		"http://a.test -> 200",
		"http://b.test -> ERROR: connection refused",
	}
	for _, line := range lines {
		if err := f.WriteLine(line); err != nil {
			t.Fatalf("WriteLine() error = %v", err)
		}
	}
	if f.Lines() != 2 {
		t.Errorf("Lines() = %d, want 2", f.Lines())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := strings.Join(lines, "\n") + "\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestCreate_Truncates(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.Local)

	if err := os.WriteFile(Path(dir, ts), []byte("stale line one\nstale line two\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := Create(dir, ts)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := f.WriteLine("fresh"); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "fresh\n" {
		t.Errorf("file content = %q, want %q", data, "fresh\n")
	}
}

func TestCreate_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	ts := time.Now()

	f, err := Create(dir, ts)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	info, err := os.Stat(f.Path())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestCreate_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := Create(dir, time.Now())
	if err == nil {
		t.Fatal("Create() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "create report") {
		t.Errorf("error = %q, want to contain 'create report'", err)
	}
}

func TestList_OldestFirst(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"testuri_20240102_000000.out",
		"testuri_20231231_235959.out",
		"testuri_20240101_120000.out",
		"notes.txt",
		"testuri_garbage.out",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "testuri_20240103_000000.out"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "testuri_20231231_235959.out"),
		filepath.Join(dir, "testuri_20240101_120000.out"),
		filepath.Join(dir, "testuri_20240102_000000.out"),
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestList_MissingDirectory(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("List() error = nil, want error")
	}
}
