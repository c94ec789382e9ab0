package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jpalmerr/testuri"
)

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if store == nil {
		t.Fatal("NewMemoryStore() = nil")
	}

	if _, ok := store.Last(); ok {
		t.Error("Last() ok = true on an empty store, want false")
	}
}

func TestMemoryStore_Record(t *testing.T) {
	store := NewMemoryStore()

	store.Record(Cycle{
		ID:      "c-1",
		Report:  "/data/out/testuri_20240101_000000.out",
		Targets: []TargetStatus{{URL: "https://example.com", StatusCode: 200}},
	})

	got, ok := store.Last()
	if !ok {
		t.Fatal("Last() ok = false, want true")
	}
	if got.ID != "c-1" {
		t.Errorf("Last().ID = %q, want %q", got.ID, "c-1")
	}
	if len(got.Targets) != 1 || got.Targets[0].StatusCode != 200 {
		t.Errorf("Last().Targets = %+v, want one 200 entry", got.Targets)
	}
}

func TestMemoryStore_RecordOverwrites(t *testing.T) {
	store := NewMemoryStore()

	store.Record(Cycle{ID: "first"})
	store.Record(Cycle{ID: "second"})

	got, _ := store.Last()
	if got.ID != "second" {
		t.Errorf("Last().ID = %q, want %q", got.ID, "second")
	}
}

func TestMemoryStore_LastReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Record(Cycle{Targets: []TargetStatus{{URL: "a"}}})

	got, _ := store.Last()
	got.Targets[0].URL = "mutated"

	again, _ := store.Last()
	if again.Targets[0].URL != "a" {
		t.Errorf("store mutated through snapshot: %q", again.Targets[0].URL)
	}
}

func TestMemoryStore_RecordCopiesInput(t *testing.T) {
	store := NewMemoryStore()
	targets := []TargetStatus{{URL: "a"}}
	store.Record(Cycle{Targets: targets})

	targets[0].URL = "mutated"

	got, _ := store.Last()
	if got.Targets[0].URL != "a" {
		t.Errorf("store mutated through caller slice: %q", got.Targets[0].URL)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Record(Cycle{Targets: []TargetStatus{{URL: "a"}, {URL: "b"}}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Last()
			}
		}()
	}
	wg.Wait()

	if got, ok := store.Last(); !ok || len(got.Targets) != 2 {
		t.Errorf("Last() = %+v, %v, want two targets", got, ok)
	}
}

func TestFromReport(t *testing.T) {
	started := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	report := testuri.CycleReport{
		ID:        "c-42",
		StartedAt: started,
		Path:      "/data/out/testuri_20240301_120000.out",
		Duration:  2500 * time.Millisecond,
		Results: []testuri.CheckResult{
			{URL: "http://a.test", StatusCode: 404, Latency: 15 * time.Millisecond, CheckedAt: started},
			{URL: "http://b.test", Err: errors.New("connection refused"), Latency: time.Millisecond},
		},
	}

	got := FromReport(report)

	if got.ID != "c-42" || got.Report != report.Path || !got.StartedAt.Equal(started) {
		t.Errorf("FromReport() header = %+v", got)
	}
	if got.DurationMs != 2500 {
		t.Errorf("DurationMs = %d, want 2500", got.DurationMs)
	}
	if got.Failures != 1 {
		t.Errorf("Failures = %d, want 1", got.Failures)
	}
	if len(got.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2", len(got.Targets))
	}

	first := got.Targets[0]
	if first.StatusCode != 404 || first.Error != nil || first.ResponseTimeMs != 15 {
		t.Errorf("Targets[0] = %+v, want 404 without error", first)
	}
	second := got.Targets[1]
	if second.Error == nil || *second.Error != "connection refused" {
		t.Errorf("Targets[1].Error = %v, want %q", second.Error, "connection refused")
	}
	if second.StatusCode != 0 {
		t.Errorf("Targets[1].StatusCode = %d, want 0", second.StatusCode)
	}
}

func TestFromReport_EmptyCycle(t *testing.T) {
	got := FromReport(testuri.CycleReport{ID: "empty"})

	if got.Targets == nil {
		t.Error("Targets = nil, want empty slice so JSON renders []")
	}
	if len(got.Targets) != 0 {
		t.Errorf("len(Targets) = %d, want 0", len(got.Targets))
	}
}

func TestRecorder(t *testing.T) {
	store := NewMemoryStore()
	record := Recorder(store)

	record(testuri.CycleReport{ID: "via-callback"})

	got, ok := store.Last()
	if !ok || got.ID != "via-callback" {
		t.Errorf("Last() = %+v, %v, want via-callback", got, ok)
	}
}
