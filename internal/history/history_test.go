package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/funvibe/overload/internal/scenario"
)

const scenarioYAML = `
name: history
checks:
  - resolve: {func: [a, b]}
    args: [a]
    expect: b
  - name: wrong
    assign: {value: a, target: b}
    expect: true
`

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewRun(t *testing.T) {
	sc, err := scenario.Parse([]byte(scenarioYAML), "history.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	run := NewRun(sc, sc.Run(), started)

	if run.Scenario != "history" || run.Passed != 1 || run.Failed != 1 {
		t.Errorf("run = %+v", run)
	}
	if len(run.Results) != 2 {
		t.Fatalf("entries = %d, want 2", len(run.Results))
	}
	if e := run.Results[0]; e.Name != "#1 resolve" || e.Kind != "resolve" || e.Outcome != "b" || !e.OK {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := run.Results[1]; e.Name != "wrong" || e.Kind != "assign" || e.OK {
		t.Errorf("entry 1 = %+v", e)
	}
}

func TestStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	sc, err := scenario.Parse([]byte(scenarioYAML), "history.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := NewRun(sc, sc.Run(), base)
	newer := NewRun(sc, sc.Run(), base.Add(1500*time.Millisecond))
	newer.Scenario = "newer"

	for _, run := range []*Run{older, newer} {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if run.ID == "" {
			t.Error("Record did not assign an id")
		}
	}
	if older.ID == newer.ID {
		t.Error("runs share an id")
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != newer.ID || runs[1].ID != older.ID {
		t.Errorf("runs not ordered newest first: %s, %s", runs[0].Scenario, runs[1].Scenario)
	}
	if !runs[0].StartedAt.Equal(newer.StartedAt) {
		t.Errorf("started_at = %v, want %v", runs[0].StartedAt, newer.StartedAt)
	}
	if runs[1].Passed != 1 || runs[1].Failed != 1 {
		t.Errorf("counts = %d/%d, want 1/1", runs[1].Passed, runs[1].Failed)
	}

	limited, err := store.Runs(ctx, 1)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Errorf("limited runs = %+v", limited)
	}

	entries, err := store.Entries(ctx, older.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0] != older.Results[0] || entries[1] != older.Results[1] {
		t.Errorf("entries = %+v, want %+v", entries, older.Results)
	}
}

func TestStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	run := &Run{ID: "fixed", Scenario: "s", StartedAt: time.Now()}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}
	dup := &Run{ID: "fixed", Scenario: "s", StartedAt: time.Now()}
	if err := store.Record(ctx, dup); err == nil {
		t.Error("expected error for a duplicate id")
	}
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(ctx, &Run{Scenario: "kept", StartedAt: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	store, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	runs, err := store.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "kept" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestStore_EntriesUnknownRun(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	empty := &Run{Scenario: "empty", StartedAt: time.Now()}
	if err := store.Record(ctx, empty); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := store.Entries(ctx, empty.ID)
	if err != nil || len(entries) != 0 {
		t.Errorf("Entries(empty run) = %v, %v; want no entries and no error", entries, err)
	}

	_, err = store.Entries(ctx, "no-such-run")
	if !errors.Is(err, ErrUnknownRun) {
		t.Errorf("Entries(unknown) error = %v, want ErrUnknownRun", err)
	}
}
