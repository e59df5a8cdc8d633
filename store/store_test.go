package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
)

func sampleRows() []TurnRow {
	return []TurnRow{
		{
			RunID: "run_1", Strategy: "greedy", Episode: 0, Seed: 10,
			Turn: 0, Width: 2, Height: 2,
			AgentX: 0, AgentY: 0, Move: 0, GameScore: 0,
			Cells: []int32{0, 3, 1, 2},
		},
		{
			RunID: "run_1", Strategy: "greedy", Episode: 0, Seed: 10,
			Turn: 1, Width: 2, Height: 2,
			AgentX: 1, AgentY: 0, Move: -1, GameScore: 3,
			Cells: []int32{0, 0, 1, 2},
		},
	}
}

func TestWriteTurnsParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episodes.parquet")

	if err := WriteTurnsParquet(path, sampleRows()); err != nil {
		t.Fatal(err)
	}

	got, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rows=%d want=2", len(got))
	}
	if got[1].Move != -1 || got[1].GameScore != 3 {
		t.Fatalf("terminal row: %+v", got[1])
	}
	if len(got[0].Cells) != 4 || got[0].Cells[1] != 3 {
		t.Fatalf("cells: %v", got[0].Cells)
	}
}

func TestWriteTurnsBatchAtomic_LandsOutsideTmp(t *testing.T) {
	outDir := t.TempDir()

	path, err := WriteTurnsBatchAtomic(outDir, sampleRows())
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Dir(path) != outDir {
		t.Fatalf("batch landed in %s, want %s", filepath.Dir(path), outDir)
	}
	if !strings.HasSuffix(path, ".parquet") {
		t.Fatalf("unexpected batch name %s", path)
	}

	got, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rows=%d want=2", len(got))
	}
}

func TestDB_RecordAndListRuns(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	run := Run{
		ID:         "greedy_123",
		Strategy:   "greedy",
		ConfigJSON: `{"episodes":5}`,
		Episodes:   5,
		MeanScore:  42.5,
		MinScore:   30,
		MaxScore:   55,
		ElapsedMs:  1200,
		StartedAt:  time.Unix(0, 1700000000000000000),
	}
	if err := db.RecordRun(run); err != nil {
		t.Fatal(err)
	}

	// Recording the same id again replaces, not duplicates.
	run.MeanScore = 43
	if err := db.RecordRun(run); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs=%d want=1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Strategy != run.Strategy || got.MeanScore != 43 {
		t.Fatalf("got %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("started_at=%v want=%v", got.StartedAt, run.StartedAt)
	}
}
