// Package store persists benchmark output: per-turn episode rows as
// zstd-compressed parquet batches, and per-run summaries in a small
// sqlite registry.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRow is a single (episode, turn) snapshot intended for long-term
// storage and replay.
//
// Cells holds the remaining board values row-major ([y*width+x]) so a
// viewer can re-render any turn without replaying the episode.
// Move is the move chosen from this snapshot: 0=Right, 1=Left, 2=Down,
// 3=Up, -1 for the terminal row.
type TurnRow struct {
	RunID    string `parquet:"run_id,dict"`
	Strategy string `parquet:"strategy,dict"`
	Episode  int32  `parquet:"episode"`
	Seed     int64  `parquet:"seed"`

	Turn   int32 `parquet:"turn"`
	Width  int32 `parquet:"width"`
	Height int32 `parquet:"height"`

	AgentX int32 `parquet:"agent_x"`
	AgentY int32 `parquet:"agent_y"`

	Move      int32 `parquet:"move"`
	GameScore int64 `parquet:"game_score"`

	Cells []int32 `parquet:"cells"`
}

// WriteTurnsParquet writes rows to outPath, creating parent
// directories as needed. The write goes to a temp file first and is
// renamed into place so readers never observe a partial file.
func WriteTurnsParquet(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "episode_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteTurnsBatchAtomic writes a uniquely named batch file into
// outDir, staging it under outDir/tmp first. The returned path is the
// final parquet file. Long-running benchmarks flush through this so
// the viewer can query outDir at any time.
func WriteTurnsBatchAtomic(outDir string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "episode_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}
