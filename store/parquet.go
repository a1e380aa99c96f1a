// Package store writes solver run summaries to Parquet so that strategies can
// be compared across problems and machines. Only run statistics are stored;
// puzzle states never leave the process.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const runSchema = "tiles_run_v1"

// RunRow is one (problem, method) run.
//
// Steps holds the solution actions rendered as "(HxW, col)", empty when the
// run failed. Depth is -1 for failed runs.
type RunRow struct {
	RunID         string   `parquet:"run_id"`
	Problem       string   `parquet:"problem,dict"`
	Method        string   `parquet:"method,dict"`
	GridSize      int32    `parquet:"grid_size"`
	Success       bool     `parquet:"success"`
	TimedOut      bool     `parquet:"timed_out"`
	Depth         int32    `parquet:"depth"`
	NodesExplored int64    `parquet:"nodes_explored"`
	ElapsedMs     float64  `parquet:"elapsed_ms"`
	Steps         []string `parquet:"steps"`
	Error         string   `parquet:"error,optional"`
	RecordedAt    int64    `parquet:"recorded_at_ms"`
}

// WriteRuns writes rows to outPath via a temp file and an atomic rename, so
// readers never observe a partial file.
func WriteRuns(outPath string, rows []RunRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to write")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", runSchema),
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

// WriteRunsBatch writes rows to a fresh timestamped file in outDir and returns its path.
func WriteRunsBatch(outDir string, rows []RunRow) (string, error) {
	name := fmt.Sprintf("runs_%d.parquet", time.Now().UnixNano())
	outPath := filepath.Join(outDir, name)
	if err := WriteRuns(outPath, rows); err != nil {
		return "", err
	}
	return outPath, nil
}

// ReadRuns loads every row of a file written by WriteRuns.
func ReadRuns(path string) ([]RunRow, error) {
	rows, err := parquet.ReadFile[RunRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
