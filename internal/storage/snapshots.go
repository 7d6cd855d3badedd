package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"migraph/internal/analysis"
	"migraph/internal/errors"
	"migraph/internal/graph"
)

// Snapshot kinds stored per run, mirroring the three stage outputs.
const (
	SnapshotGraph    = "graph"
	SnapshotMetrics  = "metrics"
	SnapshotAnalysis = "analysis"
)

// SaveRun records a completed pipeline execution: the run row plus
// zstd-compressed JSON snapshots of graph, metrics, and analysis, all in one
// transaction.
func (s *Store) SaveRun(run *Run, result *graph.Result, analyses map[string]*analysis.Analysis) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, facts_path, node_count, edge_count,
		                  safe_count, caution_count, unsafe_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.FactsPath,
		run.NodeCount, run.EdgeCount, run.Safe, run.Caution, run.Unsafe, run.DurationMs)
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to insert run", err)
	}

	snapshots := map[string]interface{}{
		SnapshotGraph:    result.Graph,
		SnapshotMetrics:  result.Metrics,
		SnapshotAnalysis: analyses,
	}
	for kind, payload := range snapshots {
		blob, err := encodeSnapshot(payload)
		if err != nil {
			return errors.New(errors.StoreUnavailable,
				fmt.Sprintf("failed to encode %s snapshot", kind), err)
		}
		if _, err := tx.Exec(`INSERT INTO snapshots (run_id, kind, data) VALUES (?, ?, ?)`,
			run.ID, kind, blob); err != nil {
			return errors.New(errors.StoreUnavailable,
				fmt.Sprintf("failed to insert %s snapshot", kind), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New(errors.StoreUnavailable, "failed to commit run", err)
	}

	if s.logger != nil {
		s.logger.Debug("Run persisted", map[string]interface{}{
			"runId": run.ID,
			"nodes": run.NodeCount,
			"edges": run.EdgeCount,
		})
	}
	return nil
}

// LoadResult reconstructs the graph stage output for a run.
func (s *Store) LoadResult(runID string) (*graph.Result, error) {
	var g graph.Graph
	if err := s.loadSnapshot(runID, SnapshotGraph, &g); err != nil {
		return nil, err
	}
	metrics := make(map[string]*graph.Metrics)
	if err := s.loadSnapshot(runID, SnapshotMetrics, &metrics); err != nil {
		return nil, err
	}
	return &graph.Result{Graph: &g, Metrics: metrics}, nil
}

// LoadAnalysis reconstructs the analysis stage output for a run.
func (s *Store) LoadAnalysis(runID string) (map[string]*analysis.Analysis, error) {
	analyses := make(map[string]*analysis.Analysis)
	if err := s.loadSnapshot(runID, SnapshotAnalysis, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (s *Store) loadSnapshot(runID, kind string, out interface{}) error {
	var blob []byte
	err := s.conn.QueryRow(`SELECT data FROM snapshots WHERE run_id = ? AND kind = ?`,
		runID, kind).Scan(&blob)
	if err != nil {
		// Snapshot rows are written with the run row in one transaction, so a
		// missing snapshot means the run id itself is unknown.
		if _, runErr := s.GetRun(runID); runErr != nil {
			return runErr
		}
		return errors.New(errors.StoreUnavailable,
			fmt.Sprintf("failed to read %s snapshot for run %s", kind, runID), err)
	}
	return decodeSnapshot(blob, out)
}

func encodeSnapshot(payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decodeSnapshot(blob []byte, out interface{}) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer dec.Close()
	data, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
