package storage

import (
	"context"
	"testing"
	"time"

	"migraph/internal/analysis"
	"migraph/internal/errors"
	"migraph/internal/facts"
	"migraph/internal/graph"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRunData(t *testing.T) (*graph.Result, map[string]*analysis.Analysis) {
	t.Helper()
	ff := []facts.FileFact{
		{FilePath: "src/A.java", PackageName: "com.a", ClassNames: []string{"A"}, Imports: []string{"com.b.B"}},
		{FilePath: "src/B.java", PackageName: "com.b", ClassNames: []string{"B"}},
	}
	result := graph.NewBuilder(ff).Build()
	analyses, err := analysis.NewAnalyzer(result).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return result, analyses
}

func saveTestRun(t *testing.T, store *Store, createdAt time.Time) (*Run, *graph.Result, map[string]*analysis.Analysis) {
	t.Helper()
	result, analyses := testRunData(t)
	summary := analysis.Summarize(analyses)
	run := &Run{
		ID:         NewRunID(),
		CreatedAt:  createdAt,
		FactsPath:  "facts.json",
		NodeCount:  len(result.Graph.Nodes),
		EdgeCount:  len(result.Graph.Edges),
		Safe:       summary.Safe,
		Caution:    summary.Caution,
		Unsafe:     summary.Unsafe,
		DurationMs: 42,
	}
	if err := store.SaveRun(run, result, analyses); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	return run, result, analyses
}

func TestSaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	run, _, _ := saveTestRun(t, store, time.Now().UTC())

	got, err := store.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.ID != run.ID || got.FactsPath != run.FactsPath {
		t.Errorf("loaded run identity mismatch: %+v", got)
	}
	if got.NodeCount != 2 || got.EdgeCount != 1 {
		t.Errorf("loaded run counts = %d nodes %d edges, want 2/1", got.NodeCount, got.EdgeCount)
	}
	if got.DurationMs != 42 {
		t.Errorf("durationMs = %d, want 42", got.DurationMs)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGetRunNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetRun("missing")
	if !errors.IsCode(err, errors.RunNotFound) {
		t.Errorf("expected RUN_NOT_FOUND, got %v", err)
	}
}

func TestLatestRun(t *testing.T) {
	store := openTestStore(t)

	t.Run("ColdStart", func(t *testing.T) {
		_, err := store.LatestRun()
		if !errors.IsCode(err, errors.NoRuns) {
			t.Errorf("expected NO_RUNS, got %v", err)
		}
	})

	t.Run("NewestWins", func(t *testing.T) {
		base := time.Now().UTC()
		saveTestRun(t, store, base.Add(-time.Hour))
		newest, _, _ := saveTestRun(t, store, base)

		got, err := store.LatestRun()
		if err != nil {
			t.Fatalf("LatestRun failed: %v", err)
		}
		if got.ID != newest.ID {
			t.Errorf("latest run = %s, want %s", got.ID, newest.ID)
		}
	})
}

func TestListRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		saveTestRun(t, store, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("NewestFirst", func(t *testing.T) {
		runs, err := store.ListRuns(0)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		for i := 1; i < len(runs); i++ {
			if runs[i].CreatedAt.After(runs[i-1].CreatedAt) {
				t.Error("runs not ordered newest-first")
			}
		}
	})

	t.Run("Limit", func(t *testing.T) {
		runs, err := store.ListRuns(2)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(runs))
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	run, result, analyses := saveTestRun(t, store, time.Now().UTC())

	t.Run("Graph", func(t *testing.T) {
		loaded, err := store.LoadResult(run.ID)
		if err != nil {
			t.Fatalf("LoadResult failed: %v", err)
		}
		if len(loaded.Graph.Nodes) != len(result.Graph.Nodes) {
			t.Errorf("nodes = %d, want %d", len(loaded.Graph.Nodes), len(result.Graph.Nodes))
		}
		if len(loaded.Graph.Edges) != len(result.Graph.Edges) {
			t.Errorf("edges = %d, want %d", len(loaded.Graph.Edges), len(result.Graph.Edges))
		}
		if len(loaded.Metrics) != len(result.Metrics) {
			t.Errorf("metrics = %d, want %d", len(loaded.Metrics), len(result.Metrics))
		}
		if loaded.Metrics["node_1"].FanIn != result.Metrics["node_1"].FanIn {
			t.Error("metrics content changed across the round trip")
		}
	})

	t.Run("Analysis", func(t *testing.T) {
		loaded, err := store.LoadAnalysis(run.ID)
		if err != nil {
			t.Fatalf("LoadAnalysis failed: %v", err)
		}
		if len(loaded) != len(analyses) {
			t.Fatalf("analyses = %d, want %d", len(loaded), len(analyses))
		}
		for id, want := range analyses {
			got := loaded[id]
			if got == nil {
				t.Fatalf("missing analysis for %s", id)
			}
			if got.RiskScore != want.RiskScore || got.Classification != want.Classification {
				t.Errorf("%s: analysis changed across the round trip", id)
			}
		}
	})

	t.Run("UnknownRun", func(t *testing.T) {
		_, err := store.LoadResult("missing")
		if !errors.IsCode(err, errors.RunNotFound) {
			t.Errorf("expected RUN_NOT_FOUND, got %v", err)
		}
	})
}

func TestPing(t *testing.T) {
	store := openTestStore(t)
	if err := store.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
