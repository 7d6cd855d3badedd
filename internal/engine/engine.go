// Package engine wires the pipeline stages together: load facts, build the
// graph, score every node, and record the run. Both the CLI and the HTTP API
// drive the pipeline through this package.
package engine

import (
	"context"
	"time"

	"migraph/internal/analysis"
	"migraph/internal/facts"
	"migraph/internal/graph"
	"migraph/internal/logging"
	"migraph/internal/storage"
)

// Engine runs the analysis pipeline against a run store.
type Engine struct {
	store   *storage.Store
	logger  *logging.Logger
	workers int
}

// Result bundles everything a single pipeline execution produced.
type Result struct {
	Run      *storage.Run
	Graph    *graph.Result
	Analyses map[string]*analysis.Analysis
	Summary  analysis.Summary
}

// New creates an engine. Workers bounds the scoring pool; 0 means GOMAXPROCS.
func New(store *storage.Store, logger *logging.Logger, workers int) *Engine {
	return &Engine{
		store:   store,
		logger:  logger,
		workers: workers,
	}
}

// RunFile loads a facts batch from disk and executes the pipeline.
func (e *Engine) RunFile(ctx context.Context, factsPath string) (*Result, error) {
	batch, err := facts.LoadBatch(factsPath)
	if err != nil {
		return nil, err
	}
	return e.RunBatch(ctx, batch, factsPath)
}

// RunBatch executes the pipeline over an in-memory batch and records the run.
func (e *Engine) RunBatch(ctx context.Context, batch *facts.Batch, factsPath string) (*Result, error) {
	start := time.Now()

	e.logger.Info("Building dependency graph", map[string]interface{}{
		"files": len(batch.Files),
	})
	graphResult := graph.NewBuilder(batch.Files).Build()

	analyzer := analysis.NewAnalyzerWithWorkers(graphResult, e.workers)
	analyses, err := analyzer.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(analyses)

	run := &storage.Run{
		ID:         storage.NewRunID(),
		CreatedAt:  time.Now().UTC(),
		FactsPath:  factsPath,
		NodeCount:  len(graphResult.Graph.Nodes),
		EdgeCount:  len(graphResult.Graph.Edges),
		Safe:       summary.Safe,
		Caution:    summary.Caution,
		Unsafe:     summary.Unsafe,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := e.store.SaveRun(run, graphResult, analyses); err != nil {
		return nil, err
	}

	e.logger.Info("Analysis run complete", map[string]interface{}{
		"runId":   run.ID,
		"nodes":   run.NodeCount,
		"edges":   run.EdgeCount,
		"safe":    summary.Safe,
		"caution": summary.Caution,
		"unsafe":  summary.Unsafe,
	})

	return &Result{
		Run:      run,
		Graph:    graphResult,
		Analyses: analyses,
		Summary:  summary,
	}, nil
}
