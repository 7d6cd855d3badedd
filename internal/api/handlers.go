package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"migraph/internal/errors"
	"migraph/internal/facts"
	"migraph/internal/plan"
	"migraph/internal/storage"
)

// StatusResponse summarizes the latest run.
type StatusResponse struct {
	Status    string       `json:"status"`
	LatestRun *storage.Run `json:"latestRun,omitempty"`
}

// handleStatus reports the latest run, or an explicit cold-start marker so
// operators can tell "no data yet" from a failing store.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	run, err := s.store.LatestRun()
	if err != nil {
		if errors.IsCode(err, errors.NoRuns) {
			WriteJSON(w, StatusResponse{Status: "no-runs"}, http.StatusOK)
			return
		}
		WriteError(w, err)
		return
	}

	WriteJSON(w, StatusResponse{Status: "ok", LatestRun: run}, http.StatusOK)
}

// AnalyzeRequest is the POST /analyze body. Either an inline facts batch or
// a path to one on disk; inline wins when both are present.
type AnalyzeRequest struct {
	Files     []facts.FileFact `json:"files,omitempty"`
	FactsPath string           `json:"factsPath,omitempty"`
}

// AnalyzeResponse returns the recorded run and its tier tally.
type AnalyzeResponse struct {
	Run     *storage.Run `json:"run"`
	Safe    int          `json:"safe"`
	Caution int          `json:"caution"`
	Unsafe  int          `json:"unsafe"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid analyze request body")
		return
	}

	var result *engineResult
	if len(req.Files) > 0 {
		res, err := s.engine.RunBatch(r.Context(), &facts.Batch{Files: req.Files}, "inline")
		if err != nil {
			WriteError(w, err)
			return
		}
		result = &engineResult{res.Run, res.Summary.Safe, res.Summary.Caution, res.Summary.Unsafe}
	} else if req.FactsPath != "" {
		res, err := s.engine.RunFile(r.Context(), req.FactsPath)
		if err != nil {
			WriteError(w, err)
			return
		}
		result = &engineResult{res.Run, res.Summary.Safe, res.Summary.Caution, res.Summary.Unsafe}
	} else {
		BadRequest(w, "either files or factsPath is required")
		return
	}

	WriteJSON(w, AnalyzeResponse{
		Run:     result.run,
		Safe:    result.safe,
		Caution: result.caution,
		Unsafe:  result.unsafe,
	}, http.StatusCreated)
}

type engineResult struct {
	run                   *storage.Run
	safe, caution, unsafe int
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	runs, err := s.store.ListRuns(0)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, map[string]interface{}{"runs": runs}, http.StatusOK)
}

// handleRunRoutes dispatches /runs/:id and its sub-resources.
func (s *Server) handleRunRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/runs/"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	runID := parts[0]

	switch {
	case len(parts) == 1:
		s.handleGetRun(w, runID)
	case len(parts) == 2 && parts[1] == "graph":
		s.handleGetGraph(w, runID)
	case len(parts) == 2 && parts[1] == "metrics":
		s.handleGetMetrics(w, runID)
	case len(parts) == 2 && parts[1] == "analysis":
		s.handleGetAnalysis(w, runID)
	case len(parts) == 3 && parts[1] == "analysis":
		s.handleGetNodeAnalysis(w, runID, parts[2])
	case len(parts) == 2 && parts[1] == "plan":
		s.handleGetPlan(w, runID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetRun(w http.ResponseWriter, runID string) {
	run, err := s.store.GetRun(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, run, http.StatusOK)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, runID string) {
	result, err := s.store.LoadResult(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, result.Graph, http.StatusOK)
}

func (s *Server) handleGetMetrics(w http.ResponseWriter, runID string) {
	result, err := s.store.LoadResult(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, result.Metrics, http.StatusOK)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, runID string) {
	analyses, err := s.store.LoadAnalysis(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, analyses, http.StatusOK)
}

func (s *Server) handleGetNodeAnalysis(w http.ResponseWriter, runID, nodeID string) {
	analyses, err := s.store.LoadAnalysis(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	a, ok := analyses[nodeID]
	if !ok {
		WriteError(w, errors.New(errors.NodeNotFound,
			"node "+nodeID+" is not part of run "+runID, nil))
		return
	}
	WriteJSON(w, a, http.StatusOK)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, runID string) {
	analyses, err := s.store.LoadAnalysis(runID)
	if err != nil {
		WriteError(w, err)
		return
	}
	waivers, err := plan.LoadWaivers(s.projectRoot)
	if err != nil {
		WriteError(w, errors.New(errors.InternalError, "failed to load waivers", err))
		return
	}
	WriteJSON(w, plan.Build(runID, analyses, waivers), http.StatusOK)
}
