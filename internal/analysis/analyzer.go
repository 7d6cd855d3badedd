package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"migraph/internal/errors"
	"migraph/internal/graph"
)

// Analyzer computes per-node analyses over a completed graph result. The
// graph and metrics are immutable shared state; the analyzer only reads
// them, so per-node scoring can run concurrently across disjoint output
// slots.
type Analyzer struct {
	result  *graph.Result
	reverse map[string][]string // to -> froms: "who depends on me"
	workers int
}

// NewAnalyzer creates an analyzer over a graph result. Worker count defaults
// to GOMAXPROCS.
func NewAnalyzer(result *graph.Result) *Analyzer {
	return NewAnalyzerWithWorkers(result, 0)
}

// NewAnalyzerWithWorkers creates an analyzer with an explicit worker count.
// A count of zero or less means GOMAXPROCS.
func NewAnalyzerWithWorkers(result *graph.Result, workers int) *Analyzer {
	a := &Analyzer{
		result:  result,
		reverse: make(map[string][]string),
		workers: workers,
	}
	a.buildDependencyMap()
	return a
}

// buildDependencyMap inverts the edge list: for every node, the set of
// nodes that depend on it. Blast radius follows this reverse relation, not
// the node's own dependencies.
func (a *Analyzer) buildDependencyMap() {
	for _, e := range a.result.Graph.Edges {
		a.reverse[e.To] = append(a.reverse[e.To], e.From)
	}
}

// Analyze scores every node and returns the analysis map keyed by node id.
// A node present in the graph but missing from metrics means the two stages
// were run against mismatched inputs; that is a caller contract violation
// and fails the whole call.
func (a *Analyzer) Analyze(ctx context.Context) (map[string]*Analysis, error) {
	nodes := a.result.Graph.Nodes
	for _, n := range nodes {
		if _, ok := a.result.Metrics[n.ID]; !ok {
			return nil, errors.New(errors.GraphMismatch,
				fmt.Sprintf("metrics missing for node %s (%s)", n.ID, n.FilePath), nil)
		}
	}

	slots := make([]*Analysis, len(nodes))

	workers := a.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(nodes) {
		workers = len(nodes)
	}
	if workers <= 1 {
		for i, n := range nodes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slots[i] = a.analyzeNode(n)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					slots[i] = a.analyzeNode(nodes[i])
				}
			}()
		}
		var cancelled error
		for i := range nodes {
			if err := ctx.Err(); err != nil {
				cancelled = err
				break
			}
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		if cancelled != nil {
			return nil, cancelled
		}
	}

	results := make(map[string]*Analysis, len(nodes))
	for _, s := range slots {
		results[s.NodeID] = s
	}
	return results, nil
}

// AnalyzeNode scores a single node by id.
func (a *Analyzer) AnalyzeNode(id string) (*Analysis, error) {
	n := a.result.Graph.Node(id)
	if n == nil {
		return nil, errors.New(errors.NodeNotFound,
			fmt.Sprintf("node %s is not part of the graph", id), nil)
	}
	if _, ok := a.result.Metrics[id]; !ok {
		return nil, errors.New(errors.GraphMismatch,
			fmt.Sprintf("metrics missing for node %s (%s)", id, n.FilePath), nil)
	}
	return a.analyzeNode(n), nil
}

func (a *Analyzer) analyzeNode(n *graph.Node) *Analysis {
	m := a.result.Metrics[n.ID]
	blast := a.blastRadius(n.ID)
	complexity := ComplexityScore(m)
	risk := RiskScore(m, blast, complexity)
	convertibility := ConvertibilityScore(m, blast)

	return &Analysis{
		NodeID:              n.ID,
		FilePath:            n.FilePath,
		RiskScore:           risk,
		ComplexityScore:     complexity,
		ConvertibilityScore: convertibility,
		BlastRadius:         blast,
		Classification:      Classify(risk, blast, m, complexity),
		Metrics:             m,
	}
}

// blastRadius walks the reverse-dependency relation breadth-first from the
// node, visiting each reachable dependent once. The start node itself is
// counted only when a cycle leads back to it.
func (a *Analyzer) blastRadius(id string) *BlastRadius {
	visited := make(map[string]bool)
	queue := []string{id}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range a.reverse[cur] {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	total := len(a.result.Graph.Nodes)
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(len(visited))/float64(total)*100*100) / 100
	}
	return &BlastRadius{
		AffectedNodes: len(visited),
		TotalNodes:    total,
		Percentage:    pct,
	}
}
