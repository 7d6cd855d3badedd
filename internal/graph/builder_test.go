package graph

import (
	"testing"

	"migraph/internal/facts"
)

func fact(path, pkg string, classes, imports []string) facts.FileFact {
	return facts.FileFact{
		FilePath:    path,
		PackageName: pkg,
		ClassNames:  classes,
		Imports:     imports,
	}
}

func buildGraph(t *testing.T, ff []facts.FileFact) *Result {
	t.Helper()
	return NewBuilder(ff).Build()
}

func edgeSet(result *Result) map[[2]string]bool {
	set := make(map[[2]string]bool)
	for _, e := range result.Graph.Edges {
		set[[2]string{e.From, e.To}] = true
	}
	return set
}

func TestBuildEmptyBatch(t *testing.T) {
	result := buildGraph(t, nil)

	if len(result.Graph.Nodes) != 0 {
		t.Errorf("expected 0 nodes, got %d", len(result.Graph.Nodes))
	}
	if result.Graph.Edges == nil {
		t.Error("edges should be an empty slice, not nil")
	}
	if len(result.Metrics) != 0 {
		t.Errorf("expected empty metrics, got %d entries", len(result.Metrics))
	}
}

func TestCreateNodes(t *testing.T) {
	result := buildGraph(t, []facts.FileFact{
		fact("src/A.java", "com.acme", []string{"A"}, nil),
		fact("src/B.java", "", nil, nil),
	})

	if len(result.Graph.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(result.Graph.Nodes))
	}

	t.Run("SequentialIDs", func(t *testing.T) {
		for i, n := range result.Graph.Nodes {
			if n.ID != NodeID(i) {
				t.Errorf("node %d: expected id %s, got %s", i, NodeID(i), n.ID)
			}
			if n.Type != NodeType {
				t.Errorf("node %d: expected type %s, got %s", i, NodeType, n.Type)
			}
		}
	})

	t.Run("DefaultPackage", func(t *testing.T) {
		n := result.Graph.Nodes[1]
		if n.PackageName != DefaultPackage {
			t.Errorf("expected package %q, got %q", DefaultPackage, n.PackageName)
		}
		if n.ClassNames == nil {
			t.Error("classNames should be an empty slice, not nil")
		}
	})
}

func TestResolveImport(t *testing.T) {
	ff := []facts.FileFact{
		fact("src/StringUtils.java", "com.acme.util", []string{"StringUtils"}, nil),
		fact("src/Order.java", "com.acme.orders", []string{"Order"}, nil),
	}
	b := NewBuilder(ff)
	b.createNodes()
	b.buildNameIndex()

	tests := []struct {
		name       string
		importPath string
		want       string
	}{
		{"ExactQualified", "com.acme.util.StringUtils", "node_0"},
		{"BareClassName", "StringUtils", "node_0"},
		{"BarePackage", "com.acme.util", "node_0"},
		{"LongestPrefix", "com.acme.util.StringUtils.Builder", "node_0"},
		{"PrefixToPackage", "com.acme.orders.internal.Helper", "node_1"},
		{"Unresolved", "java.util.List", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.resolveImport(tt.importPath); got != tt.want {
				t.Errorf("resolveImport(%q) = %q, want %q", tt.importPath, got, tt.want)
			}
		})
	}
}

func TestNameIndexLastWriteWins(t *testing.T) {
	ff := []facts.FileFact{
		fact("src/a/Thing.java", "com.a", []string{"Thing"}, nil),
		fact("src/b/Thing.java", "com.b", []string{"Thing"}, nil),
		fact("src/Use.java", "com.use", []string{"Use"}, []string{"Thing"}),
	}
	result := buildGraph(t, ff)

	edges := edgeSet(result)
	if !edges[[2]string{"node_2", "node_1"}] {
		t.Error("bare name should resolve to the later registration (node_1)")
	}
	if edges[[2]string{"node_2", "node_0"}] {
		t.Error("bare name should not resolve to the earlier registration (node_0)")
	}
}

func TestCreateEdges(t *testing.T) {
	t.Run("DeduplicatesPerSource", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B", "B", "com.b"}),
			fact("src/B.java", "com.b", []string{"B"}, nil),
		}
		result := buildGraph(t, ff)
		if len(result.Graph.Edges) != 1 {
			t.Errorf("expected 1 edge after dedup, got %d", len(result.Graph.Edges))
		}
	})

	t.Run("SkipsSelfLoops", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.a.A"}),
		}
		result := buildGraph(t, ff)
		if len(result.Graph.Edges) != 0 {
			t.Errorf("expected 0 edges, got %d", len(result.Graph.Edges))
		}
	})

	t.Run("SkipsUnresolved", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"java.util.List", "org.else.Thing"}),
		}
		result := buildGraph(t, ff)
		if len(result.Graph.Edges) != 0 {
			t.Errorf("expected 0 edges, got %d", len(result.Graph.Edges))
		}
	})

	t.Run("EdgeType", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B"}),
			fact("src/B.java", "com.b", []string{"B"}, nil),
		}
		result := buildGraph(t, ff)
		if len(result.Graph.Edges) != 1 {
			t.Fatalf("expected 1 edge, got %d", len(result.Graph.Edges))
		}
		if result.Graph.Edges[0].Type != EdgeDependsOn {
			t.Errorf("expected edge type %s, got %s", EdgeDependsOn, result.Graph.Edges[0].Type)
		}
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("TwoNodeCycle", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B"}),
			fact("src/B.java", "com.b", []string{"B"}, []string{"com.a.A"}),
		}
		result := buildGraph(t, ff)
		for _, n := range result.Graph.Nodes {
			if !n.InCycle {
				t.Errorf("node %s should be in a cycle", n.ID)
			}
		}
	})

	t.Run("TriangleCycle", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B"}),
			fact("src/B.java", "com.b", []string{"B"}, []string{"com.c.C"}),
			fact("src/C.java", "com.c", []string{"C"}, []string{"com.a.A"}),
		}
		result := buildGraph(t, ff)
		for _, n := range result.Graph.Nodes {
			if !n.InCycle {
				t.Errorf("node %s should be in a cycle", n.ID)
			}
		}
	})

	t.Run("ChainHasNoCycle", func(t *testing.T) {
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B"}),
			fact("src/B.java", "com.b", []string{"B"}, []string{"com.c.C"}),
			fact("src/C.java", "com.c", []string{"C"}, nil),
		}
		result := buildGraph(t, ff)
		for _, n := range result.Graph.Nodes {
			if n.InCycle {
				t.Errorf("node %s should not be in a cycle", n.ID)
			}
		}
	})

	t.Run("TailIntoCycleStaysOut", func(t *testing.T) {
		// D -> A -> B -> A; only A and B cycle.
		ff := []facts.FileFact{
			fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B"}),
			fact("src/B.java", "com.b", []string{"B"}, []string{"com.a.A"}),
			fact("src/D.java", "com.d", []string{"D"}, []string{"com.a.A"}),
		}
		result := buildGraph(t, ff)
		for _, n := range result.Graph.Nodes {
			wantCycle := n.ID != "node_2"
			if n.InCycle != wantCycle {
				t.Errorf("node %s: inCycle = %v, want %v", n.ID, n.InCycle, wantCycle)
			}
		}
	})
}

func TestComputeMetrics(t *testing.T) {
	ff := []facts.FileFact{
		fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B", "com.c.C"}),
		fact("src/B.java", "com.b", []string{"B"}, []string{"com.c.C"}),
		fact("src/C.java", "com.c", []string{"C"}, nil),
	}
	result := buildGraph(t, ff)

	tests := []struct {
		id            string
		fanIn, fanOut int
	}{
		{"node_0", 0, 2},
		{"node_1", 1, 1},
		{"node_2", 2, 0},
	}
	for _, tt := range tests {
		m, ok := result.Metrics[tt.id]
		if !ok {
			t.Fatalf("missing metrics for %s", tt.id)
		}
		if m.FanIn != tt.fanIn {
			t.Errorf("%s: fanIn = %d, want %d", tt.id, m.FanIn, tt.fanIn)
		}
		if m.FanOut != tt.fanOut {
			t.Errorf("%s: fanOut = %d, want %d", tt.id, m.FanOut, tt.fanOut)
		}
		if m.CouplingScore != tt.fanIn+tt.fanOut {
			t.Errorf("%s: couplingScore = %d, want %d", tt.id, m.CouplingScore, tt.fanIn+tt.fanOut)
		}
	}
}

func TestMetricsCarryIndicators(t *testing.T) {
	f := fact("src/A.java", "com.a", []string{"A"}, nil)
	f.WritesToDb = true
	f.UsesReflection = true
	f.UsesAnnotations = true
	f.LineCount = 500

	result := buildGraph(t, []facts.FileFact{f})
	m := result.Metrics["node_0"]
	if !m.WritesToDb || !m.UsesReflection || !m.UsesAnnotations {
		t.Error("indicator flags should pass through to metrics")
	}
	if m.LineCount != 500 {
		t.Errorf("lineCount = %d, want 500", m.LineCount)
	}
}

func TestBuildDeterministic(t *testing.T) {
	ff := []facts.FileFact{
		fact("src/A.java", "com.a", []string{"A"}, []string{"com.b.B", "com.c.C"}),
		fact("src/B.java", "com.b", []string{"B"}, []string{"com.a.A"}),
		fact("src/C.java", "com.c", []string{"C"}, []string{"com.b"}),
	}

	first := buildGraph(t, ff)
	for i := 0; i < 5; i++ {
		next := buildGraph(t, ff)
		if len(next.Graph.Edges) != len(first.Graph.Edges) {
			t.Fatalf("edge count changed across builds: %d vs %d", len(next.Graph.Edges), len(first.Graph.Edges))
		}
		for j, e := range next.Graph.Edges {
			if *e != *first.Graph.Edges[j] {
				t.Fatalf("edge order changed across builds at %d", j)
			}
		}
	}
}
