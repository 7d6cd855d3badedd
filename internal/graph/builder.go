package graph

import (
	"fmt"
	"strings"

	"migraph/internal/facts"
)

// Builder constructs the dependency graph from a complete facts batch.
// It holds no state across runs; every Build starts from the input slice.
type Builder struct {
	facts []facts.FileFact

	nodes     []*Node
	edges     []*Edge
	nameIndex map[string]string
	adjacency map[string][]string
}

// NewBuilder creates a Builder over the given facts. The slice is read-only
// from the builder's point of view.
func NewBuilder(ff []facts.FileFact) *Builder {
	return &Builder{
		facts:     ff,
		nameIndex: make(map[string]string),
		adjacency: make(map[string][]string),
	}
}

// Build runs the full graph stage: nodes, name index, edges, cycle flags,
// metrics. An empty batch yields an empty, valid result. Build never fails;
// malformed facts have already been defaulted at decode time.
func (b *Builder) Build() *Result {
	b.createNodes()
	b.buildNameIndex()
	b.createEdges()
	b.detectCycles()
	metrics := b.computeMetrics()

	return &Result{
		Graph:   &Graph{Nodes: b.nodes, Edges: b.edges},
		Metrics: metrics,
	}
}

// NodeID returns the synthetic id for the fact at the given input position.
func NodeID(idx int) string {
	return fmt.Sprintf("node_%d", idx)
}

func (b *Builder) createNodes() {
	b.nodes = make([]*Node, 0, len(b.facts))
	for idx, f := range b.facts {
		pkg := f.PackageName
		if pkg == "" {
			pkg = DefaultPackage
		}
		classNames := f.ClassNames
		if classNames == nil {
			classNames = []string{}
		}
		b.nodes = append(b.nodes, &Node{
			ID:          NodeID(idx),
			Type:        NodeType,
			FilePath:    f.FilePath,
			PackageName: pkg,
			ClassNames:  classNames,

			LineCount:         f.LineCount,
			MethodCount:       f.MethodCount,
			ClassCount:        f.ClassCount,
			FieldCount:        f.FieldCount,
			ImportCount:       f.ImportCount,
			CatchBlockCount:   f.CatchBlockCount,
			StaticMethodCount: f.StaticMethodCount,

			ReadsFromDb:          f.ReadsFromDb,
			WritesToDb:           f.WritesToDb,
			UsesReflection:       f.UsesReflection,
			UsesThreading:        f.UsesThreading,
			UsesStreams:          f.UsesStreams,
			UsesGenerics:         f.UsesGenerics,
			UsesAnnotations:      f.UsesAnnotations,
			HasInheritance:       f.HasInheritance,
			ImplementsInterfaces: f.ImplementsInterfaces,
			HasInnerClasses:      f.HasInnerClasses,
			ThrowsExceptions:     f.ThrowsExceptions,
		})
	}
}

// buildNameIndex registers, for every node, three key kinds: the qualified
// package.Type name, the bare type name, and the bare package name. On
// collision the later registration wins; this ambiguity is deliberate and
// downstream scoring assumes it.
func (b *Builder) buildNameIndex() {
	for _, n := range b.nodes {
		pkg := n.PackageName
		for _, cls := range n.ClassNames {
			qualified := cls
			if pkg != "" {
				qualified = pkg + "." + cls
			}
			b.nameIndex[qualified] = n.ID
			b.nameIndex[cls] = n.ID
		}
		if pkg != "" {
			b.nameIndex[pkg] = n.ID
		}
	}
}

// resolveImport maps an import path to a node id. Exact match first, then
// longest-prefix fallback stripping one trailing dotted segment at a time.
// Returns "" when nothing matches; an unresolved import is not an error.
func (b *Builder) resolveImport(importPath string) string {
	if id, ok := b.nameIndex[importPath]; ok {
		return id
	}

	parts := strings.Split(importPath, ".")
	for i := len(parts); i > 0; i-- {
		candidate := strings.Join(parts[:i], ".")
		if id, ok := b.nameIndex[candidate]; ok {
			return id
		}
	}

	return ""
}

func (b *Builder) createEdges() {
	for idx, f := range b.facts {
		fromID := NodeID(idx)
		seen := make(map[string]bool)

		for _, imp := range f.Imports {
			toID := b.resolveImport(imp)
			if toID == "" || toID == fromID || seen[toID] {
				continue
			}
			b.edges = append(b.edges, &Edge{From: fromID, To: toID, Type: EdgeDependsOn})
			b.adjacency[fromID] = append(b.adjacency[fromID], toID)
			seen[toID] = true
		}
	}
	if b.edges == nil {
		b.edges = []*Edge{}
	}
}

// detectCycles flags every node that participates in at least one cycle.
// Depth-first traversal from every unvisited root; when a node already on
// the recursion stack is reached, the whole path segment from its first
// occurrence through the current node is in a cycle. Fully-visited nodes
// are not re-explored.
func (b *Builder) detectCycles() {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	inCycle := make(map[string]bool)

	var dfs func(id string, path []string)
	dfs = func(id string, path []string) {
		if onStack[id] {
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			for _, p := range path[start:] {
				inCycle[p] = true
			}
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true
		onStack[id] = true
		for _, next := range b.adjacency[id] {
			dfs(next, append(path, next))
		}
		onStack[id] = false
	}

	for _, n := range b.nodes {
		if !visited[n.ID] {
			dfs(n.ID, []string{n.ID})
		}
	}

	// The single inCycle write; metrics and analysis read it afterwards.
	for _, n := range b.nodes {
		if inCycle[n.ID] {
			n.InCycle = true
		}
	}
}

func (b *Builder) computeMetrics() map[string]*Metrics {
	fanIn := make(map[string]int)
	fanOut := make(map[string]int)
	for _, e := range b.edges {
		fanOut[e.From]++
		fanIn[e.To]++
	}

	metrics := make(map[string]*Metrics, len(b.nodes))
	for _, n := range b.nodes {
		metrics[n.ID] = &Metrics{
			NodeID:        n.ID,
			FilePath:      n.FilePath,
			FanIn:         fanIn[n.ID],
			FanOut:        fanOut[n.ID],
			CouplingScore: fanIn[n.ID] + fanOut[n.ID],
			InCycle:       n.InCycle,

			LineCount:         n.LineCount,
			MethodCount:       n.MethodCount,
			ClassCount:        n.ClassCount,
			FieldCount:        n.FieldCount,
			ImportCount:       n.ImportCount,
			CatchBlockCount:   n.CatchBlockCount,
			StaticMethodCount: n.StaticMethodCount,

			ReadsFromDb:          n.ReadsFromDb,
			WritesToDb:           n.WritesToDb,
			UsesReflection:       n.UsesReflection,
			UsesThreading:        n.UsesThreading,
			UsesStreams:          n.UsesStreams,
			UsesGenerics:         n.UsesGenerics,
			UsesAnnotations:      n.UsesAnnotations,
			HasInheritance:       n.HasInheritance,
			ImplementsInterfaces: n.ImplementsInterfaces,
			HasInnerClasses:      n.HasInnerClasses,
			ThrowsExceptions:     n.ThrowsExceptions,
		}
	}
	return metrics
}
