// Package graph builds the file-level dependency graph from parsed facts:
// nodes, resolved DEPENDS_ON edges, cycle flags, and structural metrics.
package graph

// NodeType is the only node type in the file graph.
const NodeType = "FILE"

// EdgeDependsOn tags a resolved import edge.
const EdgeDependsOn = "DEPENDS_ON"

// DefaultPackage is the namespace assigned to files with no package declaration.
const DefaultPackage = "default"

// Node is one source file in the dependency graph. It carries a copy of the
// file's structural indicators plus the derived inCycle flag, which is
// written exactly once during cycle detection.
type Node struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	FilePath    string   `json:"filePath"`
	PackageName string   `json:"packageName"`
	ClassNames  []string `json:"classNames"`
	InCycle     bool     `json:"inCycle"`

	LineCount         int `json:"lineCount"`
	MethodCount       int `json:"methodCount"`
	ClassCount        int `json:"classCount"`
	FieldCount        int `json:"fieldCount"`
	ImportCount       int `json:"importCount"`
	CatchBlockCount   int `json:"catchBlockCount"`
	StaticMethodCount int `json:"staticMethodCount"`

	ReadsFromDb          bool `json:"readsFromDb"`
	WritesToDb           bool `json:"writesToDb"`
	UsesReflection       bool `json:"usesReflection"`
	UsesThreading        bool `json:"usesThreading"`
	UsesStreams          bool `json:"usesStreams"`
	UsesGenerics         bool `json:"usesGenerics"`
	UsesAnnotations      bool `json:"usesAnnotations"`
	HasInheritance       bool `json:"hasInheritance"`
	ImplementsInterfaces bool `json:"implementsInterfaces"`
	HasInnerClasses      bool `json:"hasInnerClasses"`
	ThrowsExceptions     bool `json:"throwsExceptions"`
}

// Edge is a resolved dependency: From references To through an import.
// Edges are deduplicated per (from, to) pair and never point at their own
// source node.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// Graph is the ordered node list plus the edge list. Node order is input
// order; it matters only for deterministic iteration.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// Metrics holds the per-node structural metrics computed once after edge
// resolution: fan-in, fan-out, coupling, and indicator pass-throughs.
type Metrics struct {
	NodeID        string `json:"nodeId"`
	FilePath      string `json:"filePath"`
	FanIn         int    `json:"fanIn"`
	FanOut        int    `json:"fanOut"`
	CouplingScore int    `json:"couplingScore"`
	InCycle       bool   `json:"inCycle"`

	LineCount         int `json:"lineCount"`
	MethodCount       int `json:"methodCount"`
	ClassCount        int `json:"classCount"`
	FieldCount        int `json:"fieldCount"`
	ImportCount       int `json:"importCount"`
	CatchBlockCount   int `json:"catchBlockCount"`
	StaticMethodCount int `json:"staticMethodCount"`

	ReadsFromDb          bool `json:"readsFromDb"`
	WritesToDb           bool `json:"writesToDb"`
	UsesReflection       bool `json:"usesReflection"`
	UsesThreading        bool `json:"usesThreading"`
	UsesStreams          bool `json:"usesStreams"`
	UsesGenerics         bool `json:"usesGenerics"`
	UsesAnnotations      bool `json:"usesAnnotations"`
	HasInheritance       bool `json:"hasInheritance"`
	ImplementsInterfaces bool `json:"implementsInterfaces"`
	HasInnerClasses      bool `json:"hasInnerClasses"`
	ThrowsExceptions     bool `json:"throwsExceptions"`
}

// Result is the complete output of the graph stage.
type Result struct {
	Graph   *Graph              `json:"graph"`
	Metrics map[string]*Metrics `json:"metrics"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
