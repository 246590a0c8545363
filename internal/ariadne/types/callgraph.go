package types

// CallGraphNode is one callable definition's position in the project-wide
// call graph, generalizing standardbeagle/lci's CallGraphNode
// (internal/analysis/dependency_tracker.go) from a single-language,
// mutation-tracked structure into the plain immutable snapshot C11
// rebuilds on each get_call_graph call.
type CallGraphNode struct {
	SymbolId   SymbolId
	IsEntry    bool // no non-callback call edge targets this symbol
	CalledBy   []SymbolId
	TreeSize   int // count of transitively reachable unique callables
}

// CallGraph is C11's output: every callable node, every call reference
// keyed by its caller, and the subset of nodes with no incoming
// non-callback edge.
type CallGraph struct {
	Nodes       map[SymbolId]*CallGraphNode
	Edges       map[SymbolId][]*CallReference
	EntryPoints []SymbolId
}
