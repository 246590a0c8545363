// Package callgraph implements C11: building the project-wide call graph
// from resolved call references and detecting entry points. It
// generalizes standardbeagle/lci's FunctionDependencyTracker.BuildCallGraph
// (internal/analysis/dependency_tracker.go) from a single mutable,
// incrementally-maintained map into a pure function the orchestrator
// calls fresh on every get_call_graph request, matching §5's
// "recomputed into a fresh snapshot" resolution-state policy.
package callgraph

import (
	"github.com/ariadne-lang/ariadne/internal/ariadne/registry"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
	"github.com/ariadne-lang/ariadne/internal/debug"
)

// Build constructs the call graph over every callable definition in defs
// and every resolved call reference in calls. A node is an entry point
// iff no non-callback call edge resolves to it (§4.11).
func Build(defs *registry.DefinitionRegistry, calls []*types.CallReference) *types.CallGraph {
	g := &types.CallGraph{
		Nodes: make(map[types.SymbolId]*types.CallGraphNode),
		Edges: make(map[types.SymbolId][]*types.CallReference),
	}

	for _, kind := range []types.DefinitionKind{types.DefFunction, types.DefMethod, types.DefConstructor} {
		for _, d := range defs.ByKind(kind) {
			g.Nodes[d.SymbolId] = &types.CallGraphNode{SymbolId: d.SymbolId, IsEntry: true}
		}
	}

	targeted := make(map[types.SymbolId]bool)
	for _, cr := range calls {
		if cr.CallerSymbolId != "" {
			g.Edges[cr.CallerSymbolId] = append(g.Edges[cr.CallerSymbolId], cr)
		}
		if cr.IsCallbackInvocation {
			continue
		}
		for _, res := range cr.Resolutions {
			targeted[res.SymbolId] = true
			if node, ok := g.Nodes[res.SymbolId]; ok {
				node.IsEntry = false
				if cr.CallerSymbolId != "" {
					node.CalledBy = append(node.CalledBy, cr.CallerSymbolId)
				}
			}
		}
	}

	for id, node := range g.Nodes {
		if node.IsEntry {
			g.EntryPoints = append(g.EntryPoints, id)
		}
		node.TreeSize = treeSize(id, g.Edges)
	}

	debug.LogCallGraph("built graph over %d nodes, %d entry points", len(g.Nodes), len(g.EntryPoints))
	return g
}

// treeSize performs a DFS with a visited set over call edges, counting
// unique transitively reachable callables (§4.11).
func treeSize(root types.SymbolId, edges map[types.SymbolId][]*types.CallReference) int {
	visited := make(map[types.SymbolId]bool)
	var visit func(id types.SymbolId)
	visit = func(id types.SymbolId) {
		for _, cr := range edges[id] {
			for _, res := range cr.Resolutions {
				if !visited[res.SymbolId] {
					visited[res.SymbolId] = true
					visit(res.SymbolId)
				}
			}
		}
	}
	visit(root)
	return len(visited)
}
