package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariadne-lang/ariadne/internal/ariadne/callgraph"
	"github.com/ariadne-lang/ariadne/internal/ariadne/registry"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

func fn(file types.FilePath, name string) *types.Definition {
	return &types.Definition{
		SymbolId: types.NewSymbolId(types.DefFunction, file, 1, 1, name),
		Name:     name,
		Kind:     types.DefFunction,
		Location: types.Location{FilePath: file},
	}
}

func call(caller, callee *types.Definition) *types.CallReference {
	return &types.CallReference{
		CallerSymbolId: caller.SymbolId,
		Resolutions:    []types.Resolution{{SymbolId: callee.SymbolId, Confidence: types.ConfidenceCertain}},
	}
}

// A function with no incoming non-callback call edge is an entry point;
// a function that is called is not, even transitively.
func TestBuild_EntryPoints(t *testing.T) {
	defs := registry.NewDefinitionRegistry()
	main := fn("a.js", "main")
	greet := fn("a.js", "greet")
	unreachable := fn("a.js", "unreachable")
	defs.AddFile("a.js", []*types.Definition{main, greet, unreachable})

	graph := callgraph.Build(defs, []*types.CallReference{call(main, greet)})

	assert.True(t, graph.Nodes[main.SymbolId].IsEntry)
	assert.False(t, graph.Nodes[greet.SymbolId].IsEntry)
	assert.True(t, graph.Nodes[unreachable.SymbolId].IsEntry)
	assert.ElementsMatch(t, []types.SymbolId{main.SymbolId, unreachable.SymbolId}, graph.EntryPoints)
}

// A callback invocation edge does not disqualify its target from being
// an entry point (§4.11): passing a function as a callback argument is
// not the same as calling it.
func TestBuild_CallbackInvocationDoesNotClearEntry(t *testing.T) {
	defs := registry.NewDefinitionRegistry()
	runner := fn("a.js", "runner")
	callback := fn("a.js", "callback")
	defs.AddFile("a.js", []*types.Definition{runner, callback})

	cr := call(runner, callback)
	cr.IsCallbackInvocation = true

	graph := callgraph.Build(defs, []*types.CallReference{cr})
	assert.True(t, graph.Nodes[callback.SymbolId].IsEntry)
}

// TreeSize counts unique transitively reachable callables, not total
// edges traversed, so a diamond call shape isn't double-counted.
func TestBuild_TreeSizeDiamond(t *testing.T) {
	defs := registry.NewDefinitionRegistry()
	top := fn("a.js", "top")
	left := fn("a.js", "left")
	right := fn("a.js", "right")
	shared := fn("a.js", "shared")
	defs.AddFile("a.js", []*types.Definition{top, left, right, shared})

	calls := []*types.CallReference{
		call(top, left),
		call(top, right),
		call(left, shared),
		call(right, shared),
	}
	graph := callgraph.Build(defs, calls)

	node, ok := graph.Nodes[top.SymbolId]
	require.True(t, ok)
	assert.Equal(t, 3, node.TreeSize) // left, right, shared -- shared counted once
}
