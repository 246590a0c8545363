// Package scope builds a file's lexical scope tree from the "scope"
// category of captures the query executor (C2) yields. It is grounded on
// standardbeagle/lci's ScopeManager (internal/symbollinker/extractor.go),
// generalized from that type's push/pop-during-traversal style into a
// sort-and-stack containment build over whole-construct capture spans —
// the two are equivalent for well-nested source, and the latter needs no
// second AST walk once C2 has already produced capture nodes.
package scope

import (
	"sort"

	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// entityScopeType maps a "scope.<entity>" capture's entity segment to its
// ScopeType. Every language adapter emits exactly these entity names.
var entityScopeType = map[string]types.ScopeType{
	"module":        types.ScopeModule,
	"function":      types.ScopeFunction,
	"class":         types.ScopeClass,
	"block":         types.ScopeBlock,
	"comprehension": types.ScopeComprehension,
	"loop":          types.ScopeLoop,
	"arrow":         types.ScopeArrow,
}

// Build constructs the scope tree for one file from its scope-category
// captures. Every capture is expected to span its whole construct
// (header and body together — see adapter.Adapter.Queries' doc), so
// nesting is exactly interval containment: scope A is scope B's parent
// iff A's span is the smallest span among the results that strictly
// contains B's span.
func Build(file types.FilePath, captures []capture.CaptureNode) (rootID types.ScopeId, scopes map[types.ScopeId]*types.LexicalScope) {
	scopes = make(map[types.ScopeId]*types.LexicalScope)

	var spans []capture.CaptureNode
	for _, c := range captures {
		if c.Category != capture.CategoryScope {
			continue
		}
		if _, ok := entityScopeType[c.Entity]; !ok {
			continue
		}
		spans = append(spans, c)
	}
	if len(spans) == 0 {
		return "", scopes
	}

	// Pre-order nesting sequence: by start ascending, then by end
	// descending so an outer scope starting at the same point as an
	// inner one (e.g. a function and its immediate body block) is
	// visited first.
	sort.SliceStable(spans, func(i, j int) bool {
		li, lj := spans[i].Location, spans[j].Location
		if li.StartLine != lj.StartLine {
			return li.StartLine < lj.StartLine
		}
		if li.StartCol != lj.StartCol {
			return li.StartCol < lj.StartCol
		}
		if li.EndLine != lj.EndLine {
			return li.EndLine > lj.EndLine
		}
		return li.EndCol > lj.EndCol
	})

	type frame struct {
		id  types.ScopeId
		loc types.Location
	}
	var stack []frame

	for _, c := range spans {
		scopeType := entityScopeType[c.Entity]
		loc := c.Location

		for len(stack) > 0 && !stack[len(stack)-1].loc.Contains(loc) {
			stack = stack[:len(stack)-1]
		}

		id := types.NewScopeId(scopeType, file, loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
		if _, exists := scopes[id]; exists {
			// Two captures of the same scope type produced an identical
			// span; keep the first and skip the duplicate.
			continue
		}

		ls := &types.LexicalScope{
			ID:       id,
			Type:     scopeType,
			Location: loc,
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			ls.ParentID = parent.id
			if p, ok := scopes[parent.id]; ok {
				p.Children = append(p.Children, id)
			}
		} else {
			rootID = id
		}
		scopes[id] = ls
		stack = append(stack, frame{id: id, loc: loc})
	}

	return rootID, scopes
}

// Enclosing returns the smallest scope in scopes whose Location contains
// loc — the generic "what scope is this definition/reference in" lookup
// every later pass (C4, C5, C8) uses.
func Enclosing(scopes map[types.ScopeId]*types.LexicalScope, loc types.Location) types.ScopeId {
	var best types.ScopeId
	var bestSize int64 = -1
	for id, s := range scopes {
		if !s.Location.Contains(loc) {
			continue
		}
		size := spanSize(s.Location)
		if bestSize == -1 || size < bestSize {
			bestSize = size
			best = id
		}
	}
	return best
}

func spanSize(loc types.Location) int64 {
	lines := int64(loc.EndLine - loc.StartLine)
	return lines*100000 + int64(loc.EndCol-loc.StartCol)
}
