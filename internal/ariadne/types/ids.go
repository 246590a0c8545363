// Package types defines the value-typed data model shared by every stage
// of the indexing pipeline: positions, identifiers, scopes, definitions,
// references and the resolver's output. Nothing in this package owns a
// pointer into another file's data — everything is addressed by the
// identifier keys defined here, so a file's contribution can be dropped
// from every registry in one pass.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FilePath is a project-root-relative path with '/' separators,
// canonicalized by the caller before it reaches this package.
type FilePath = string

// SymbolName and NamespaceName are opaque identifier strings; kept as
// distinct aliases so call sites read as intent rather than "a string".
type SymbolName = string
type NamespaceName = string

// Point is a tree-sitter-style position: 0-based row, UTF-8 column offset.
type Point struct {
	Row    int
	Column int
}

// Location is a 1-based, end-exclusive span within one file.
type Location struct {
	FilePath   FilePath
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
}

// Contains reports whether other lies entirely within loc, in the same file.
func (loc Location) Contains(other Location) bool {
	if loc.FilePath != other.FilePath {
		return false
	}
	if other.StartLine < loc.StartLine || (other.StartLine == loc.StartLine && other.StartCol < loc.StartCol) {
		return false
	}
	if other.EndLine > loc.EndLine || (other.EndLine == loc.EndLine && other.EndCol > loc.EndCol) {
		return false
	}
	return true
}

func (loc Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", loc.FilePath, loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
}

// hashKey produces a stable, compact hex digest of a composite key.
// Implementations of SymbolId/ScopeId/TypeId are permitted to hash their
// keys (spec §3); xxhash is used the way the teacher's CompositeSymbolID
// encodes a dense, comparable key.
func hashKey(parts ...string) string {
	h := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write(sepBytes)
		}
		_, _ = h.Write([]byte(p))
	}
	return strconv.FormatUint(h.Sum64(), 36)
}

var sepBytes = []byte{0}

// SymbolId is the canonical key for a definition: kind:file:start_line:start_col:name,
// hashed for compactness. Stable across re-indexing of unchanged source.
type SymbolId string

// NewSymbolId derives the canonical SymbolId for a definition.
func NewSymbolId(kind DefinitionKind, file FilePath, startLine, startCol int, name string) SymbolId {
	raw := fmt.Sprintf("%s:%s:%d:%d:%s", kind, file, startLine, startCol, name)
	return SymbolId("sym_" + hashKey(raw))
}

// ScopeId is kind:file:start_line:start_col:end_line:end_col. Left
// un-hashed (unlike SymbolId) because scope ids are printed constantly
// while debugging scope-tree construction and a literal key is easier
// to eyeball in a failing test.
type ScopeId string

// NewScopeId derives the canonical ScopeId for a scope-forming construct.
func NewScopeId(kind ScopeType, file FilePath, startLine, startCol, endLine, endCol int) ScopeId {
	return ScopeId(fmt.Sprintf("%s:%s:%d:%d:%d:%d", kind, file, startLine, startCol, endLine, endCol))
}

// TypeId represents a declared class/interface/struct/trait: type:name:file.
type TypeId string

// NewTypeId derives the canonical TypeId for a declared type.
func NewTypeId(name SymbolName, file FilePath) TypeId {
	return TypeId(fmt.Sprintf("type:%s:%s", name, file))
}

// Name extracts the declared name back out of a TypeId built by NewTypeId.
func (t TypeId) Name() SymbolName {
	s := string(t)
	rest := strings.TrimPrefix(s, "type:")
	if idx := strings.LastIndex(rest, ":"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// File extracts the owning file path back out of a TypeId built by NewTypeId.
func (t TypeId) File() FilePath {
	s := string(t)
	rest := strings.TrimPrefix(s, "type:")
	if idx := strings.LastIndex(rest, ":"); idx >= 0 {
		return rest[idx+1:]
	}
	return ""
}
