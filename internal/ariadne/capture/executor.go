// Package capture runs compiled tree-sitter queries against a syntax tree
// and yields CaptureNodes in source order, exactly as C2 ("Query Executor")
// specifies. It is grounded on standardbeagle/lci's internal/parser query
// loop (tree_sitter.NewQueryCursor / qc.Matches / match.Captures /
// query.CaptureNames), generalized from that package's single hard-coded
// capture vocabulary to the language-agnostic "@category.entity.qualifier"
// schema §4.1 defines.
package capture

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// Category is the first segment of a capture name.
type Category string

const (
	CategoryScope      Category = "scope"
	CategoryDefinition Category = "definition"
	CategoryReference  Category = "reference"
	CategoryImport     Category = "import"
	CategoryExport     Category = "export"
	CategoryType       Category = "type"
	CategoryAssignment Category = "assignment"
	CategoryReturn     Category = "return"
	CategoryDecorator  Category = "decorator"
	CategoryModifier   Category = "modifier"
)

// CaptureNode is one yielded capture: a syntax node tagged with the
// category/entity/qualifier it matched, plus its text and location.
type CaptureNode struct {
	Category  Category
	Entity    string
	Qualifier string // "" if the capture name carried no third segment
	Name      string // full original capture name, e.g. "definition.function.name"
	Text      string
	Location  types.Location
	Node      *sitter.Node
}

// ParseCaptureName splits "@category.entity[.qualifier]" into its parts.
func ParseCaptureName(name string) (category Category, entity string, qualifier string) {
	parts := strings.SplitN(name, ".", 3)
	if len(parts) == 0 {
		return "", "", ""
	}
	category = Category(parts[0])
	if len(parts) > 1 {
		entity = parts[1]
	}
	if len(parts) > 2 {
		qualifier = parts[2]
	}
	return category, entity, qualifier
}

// ErrParseBudgetExceeded reports a file whose source exceeded the parser's
// byte budget (§4.2). Run itself never returns it; when an executor does,
// the orchestrator records a FileTooLarge diagnostic for the file.
type ErrParseBudgetExceeded struct {
	File string
}

func (e *ErrParseBudgetExceeded) Error() string {
	return fmt.Sprintf("parse budget exceeded for %s", e.File)
}

// Executor runs compiled queries against a syntax tree.
type Executor struct{}

// NewExecutor constructs a stateless query executor.
func NewExecutor() *Executor { return &Executor{} }

// Run executes query against tree, returning every capture in the match
// set. Captures are stable-sorted by start (line, column) to guarantee
// source-order iteration, since tree-sitter's own match stream
// interleaves quantified captures within a pattern; captures that start
// at the same position keep the order the match stream produced them in.
func (e *Executor) Run(file types.FilePath, query *sitter.Query, tree *sitter.Tree, content []byte) ([]CaptureNode, error) {
	if tree == nil {
		return nil, fmt.Errorf("capture: nil syntax tree for %s", file)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("capture: nil root node for %s", file)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()

	names := query.CaptureNames()
	matches := qc.Matches(query, root, content)

	var out []CaptureNode
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			node := c.Node
			if int(c.Index) >= len(names) {
				continue
			}
			captureName := names[c.Index]
			category, entity, qualifier := ParseCaptureName(captureName)

			start := node.StartByte()
			end := node.EndByte()
			var text string
			if start <= end && end <= uint(len(content)) {
				text = string(content[start:end])
			}

			startPos := node.StartPosition()
			endPos := node.EndPosition()

			out = append(out, CaptureNode{
				Category: category,
				Entity:   entity,
				Qualifier: qualifier,
				Name:     captureName,
				Text:     text,
				Location: types.Location{
					FilePath:  file,
					StartLine: int(startPos.Row) + 1,
					StartCol:  int(startPos.Column) + 1,
					EndLine:   int(endPos.Row) + 1,
					EndCol:    int(endPos.Column) + 1,
				},
				Node: &node,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location.StartLine != out[j].Location.StartLine {
			return out[i].Location.StartLine < out[j].Location.StartLine
		}
		return out[i].Location.StartCol < out[j].Location.StartCol
	})

	return out, nil
}

// FindChildByType returns the first direct child of the given tree-sitter
// node kind, or nil. Mirrors standardbeagle/lci's extractor.go helper.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns every direct child of the given kind.
func FindChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var children []*sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == nodeType {
			children = append(children, child)
		}
	}
	return children
}

// NodeText extracts the source text spanned by node.
func NodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > uint(len(content)) || end > uint(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}

// NodeLocation builds a Location for a node within file.
func NodeLocation(node *sitter.Node, file types.FilePath) types.Location {
	if node == nil {
		return types.Location{FilePath: file}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return types.Location{
		FilePath:  file,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}
