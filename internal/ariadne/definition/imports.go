package definition

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/scope"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// BuildImports lowers "import" category captures into DefImport
// Definitions. Per-language statement shape is handled here directly
// (manual node walks), generalizing standardbeagle/lci's
// python_extractor.go extractImportStatement/extractImportFromStatement
// pair to all four languages' import syntaxes.
func BuildImports(file types.FilePath, content []byte, captures []capture.CaptureNode, scopes map[types.ScopeId]*types.LexicalScope, language string) []*types.Definition {
	var defs []*types.Definition
	for _, c := range captures {
		if c.Category != capture.CategoryImport || c.Node == nil {
			continue
		}
		enclosing := scope.Enclosing(scopes, c.Location)
		switch language {
		case "javascript", "typescript", "tsx":
			defs = append(defs, jsImports(c.Node, content, file, enclosing)...)
		case "python":
			defs = append(defs, pythonImports(c.Node, content, file, enclosing)...)
		case "rust":
			defs = append(defs, rustImports(c.Node, content, file, enclosing)...)
		}
	}
	return defs
}

func newImportDef(file types.FilePath, loc types.Location, scopeID types.ScopeId, localName string, info *types.ImportInfo) *types.Definition {
	return &types.Definition{
		SymbolId:        types.NewSymbolId(types.DefImport, file, loc.StartLine, loc.StartCol, localName),
		Name:            localName,
		Kind:            types.DefImport,
		Location:        loc,
		DefiningScopeID: scopeID,
		Import:          info,
	}
}

func jsImports(node *sitter.Node, content []byte, file types.FilePath, scopeID types.ScopeId) []*types.Definition {
	if node.Kind() == "export_statement" {
		return jsReexports(node, content, file, scopeID)
	}
	if node.Kind() != "import_statement" {
		return nil
	}
	loc := capture.NodeLocation(node, file)
	source := ""
	if src := node.ChildByFieldName("source"); src != nil {
		source = strings.Trim(nodeText(src, content), `"'`)
	}

	var defs []*types.Definition
	clause := findChild(node, "import_clause")
	if clause == nil {
		// Side-effect-only import: `import "./polyfill"`.
		defs = append(defs, newImportDef(file, loc, scopeID, source, &types.ImportInfo{
			SourceModulePath: source,
			Kind:             types.ImportSideEffect,
		}))
		return defs
	}

	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			name := nodeText(child, content)
			defs = append(defs, newImportDef(file, loc, scopeID, name, &types.ImportInfo{
				LocalName: name, SourceModulePath: source, Kind: types.ImportDefault,
			}))
		case "namespace_import":
			if n := findChild(child, "identifier"); n != nil {
				name := nodeText(n, content)
				defs = append(defs, newImportDef(file, loc, scopeID, name, &types.ImportInfo{
					LocalName: name, SourceModulePath: source, Kind: types.ImportNamespace,
				}))
			}
		case "named_imports":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				nameField := spec.ChildByFieldName("name")
				aliasField := spec.ChildByFieldName("alias")
				original := nodeText(nameField, content)
				local := original
				if aliasField != nil {
					local = nodeText(aliasField, content)
				}
				info := &types.ImportInfo{LocalName: local, SourceModulePath: source, Kind: types.ImportNamed}
				if local != original {
					info.OriginalName = original
				}
				defs = append(defs, newImportDef(file, loc, scopeID, local, info))
			}
		}
	}
	return defs
}

// jsReexports lowers `export { a, b as c } from "./mod"` and
// `export * [as ns] from "./mod"` into import-shaped Definitions flagged
// IsReexport, so both ImportGraph (local-name -> target file) and
// ExportRegistry (export name -> re-export hop) can index them; this is
// what lets resolve_export_chain (§4.7, S2) walk a barrel file.
func jsReexports(node *sitter.Node, content []byte, file types.FilePath, scopeID types.ScopeId) []*types.Definition {
	srcField := node.ChildByFieldName("source")
	if srcField == nil {
		return nil
	}
	source := strings.Trim(nodeText(srcField, content), `"'`)
	loc := capture.NodeLocation(node, file)

	clause := findChild(node, "export_clause")
	if clause == nil {
		local := "*"
		if ns := findChild(node, "namespace_export"); ns != nil {
			if id := findChild(ns, "identifier"); id != nil {
				local = nodeText(id, content)
			}
		}
		return []*types.Definition{newImportDef(file, loc, scopeID, local, &types.ImportInfo{
			LocalName: local, SourceModulePath: source,
			Kind: types.ImportNamespace, IsReexport: true, ReexportSource: source,
		})}
	}

	var defs []*types.Definition
	for i := uint(0); i < clause.ChildCount(); i++ {
		spec := clause.Child(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		nameField := spec.ChildByFieldName("name")
		aliasField := spec.ChildByFieldName("alias")
		original := nodeText(nameField, content)
		local := original
		if aliasField != nil {
			local = nodeText(aliasField, content)
		}
		info := &types.ImportInfo{
			LocalName: local, SourceModulePath: source,
			Kind: types.ImportNamed, IsReexport: true, ReexportSource: source,
		}
		if local != original {
			info.OriginalName = original
		}
		defs = append(defs, newImportDef(file, loc, scopeID, local, info))
	}
	return defs
}

func pythonImports(node *sitter.Node, content []byte, file types.FilePath, scopeID types.ScopeId) []*types.Definition {
	loc := capture.NodeLocation(node, file)
	var defs []*types.Definition

	switch node.Kind() {
	case "import_statement":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "dotted_name", "identifier":
				modulePath := nodeText(child, content)
				local := lastSegment(modulePath)
				defs = append(defs, newImportDef(file, loc, scopeID, local, &types.ImportInfo{
					LocalName: local, OriginalName: modulePath, SourceModulePath: modulePath, Kind: types.ImportNamespace,
				}))
			case "aliased_import":
				nameNode := child.ChildByFieldName("name")
				aliasNode := child.ChildByFieldName("alias")
				modulePath := nodeText(nameNode, content)
				local := nodeText(aliasNode, content)
				defs = append(defs, newImportDef(file, loc, scopeID, local, &types.ImportInfo{
					LocalName: local, OriginalName: modulePath, SourceModulePath: modulePath, Kind: types.ImportNamespace,
				}))
			}
		}
	case "import_from_statement":
		moduleField := node.ChildByFieldName("module_name")
		modulePath := ""
		if moduleField != nil {
			modulePath = nodeText(moduleField, content)
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "wildcard_import":
				defs = append(defs, newImportDef(file, loc, scopeID, "*", &types.ImportInfo{
					SourceModulePath: modulePath, Kind: types.ImportNamespace,
				}))
			case "dotted_name", "identifier":
				if moduleField != nil && child.StartByte() == moduleField.StartByte() && child.EndByte() == moduleField.EndByte() {
					continue
				}
				original := nodeText(child, content)
				defs = append(defs, newImportDef(file, loc, scopeID, original, &types.ImportInfo{
					LocalName: original, SourceModulePath: modulePath, Kind: types.ImportNamed,
				}))
			case "aliased_import":
				nameNode := child.ChildByFieldName("name")
				aliasNode := child.ChildByFieldName("alias")
				original := nodeText(nameNode, content)
				local := nodeText(aliasNode, content)
				defs = append(defs, newImportDef(file, loc, scopeID, local, &types.ImportInfo{
					LocalName: local, OriginalName: original, SourceModulePath: modulePath, Kind: types.ImportNamed,
				}))
			}
		}
	}
	return defs
}

func rustImports(node *sitter.Node, content []byte, file types.FilePath, scopeID types.ScopeId) []*types.Definition {
	if node.Kind() != "use_declaration" {
		return nil
	}
	loc := capture.NodeLocation(node, file)
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return nil
	}
	return rustUseTree(arg, content, file, loc, scopeID, "")
}

// rustUseTree recursively lowers a use-tree (`use a::{b, c as d}`) into
// one Definition per leaf binding, threading the accumulated path prefix.
func rustUseTree(node *sitter.Node, content []byte, file types.FilePath, loc types.Location, scopeID types.ScopeId, prefix string) []*types.Definition {
	switch node.Kind() {
	case "scoped_identifier":
		path := nodeText(node, content)
		local := lastRustSegment(path)
		return []*types.Definition{newImportDef(file, loc, scopeID, local, &types.ImportInfo{
			LocalName: local, SourceModulePath: joinRustPath(prefix, path), Kind: types.ImportNamed,
		})}
	case "identifier", "self", "crate", "super":
		name := nodeText(node, content)
		return []*types.Definition{newImportDef(file, loc, scopeID, name, &types.ImportInfo{
			LocalName: name, SourceModulePath: joinRustPath(prefix, name), Kind: types.ImportNamed,
		})}
	case "use_as_clause":
		path := node.ChildByFieldName("path")
		alias := node.ChildByFieldName("alias")
		original := ""
		if path != nil {
			original = lastRustSegment(nodeText(path, content))
		}
		local := nodeText(alias, content)
		return []*types.Definition{newImportDef(file, loc, scopeID, local, &types.ImportInfo{
			LocalName: local, OriginalName: original,
			SourceModulePath: joinRustPath(prefix, nodeText(path, content)), Kind: types.ImportNamed,
		})}
	case "use_list":
		var defs []*types.Definition
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			defs = append(defs, rustUseTree(child, content, file, loc, scopeID, prefix)...)
		}
		return defs
	case "scoped_use_list":
		path := node.ChildByFieldName("path")
		list := node.ChildByFieldName("list")
		newPrefix := prefix
		if path != nil {
			newPrefix = joinRustPath(prefix, nodeText(path, content))
		}
		if list != nil {
			return rustUseTree(list, content, file, loc, scopeID, newPrefix)
		}
		return nil
	case "use_wildcard":
		return []*types.Definition{newImportDef(file, loc, scopeID, "*", &types.ImportInfo{
			SourceModulePath: prefix, Kind: types.ImportNamespace,
		})}
	default:
		return nil
	}
}

func joinRustPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	if segment == "" {
		return prefix
	}
	return prefix + "::" + segment
}

func lastRustSegment(path string) string {
	parts := strings.Split(path, "::")
	return parts[len(parts)-1]
}

func lastSegment(modulePath string) string {
	parts := strings.Split(modulePath, ".")
	return parts[len(parts)-1]
}

func findChild(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
