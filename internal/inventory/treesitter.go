// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-structural-inventory R1.3 (JS/TS/Python sources).
package inventory

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// langSpec holds the tree-sitter language and declaration query for a file
// type. The query captures the whole declaration as @decl and its name as
// @name; the signature is sliced from the declaration header afterwards.
type langSpec struct {
	lang         *sitter.Language
	declQ        string
	hashComments bool
}

// tsLangs maps file extensions to their langSpec.
var tsLangs = map[string]*langSpec{
	".js": {
		lang: javascript.GetLanguage(),
		declQ: `
			(function_declaration name: (identifier) @name) @decl
			(class_declaration name: (identifier) @name) @decl
			(variable_declarator name: (identifier) @name) @decl
		`,
	},
	".jsx": {
		lang: javascript.GetLanguage(),
		declQ: `
			(function_declaration name: (identifier) @name) @decl
			(class_declaration name: (identifier) @name) @decl
			(variable_declarator name: (identifier) @name) @decl
		`,
	},
	".ts": {
		lang: typescript.GetLanguage(),
		declQ: `
			(function_declaration name: (identifier) @name) @decl
			(class_declaration name: (type_identifier) @name) @decl
			(variable_declarator name: (identifier) @name) @decl
		`,
	},
	".tsx": {
		lang: typescript.GetLanguage(),
		declQ: `
			(function_declaration name: (identifier) @name) @decl
			(class_declaration name: (type_identifier) @name) @decl
			(variable_declarator name: (identifier) @name) @decl
		`,
	},
	".py": {
		lang: python.GetLanguage(),
		declQ: `
			(function_definition name: (identifier) @name) @decl
			(class_definition name: (identifier) @name) @decl
		`,
		hashComments: true,
	},
}

// collectTreeSitter parses text with the grammar for ext and extracts named
// functions (declarations, function expressions, and arrows assigned to a
// named variable) and named classes. A tree containing syntax errors is a
// failed inventory: the caller must be able to distinguish "no changes"
// from "couldn't tell".
func collectTreeSitter(ctx context.Context, ext, text string) Result {
	spec := tsLangs[ext]
	content := []byte(text)

	root, err := sitter.ParseCtx(ctx, content, spec.lang)
	if err != nil || root == nil {
		return Result{Status: types.ParseFailed}
	}
	if root.HasError() {
		return Result{Status: types.ParseFailed}
	}

	q, err := sitter.NewQuery([]byte(spec.declQ), spec.lang)
	if err != nil {
		return Result{Status: types.ParseFailed}
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var decls []types.Declaration
	seen := make(map[string]bool) // Deduplicate by name + line.

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		var declNode, nameNode *sitter.Node
		for _, c := range m.Captures {
			switch q.CaptureNameForId(c.Index) {
			case "decl":
				declNode = c.Node
			case "name":
				nameNode = c.Node
			}
		}
		if declNode == nil || nameNode == nil {
			continue
		}

		d, ok := declarationFor(declNode, nameNode, content, spec.hashComments)
		if !ok {
			continue
		}

		key := d.Name + ":" + strconv.Itoa(d.Line)
		if seen[key] {
			continue
		}
		seen[key] = true
		decls = append(decls, d)
	}

	return Result{Decls: decls, Status: types.ParseOK}
}

// declarationFor derives a Declaration from a captured node pair. Variable
// declarators only count when their value is a function or arrow.
func declarationFor(decl, name *sitter.Node, content []byte, hashComments bool) (types.Declaration, bool) {
	nodeType := decl.Type()
	line := int(decl.StartPoint().Row) + 1

	kind := types.DeclFunction
	sigNode := decl

	switch {
	case strings.HasPrefix(nodeType, "class"):
		kind = types.DeclClass
	case nodeType == "variable_declarator":
		value := decl.ChildByFieldName("value")
		if value == nil {
			return types.Declaration{}, false
		}
		vt := value.Type()
		if vt != "arrow_function" && vt != "function" && vt != "function_expression" {
			return types.Declaration{}, false
		}
		sigNode = value
	}

	var raw string
	if kind == types.DeclClass {
		// Heritage clause: everything between the name and the class body.
		raw = headerSlice(sigNode, name.EndByte(), content)
	} else {
		params := sigNode.ChildByFieldName("parameters")
		if params == nil {
			// Paren-less arrow: the lone identifier sits in the singular
			// "parameter" field.
			params = sigNode.ChildByFieldName("parameter")
		}
		start := name.EndByte()
		if params != nil {
			start = params.StartByte()
		}
		raw = headerSlice(sigNode, start, content)
		if params != nil && params.Type() == "identifier" {
			// Parenthesize the lone parameter so name erasure applies.
			raw = "(" + params.Content(content) + ")" + headerSlice(sigNode, params.EndByte(), content)
		}
	}

	sig := normalizeSignature(raw, hashComments)
	if kind == types.DeclFunction {
		sig = eraseParamNames(sig)
	}

	return types.Declaration{
		Name:                name.Content(content),
		Kind:                kind,
		Line:                line,
		NormalizedSignature: sig,
	}, true
}

// headerSlice returns the text from start to the declaration's body (or the
// declaration end when it has no body field).
func headerSlice(decl *sitter.Node, start uint32, content []byte) string {
	end := decl.EndByte()
	if body := decl.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	if start >= end || end > uint32(len(content)) {
		return ""
	}
	return string(content[start:end])
}
