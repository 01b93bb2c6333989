// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-structural-inventory R1.2 (Go sources).
package inventory

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// collectGo parses Go source with the standard library AST and extracts
// function, method, and type declarations. A parse error is a failed
// inventory, not an empty one.
func collectGo(path, text string) Result {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, text, 0)
	if err != nil {
		return Result{Status: types.ParseFailed}
	}

	var decls []types.Declaration

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			decls = append(decls, goFuncDecl(fset, d))
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				decls = append(decls, types.Declaration{
					Name:                ts.Name.Name,
					Kind:                types.DeclClass,
					Line:                fset.Position(ts.Pos()).Line,
					NormalizedSignature: normalizeSignature(goTypeSignature(ts), false),
				})
			}
		}
	}

	return Result{Decls: decls, Status: types.ParseOK}
}

// goFuncDecl builds a Declaration for a function or method. Methods are
// keyed by receiver type and name so same-named methods on different
// receivers do not collide.
func goFuncDecl(fset *token.FileSet, fn *ast.FuncDecl) types.Declaration {
	name := fn.Name.Name
	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		name = strings.TrimPrefix(goExprString(fn.Recv.List[0].Type), "*") + "." + name
	}

	return types.Declaration{
		Name:                name,
		Kind:                types.DeclFunction,
		Line:                fset.Position(fn.Pos()).Line,
		NormalizedSignature: normalizeSignature(goFuncSignature(fn), false),
	}
}

// goFuncSignature renders the parameter list and results of a function.
func goFuncSignature(fn *ast.FuncDecl) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(goFieldListString(fn.Type.Params))
	b.WriteString(")")

	if fn.Type.Results != nil && len(fn.Type.Results.List) > 0 {
		results := goFieldListString(fn.Type.Results)
		if strings.Contains(results, ",") {
			b.WriteString(" (")
			b.WriteString(results)
			b.WriteString(")")
		} else {
			b.WriteString(" ")
			b.WriteString(results)
		}
	}

	return b.String()
}

// goTypeSignature renders a struct, interface, or alias declaration.
func goTypeSignature(ts *ast.TypeSpec) string {
	switch t := ts.Type.(type) {
	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return "struct{}"
		}
		var parts []string
		for _, field := range t.Fields.List {
			typeStr := goExprString(field.Type)
			if len(field.Names) == 0 {
				parts = append(parts, typeStr)
			} else {
				for _, name := range field.Names {
					parts = append(parts, name.Name+" "+typeStr)
				}
			}
		}
		return "struct { " + strings.Join(parts, "; ") + " }"
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		var parts []string
		for _, method := range t.Methods.List {
			if len(method.Names) > 0 {
				if ft, ok := method.Type.(*ast.FuncType); ok {
					sig := method.Names[0].Name + "(" + goFieldListString(ft.Params) + ")"
					if ft.Results != nil && len(ft.Results.List) > 0 {
						sig += " " + goFieldListString(ft.Results)
					}
					parts = append(parts, sig)
				}
			} else {
				parts = append(parts, goExprString(method.Type))
			}
		}
		return "interface { " + strings.Join(parts, "; ") + " }"
	default:
		return "type " + goExprString(ts.Type)
	}
}

// goFieldListString renders a field list as comma-separated types, one per
// declared name. Parameter and result names are dropped: renaming one is not
// a signature change.
func goFieldListString(fl *ast.FieldList) string {
	if fl == nil || len(fl.List) == 0 {
		return ""
	}

	var parts []string
	for _, field := range fl.List {
		typeStr := goExprString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			parts = append(parts, typeStr)
		}
	}
	return strings.Join(parts, ", ")
}

// goExprString renders an AST expression as a string.
func goExprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return goExprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + goExprString(e.X)
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + goExprString(e.Elt)
		}
		return "[" + goExprString(e.Len) + "]" + goExprString(e.Elt)
	case *ast.MapType:
		return "map[" + goExprString(e.Key) + "]" + goExprString(e.Value)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.FuncType:
		sig := "func(" + goFieldListString(e.Params) + ")"
		if e.Results != nil && len(e.Results.List) > 0 {
			sig += " (" + goFieldListString(e.Results) + ")"
		}
		return sig
	case *ast.Ellipsis:
		return "..." + goExprString(e.Elt)
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return "chan<- " + goExprString(e.Value)
		case ast.RECV:
			return "<-chan " + goExprString(e.Value)
		default:
			return "chan " + goExprString(e.Value)
		}
	case *ast.BasicLit:
		return e.Value
	case *ast.ParenExpr:
		return "(" + goExprString(e.X) + ")"
	case *ast.IndexExpr:
		return goExprString(e.X) + "[" + goExprString(e.Index) + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}
