// Copyright the partial-application authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expand turns parsed partial-application patterns into closure
// literals and rewrites marker call sites in loaded packages.
package expand

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"github.com/Emerentius/partial-application/expand/pattern"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/dstutil"
	"golang.org/x/exp/slices"
)

// DefaultParamPrefix is the stem used for the generated closure's parameter
// names when the configuration does not override it.
const DefaultParamPrefix = "pa"

// A Resolver supplies the only scope knowledge expansion needs at the
// rewrite site: the signature the callable path denotes, whether a name
// refers to a function-local variable (the ones a move pattern snapshots),
// and whether a name is an imported package (so the emitted ident can carry
// its import path for the restorer's import management).
type Resolver interface {
	CallableSignature(path string) (*types.Signature, error)
	IsLocalVar(name string) bool
	PackagePath(name string) (string, bool)
}

// Expand builds the closure literal for p. The closure has one parameter per
// hole, named prefix0..prefixN-1 (the prefix is lengthened until it collides
// with nothing the pattern references), typed from the callable's signature.
// Fixed expressions are emitted verbatim into the call, so they are
// re-evaluated on every invocation. For a move pattern that references local
// variables, the literal is wrapped in an immediately invoked function that
// rebinds those locals, snapshotting them at construction time.
//
// No arity or type checking happens here beyond what typing the holes
// forces; a slot list that does not fit the callable becomes an ordinary
// compile error in the rewritten file.
func Expand(p *pattern.Pattern, res Resolver, prefix string) (dst.Expr, error) {
	sig, err := res.CallableSignature(p.Callable)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = DefaultParamPrefix
	}

	used, locals, err := referencedNames(p, res)
	if err != nil {
		return nil, err
	}
	names := paramNames(prefix, p.Holes(), used)

	// One pass over the slots builds the parameter list and the argument
	// list of the reconstructed call in step.
	var params []*dst.Field
	var args []dst.Expr
	hole := 0
	for i, s := range p.Slots {
		if !s.Hole {
			e, err := parseExprDst(s.Expr)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			args = append(args, qualifyPackageRefs(e, res))
			continue
		}
		t, err := holeType(sig, i)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		te, err := TypeExpr(t)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		name := names[hole]
		hole++
		params = append(params, &dst.Field{Names: []*dst.Ident{dst.NewIdent(name)}, Type: te})
		args = append(args, dst.NewIdent(name))
	}

	results, err := tupleFields(sig.Results(), false)
	if err != nil {
		return nil, err
	}
	ft := &dst.FuncType{Params: &dst.FieldList{List: params}}
	if len(results) > 0 {
		ft.Results = &dst.FieldList{List: results}
	}

	call := &dst.CallExpr{Fun: callableExpr(p.Callable, res), Args: args}
	var body dst.Stmt
	if sig.Results().Len() > 0 {
		body = &dst.ReturnStmt{Results: []dst.Expr{call}}
	} else {
		body = &dst.ExprStmt{X: call}
	}
	lit := &dst.FuncLit{Type: ft, Body: &dst.BlockStmt{List: []dst.Stmt{body}}}

	if !p.Move || len(locals) == 0 {
		return lit, nil
	}
	return moveWrapper(lit, locals), nil
}

// moveWrapper wraps the closure in an immediately invoked function that
// rebinds the captured locals, so the closure owns copies:
//
//	func() func(...) ... { a, b := a, b; return func(...) ... {...} }()
func moveWrapper(lit *dst.FuncLit, locals []string) dst.Expr {
	var lhs, rhs []dst.Expr
	for _, name := range locals {
		lhs = append(lhs, dst.NewIdent(name))
		rhs = append(rhs, dst.NewIdent(name))
	}
	rebind := &dst.AssignStmt{Tok: token.DEFINE, Lhs: lhs, Rhs: rhs}
	outer := &dst.FuncLit{
		Type: &dst.FuncType{
			Params:  &dst.FieldList{},
			Results: &dst.FieldList{List: []*dst.Field{{Type: dst.Clone(lit.Type).(*dst.FuncType)}}},
		},
		Body: &dst.BlockStmt{List: []dst.Stmt{
			rebind,
			&dst.ReturnStmt{Results: []dst.Expr{lit}},
		}},
	}
	return &dst.CallExpr{Fun: outer}
}

// holeType returns the parameter type a hole at slot index i must take,
// unrolling a variadic tail.
func holeType(sig *types.Signature, i int) (types.Type, error) {
	n := sig.Params().Len()
	if sig.Variadic() && i >= n-1 {
		return sig.Params().At(n - 1).Type().(*types.Slice).Elem(), nil
	}
	if i >= n {
		return nil, fmt.Errorf("placeholder at position %d, but the callable takes %d arguments", i, n)
	}
	return sig.Params().At(i).Type(), nil
}

// referencedNames collects every identifier the pattern mentions (for
// collision-free parameter naming) and, in order of first appearance, the
// ones that resolve to local variables (the move-capture set). The callable
// root counts: a move pattern over a local function value snapshots it too.
func referencedNames(p *pattern.Pattern, res Resolver) (used []string, locals []string, err error) {
	add := func(name string) {
		if !slices.Contains(used, name) {
			used = append(used, name)
		}
		if res.IsLocalVar(name) && !slices.Contains(locals, name) {
			locals = append(locals, name)
		}
	}
	add(strings.Split(p.Callable, ".")[0])
	for _, seg := range strings.Split(p.Callable, ".")[1:] {
		if !slices.Contains(used, seg) {
			used = append(used, seg)
		}
	}
	for _, s := range p.Slots {
		if s.Hole {
			continue
		}
		e, perr := parser.ParseExpr(s.Expr)
		if perr != nil {
			return nil, nil, fmt.Errorf("slot %q: %w", s.Expr, perr)
		}
		for _, name := range exprIdents(e) {
			add(name)
		}
	}
	return used, locals, nil
}

// exprIdents returns the identifiers of e in source order, skipping selector
// field names, which are not names in the enclosing scope.
func exprIdents(e ast.Expr) []string {
	var names []string
	ast.Inspect(e, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.SelectorExpr:
			for _, name := range exprIdents(x.X) {
				names = append(names, name)
			}
			return false
		case *ast.Ident:
			names = append(names, x.Name)
		}
		return true
	})
	return names
}

// paramNames assigns the synthetic parameter names, lengthening the prefix
// until no generated name collides with an identifier the pattern uses.
func paramNames(prefix string, n int, used []string) []string {
	for {
		collides := false
		for i := 0; i < n; i++ {
			if slices.Contains(used, prefix+strconv.Itoa(i)) {
				collides = true
				break
			}
		}
		if !collides {
			break
		}
		prefix += "_"
	}
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}

// callableExpr rebuilds the dotted callable path as an expression. A leading
// package qualifier becomes a path-carrying ident, the form the restorer's
// import management expects.
func callableExpr(path string, res Resolver) dst.Expr {
	segs := strings.Split(path, ".")
	var e dst.Expr
	if len(segs) > 1 {
		if p, ok := res.PackagePath(segs[0]); ok {
			e = &dst.Ident{Name: segs[1], Path: p}
			segs = segs[2:]
		}
	}
	if e == nil {
		e = dst.NewIdent(segs[0])
		segs = segs[1:]
	}
	for _, seg := range segs {
		e = &dst.SelectorExpr{X: e, Sel: dst.NewIdent(seg)}
	}
	return e
}

// qualifyPackageRefs rewrites pkg.Name selectors inside a fixed expression
// into path-carrying idents. Shadowed package names are left alone: the
// resolver answers for the scope of the rewrite site.
func qualifyPackageRefs(e dst.Expr, res Resolver) dst.Expr {
	out := dstutil.Apply(e, nil, func(c *dstutil.Cursor) bool {
		sel, ok := c.Node().(*dst.SelectorExpr)
		if !ok {
			return true
		}
		x, ok := sel.X.(*dst.Ident)
		if !ok || x.Path != "" {
			return true
		}
		if p, ok := res.PackagePath(x.Name); ok {
			c.Replace(&dst.Ident{Name: sel.Sel.Name, Path: p})
		}
		return true
	})
	return out.(dst.Expr)
}

// parseExprDst parses a fixed-slot expression into a dst node by wrapping it
// in a throwaway file, which keeps any comments inside the expression.
func parseExprDst(src string) (dst.Expr, error) {
	f, err := decorator.Parse("package p\n\nvar _ = " + src + "\n")
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	decl, ok := f.Decls[0].(*dst.GenDecl)
	if !ok || len(decl.Specs) == 0 {
		return nil, fmt.Errorf("expression %q did not parse to a value", src)
	}
	spec, ok := decl.Specs[0].(*dst.ValueSpec)
	if !ok || len(spec.Values) == 0 {
		return nil, fmt.Errorf("expression %q did not parse to a value", src)
	}
	return spec.Values[0], nil
}
