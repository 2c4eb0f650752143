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

package expand

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Emerentius/partial-application/expand/config"
	"github.com/Emerentius/partial-application/expand/pattern"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/gopackages"
	"github.com/dave/dst/dstutil"
)

// A Rewriter expands marker call sites in loaded packages.
type Rewriter struct {
	Config *config.Config
	Log    *config.LogGroup
}

// NewRewriter returns a rewriter for the given configuration.
func NewRewriter(cfg *config.Config) *Rewriter {
	return &Rewriter{Config: cfg, Log: config.NewLogGroup(cfg)}
}

// RewritePackages replaces every marker call site in pkgs with its expanded
// closure literal, in place. It returns the set of files that changed, with
// per-file site counts. Sites whose pattern or callable cannot be expanded
// are reported together in the returned error and left unrewritten.
func (r *Rewriter) RewritePackages(pkgs []*decorator.Package) (map[*dst.File]int, error) {
	changed := map[*dst.File]int{}
	var siteErrs []error
	for _, pack := range pkgs {
		for _, file := range pack.Syntax {
			dstutil.Apply(file, nil, func(c *dstutil.Cursor) bool {
				call, ok := c.Node().(*dst.CallExpr)
				if !ok {
					return true
				}
				src, ok := r.markerPattern(pack, call)
				if !ok {
					return true
				}
				pos := r.callPos(pack, call)
				repl, err := r.expandSite(pack, pos, src)
				if err != nil {
					siteErrs = append(siteErrs, fmt.Errorf("%s: %w", pack.Fset.Position(pos), err))
					return true
				}
				// keep the call's spacing and comments on the closure
				*repl.Decorations() = *call.Decorations()
				c.Replace(repl)
				changed[file]++
				r.Log.Debugf("%s: expanded %q", pack.Fset.Position(pos), src)
				return true
			})
		}
	}
	return changed, errors.Join(siteErrs...)
}

// markerPattern reports whether call is an invocation of the configured
// marker function and, if so, returns its pattern string. A marker call with
// a non-literal pattern is not recognized; it is left for the runtime stub
// to reject.
func (r *Rewriter) markerPattern(pack *decorator.Package, call *dst.CallExpr) (string, bool) {
	fun := call.Fun
	// strip the explicit instantiation Gen[F]
	switch x := fun.(type) {
	case *dst.IndexExpr:
		fun = x.X
	case *dst.IndexListExpr:
		fun = x.X
	}
	var id *dst.Ident
	switch x := fun.(type) {
	case *dst.SelectorExpr:
		id = x.Sel
	case *dst.Ident:
		id = x
	default:
		return "", false
	}
	astID, ok := pack.Decorator.Ast.Nodes[id].(*ast.Ident)
	if !ok {
		return "", false
	}
	fn, ok := pack.TypesInfo.Uses[astID].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return "", false
	}
	if fn.Pkg().Path()+"."+fn.Name() != r.Config.Marker {
		return "", false
	}
	if len(call.Args) != 1 {
		return "", false
	}
	lit, ok := call.Args[0].(*dst.BasicLit)
	if !ok || lit.Kind != token.STRING {
		r.Log.Warnf("%s: marker call with a non-literal pattern is not expanded",
			pack.Fset.Position(r.callPos(pack, call)))
		return "", false
	}
	src, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return src, true
}

func (r *Rewriter) callPos(pack *decorator.Package, call *dst.CallExpr) token.Pos {
	if n, ok := pack.Decorator.Ast.Nodes[call]; ok {
		return n.Pos()
	}
	return token.NoPos
}

func (r *Rewriter) expandSite(pack *decorator.Package, pos token.Pos, src string) (dst.Expr, error) {
	p, err := pattern.Parse(src)
	if err != nil {
		return nil, err
	}
	r.Log.Tracef("parsed pattern %s", p)
	return Expand(p, siteResolver{pkg: pack, pos: pos}, r.Config.ParamPrefix)
}

// WriteFiles restores every changed file. In dry-run mode the rewritten
// sources are printed to w instead of replacing the originals.
func (r *Rewriter) WriteFiles(pkgs []*decorator.Package, changed map[*dst.File]int, w io.Writer) error {
	for _, pack := range pkgs {
		var restorer *decorator.Restorer
		for _, file := range pack.Syntax {
			if changed[file] == 0 {
				continue
			}
			name := pack.Decorator.Filenames[file]
			if restorer == nil {
				restorer = decorator.NewRestorerWithImports(pack.PkgPath, gopackages.New(filepath.Dir(name)))
			}
			if r.Config.DryRun {
				fmt.Fprintf(w, "// %s (%d sites)\n", name, changed[file])
				if err := restorer.Fprint(w, file); err != nil {
					return fmt.Errorf("could not print %s: %w", name, err)
				}
				continue
			}
			out, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("could not rewrite %s: %w", name, err)
			}
			err = restorer.Fprint(out, file)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("could not rewrite %s: %w", name, err)
			}
			r.Log.Infof("rewrote %s (%d sites)", name, changed[file])
		}
	}
	return nil
}

// siteResolver answers type questions about one rewrite site, using the
// type-checked package and the call position for scope resolution.
type siteResolver struct {
	pkg *decorator.Package
	pos token.Pos
}

// CallableSignature type-checks the callable path as an expression at the
// call site and returns its signature.
func (r siteResolver) CallableSignature(path string) (*types.Signature, error) {
	e, err := parser.ParseExpr(path)
	if err != nil {
		return nil, fmt.Errorf("callable %q: %w", path, err)
	}
	info := &types.Info{
		Types:      map[ast.Expr]types.TypeAndValue{},
		Uses:       map[*ast.Ident]types.Object{},
		Selections: map[*ast.SelectorExpr]*types.Selection{},
	}
	if err := types.CheckExpr(r.pkg.Fset, r.pkg.Types, r.pos, e, info); err != nil {
		return nil, fmt.Errorf("cannot resolve callable %q: %w", path, err)
	}
	sig, ok := info.Types[e].Type.Underlying().(*types.Signature)
	if !ok {
		return nil, fmt.Errorf("callable %q has type %s, which is not a function", path, info.Types[e].Type)
	}
	return sig, nil
}

// PackagePath reports whether name denotes an imported package in the scope
// enclosing the call site, and if so which one.
func (r siteResolver) PackagePath(name string) (string, bool) {
	inner := r.pkg.Types.Scope().Innermost(r.pos)
	if inner == nil {
		return "", false
	}
	_, obj := inner.LookupParent(name, r.pos)
	pkgName, ok := obj.(*types.PkgName)
	if !ok {
		return "", false
	}
	return pkgName.Imported().Path(), true
}

// IsLocalVar reports whether name denotes a function-local variable in the
// scope enclosing the call site.
func (r siteResolver) IsLocalVar(name string) bool {
	inner := r.pkg.Types.Scope().Innermost(r.pos)
	if inner == nil {
		return false
	}
	scope, obj := inner.LookupParent(name, r.pos)
	if obj == nil || scope == r.pkg.Types.Scope() || scope == types.Universe {
		return false
	}
	_, isVar := obj.(*types.Var)
	return isVar
}
