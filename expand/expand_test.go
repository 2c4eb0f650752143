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

package expand_test

import (
	"bytes"
	"errors"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/Emerentius/partial-application/expand"
	"github.com/Emerentius/partial-application/expand/pattern"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/guess"
)

// stubResolver stands in for a type-checked rewrite site.
type stubResolver struct {
	sig      *types.Signature
	locals   map[string]bool
	packages map[string]string
}

func (r stubResolver) CallableSignature(path string) (*types.Signature, error) {
	if r.sig == nil {
		return nil, errors.New("unknown callable " + path)
	}
	return r.sig, nil
}

func (r stubResolver) IsLocalVar(name string) bool { return r.locals[name] }

func (r stubResolver) PackagePath(name string) (string, bool) {
	p, ok := r.packages[name]
	return p, ok
}

func intTuple(n int) *types.Tuple {
	var vars []*types.Var
	for i := 0; i < n; i++ {
		vars = append(vars, types.NewVar(token.NoPos, nil, "", types.Typ[types.Int]))
	}
	return types.NewTuple(vars...)
}

func intSig(in, out int) *types.Signature {
	return types.NewSignatureType(nil, nil, nil, intTuple(in), intTuple(out), false)
}

// render prints the expression as the initializer of a var declaration.
func render(t *testing.T, e dst.Expr) string {
	t.Helper()
	f := &dst.File{
		Name: dst.NewIdent("p"),
		Decls: []dst.Decl{&dst.GenDecl{Tok: token.VAR, Specs: []dst.Spec{
			&dst.ValueSpec{Names: []*dst.Ident{dst.NewIdent("v")}, Values: []dst.Expr{e}},
		}}},
	}
	var buf bytes.Buffer
	if err := decorator.NewRestorerWithImports("p", guess.New()).Fprint(&buf, f); err != nil {
		t.Fatalf("could not print expansion: %s", err)
	}
	return buf.String()
}

func expandSrc(t *testing.T, src string, res expand.Resolver) string {
	t.Helper()
	p, err := pattern.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %s", src, err)
	}
	e, err := expand.Expand(p, res, "")
	if err != nil {
		t.Fatalf("Expand(%q): %s", src, err)
	}
	return render(t, e)
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func TestExpandBasic(t *testing.T) {
	out := expandSrc(t, "foo => _, _, 10, 42, 10, 10", stubResolver{sig: intSig(6, 1)})
	mustContain(t, out,
		"func(pa0 int, pa1 int) int",
		"return foo(pa0, pa1, 10, 42, 10, 10)")
}

func TestExpandZeroHoles(t *testing.T) {
	out := expandSrc(t, "foo => 1, 2", stubResolver{sig: intSig(2, 1)})
	mustContain(t, out, "func() int", "return foo(1, 2)")
}

func TestExpandNoResults(t *testing.T) {
	out := expandSrc(t, "f => _", stubResolver{sig: intSig(1, 0)})
	mustContain(t, out, "func(pa0 int)", "f(pa0)")
	if strings.Contains(out, "return") {
		t.Errorf("expansion of a void callable must not return:\n%s", out)
	}
}

func TestExpandRepeatedHoles(t *testing.T) {
	out := expandSrc(t, "sub => _, _", stubResolver{sig: intSig(2, 1)})
	mustContain(t, out, "func(pa0 int, pa1 int) int", "return sub(pa0, pa1)")
}

func TestExpandMoveRebindsLocals(t *testing.T) {
	out := expandSrc(t, "move sub => _, off", stubResolver{
		sig:    intSig(2, 1),
		locals: map[string]bool{"off": true},
	})
	mustContain(t, out,
		"func() func(pa0 int) int",
		"off := off",
		"return sub(pa0, off)")
}

func TestExpandMoveWithoutLocals(t *testing.T) {
	out := expandSrc(t, "move sub => _, 2", stubResolver{sig: intSig(2, 1)})
	if strings.Contains(out, ":=") {
		t.Errorf("move with no captured locals should not produce a wrapper:\n%s", out)
	}
	mustContain(t, out, "func(pa0 int) int", "return sub(pa0, 2)")
}

func TestExpandMoveCapturesCallable(t *testing.T) {
	out := expandSrc(t, "move f => _", stubResolver{
		sig:    intSig(1, 1),
		locals: map[string]bool{"f": true},
	})
	mustContain(t, out, "f := f", "return f(pa0)")
}

func TestExpandAvoidsNameCollision(t *testing.T) {
	out := expandSrc(t, "foo => _, pa0", stubResolver{sig: intSig(2, 1)})
	mustContain(t, out, "func(pa_0 int) int", "return foo(pa_0, pa0)")
}

func TestExpandVariadicHoles(t *testing.T) {
	in := types.NewTuple(
		types.NewVar(token.NoPos, nil, "", types.Typ[types.Int]),
		types.NewVar(token.NoPos, nil, "", types.NewSlice(types.Typ[types.String])),
	)
	out := types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String]))
	sig := types.NewSignatureType(nil, nil, nil, in, out, true)
	got := expandSrc(t, "j => _, _, _", stubResolver{sig: sig})
	mustContain(t, got,
		"func(pa0 int, pa1 string, pa2 string) string",
		"return j(pa0, pa1, pa2)")
}

func TestExpandMultipleResults(t *testing.T) {
	in := intTuple(1)
	out := types.NewTuple(
		types.NewVar(token.NoPos, nil, "", types.Typ[types.Int]),
		types.NewVar(token.NoPos, nil, "", types.Universe.Lookup("error").Type()),
	)
	sig := types.NewSignatureType(nil, nil, nil, in, out, false)
	got := expandSrc(t, "f => _", stubResolver{sig: sig})
	mustContain(t, got, "func(pa0 int) (int, error)", "return f(pa0)")
}

func TestExpandDottedCallable(t *testing.T) {
	strSig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(
			types.NewVar(token.NoPos, nil, "", types.Typ[types.String]),
			types.NewVar(token.NoPos, nil, "", types.Typ[types.String]),
		),
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.Bool])),
		false)
	out := expandSrc(t, "strings.Contains => _, sep", stubResolver{
		sig:    strSig,
		locals: map[string]bool{"sep": true},
	})
	mustContain(t, out, "func(pa0 string) bool", "return strings.Contains(pa0, sep)")
}

func TestExpandPackageQualifiedCallable(t *testing.T) {
	strSig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(
			types.NewVar(token.NoPos, nil, "", types.Typ[types.String]),
			types.NewVar(token.NoPos, nil, "", types.Typ[types.String]),
		),
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.Bool])),
		false)
	out := expandSrc(t, "strings.HasSuffix => _, filepath.Ext(name)", stubResolver{
		sig:      strSig,
		locals:   map[string]bool{"name": true},
		packages: map[string]string{"strings": "strings", "filepath": "path/filepath"},
	})
	mustContain(t, out, "strings.HasSuffix(pa0, filepath.Ext(name))")
}

func TestExpandHoleBeyondArity(t *testing.T) {
	p, err := pattern.Parse("f => _, _")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expand.Expand(p, stubResolver{sig: intSig(1, 1)}, ""); err == nil {
		t.Fatal("expected error for a placeholder the callable cannot type")
	}
}

func TestExpandUnknownCallable(t *testing.T) {
	p, err := pattern.Parse("nope => _")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expand.Expand(p, stubResolver{}, ""); err == nil {
		t.Fatal("expected error from the resolver")
	}
}

func TestExpandFixedExpressionVerbatim(t *testing.T) {
	out := expandSrc(t, "foo => g(1, 2), _, []int{3, 4}[0]", stubResolver{sig: intSig(3, 1)})
	mustContain(t, out, "return foo(g(1, 2), pa0, []int{3, 4}[0])")
}
