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
	"fmt"
	"go/types"
	"strconv"

	"github.com/dave/dst"
)

// TypeExpr returns an AST expression that denotes the type t at the rewrite
// site. Named types carry their import path on the ident, so the restorer
// inserts or reuses the right import when the file is written back.
func TypeExpr(t types.Type) (dst.Expr, error) {
	switch t0 := t.(type) {
	case *types.Basic:
		if t0.Kind() == types.UnsafePointer {
			return &dst.Ident{Name: "Pointer", Path: "unsafe"}, nil
		}
		return dst.NewIdent(t0.Name()), nil
	case *types.Named:
		return namedTypeExpr(t0)
	case *types.Pointer:
		elem, err := TypeExpr(t0.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.StarExpr{X: elem}, nil
	case *types.Slice:
		elem, err := TypeExpr(t0.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{Elt: elem}, nil
	case *types.Array:
		elem, err := TypeExpr(t0.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{
			Len: &dst.BasicLit{Value: strconv.FormatInt(t0.Len(), 10)},
			Elt: elem,
		}, nil
	case *types.Map:
		key, err := TypeExpr(t0.Key())
		if err != nil {
			return nil, err
		}
		val, err := TypeExpr(t0.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.MapType{Key: key, Value: val}, nil
	case *types.Chan:
		elem, err := TypeExpr(t0.Elem())
		if err != nil {
			return nil, err
		}
		dir := dst.SEND | dst.RECV
		switch t0.Dir() {
		case types.SendOnly:
			dir = dst.SEND
		case types.RecvOnly:
			dir = dst.RECV
		}
		return &dst.ChanType{Dir: dir, Value: elem}, nil
	case *types.Signature:
		return FuncTypeExpr(t0)
	case *types.Interface:
		if t0.Empty() {
			return dst.NewIdent("any"), nil
		}
		return nil, fmt.Errorf("cannot write an inline expression for interface type %s", t0)
	case *types.Struct:
		return structTypeExpr(t0)
	default:
		return nil, fmt.Errorf("cannot write an inline expression for type %s", t)
	}
}

func namedTypeExpr(t *types.Named) (dst.Expr, error) {
	obj := t.Obj()
	var base dst.Expr
	if obj.Pkg() == nil {
		// universe-scope names such as error
		base = dst.NewIdent(obj.Name())
	} else {
		base = &dst.Ident{Name: obj.Name(), Path: obj.Pkg().Path()}
	}
	targs := t.TypeArgs()
	if targs == nil || targs.Len() == 0 {
		return base, nil
	}
	var indices []dst.Expr
	for i := 0; i < targs.Len(); i++ {
		e, err := TypeExpr(targs.At(i))
		if err != nil {
			return nil, err
		}
		indices = append(indices, e)
	}
	if len(indices) == 1 {
		return &dst.IndexExpr{X: base, Index: indices[0]}, nil
	}
	return &dst.IndexListExpr{X: base, Indices: indices}, nil
}

// FuncTypeExpr returns the func type expression for a signature. The
// parameter and result names are dropped; only types survive.
func FuncTypeExpr(sig *types.Signature) (*dst.FuncType, error) {
	params, err := tupleFields(sig.Params(), sig.Variadic())
	if err != nil {
		return nil, err
	}
	results, err := tupleFields(sig.Results(), false)
	if err != nil {
		return nil, err
	}
	ft := &dst.FuncType{Params: &dst.FieldList{List: params}}
	if len(results) > 0 {
		ft.Results = &dst.FieldList{List: results}
	}
	return ft, nil
}

func tupleFields(tuple *types.Tuple, variadic bool) ([]*dst.Field, error) {
	var fields []*dst.Field
	for i := 0; i < tuple.Len(); i++ {
		t := tuple.At(i).Type()
		if variadic && i == tuple.Len()-1 {
			elem, err := TypeExpr(t.(*types.Slice).Elem())
			if err != nil {
				return nil, err
			}
			fields = append(fields, &dst.Field{Type: &dst.Ellipsis{Elt: elem}})
			continue
		}
		e, err := TypeExpr(t)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &dst.Field{Type: e})
	}
	return fields, nil
}

func structTypeExpr(t *types.Struct) (dst.Expr, error) {
	var fields []*dst.Field
	for i := 0; i < t.NumFields(); i++ {
		f := t.Field(i)
		te, err := TypeExpr(f.Type())
		if err != nil {
			return nil, err
		}
		field := &dst.Field{Type: te}
		if !f.Anonymous() {
			field.Names = []*dst.Ident{dst.NewIdent(f.Name())}
		}
		fields = append(fields, field)
	}
	return &dst.StructType{Fields: &dst.FieldList{List: fields}}, nil
}
