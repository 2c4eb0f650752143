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

package partial

import (
	"fmt"
	"reflect"
)

// Apply builds a partially applied version of fn from the slot list. The
// result is a function value whose parameters correspond to the holes in
// slots, in left-to-right order, and whose results are exactly fn's results.
// Calling it calls fn with the full argument list, holes replaced by the
// supplied arguments and fixed slots filled in.
//
// fn must be a function and slots must cover its parameters: one slot per
// parameter, or at least one slot per non-variadic parameter when fn is
// variadic (slots past the fixed parameters supply variadic elements).
// The returned value must be type-asserted to the concrete function type by
// the caller.
func Apply(fn any, slots ...Slot) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("partial: Apply expects a function, got %T", fn)
	}
	ft := fv.Type()

	if ft.IsVariadic() {
		if len(slots) < ft.NumIn()-1 {
			return nil, fmt.Errorf("partial: %d slots cannot cover the %d fixed parameters of %s",
				len(slots), ft.NumIn()-1, ft)
		}
	} else if len(slots) != ft.NumIn() {
		return nil, fmt.Errorf("partial: got %d slots for %s, which has %d parameters", len(slots), ft, ft.NumIn())
	}

	// Parameter type of slot i, unrolling the variadic tail.
	paramType := func(i int) reflect.Type {
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			return ft.In(ft.NumIn() - 1).Elem()
		}
		return ft.In(i)
	}

	// Fixed values are coerced once, holes contribute parameter types, thunks
	// are deferred until call time.
	var in []reflect.Type
	fixed := make([]reflect.Value, len(slots))
	for i, s := range slots {
		pt := paramType(i)
		switch s.kind {
		case holeSlot:
			in = append(in, pt)
		case fixedSlot:
			v, err := coerce(s.value, pt)
			if err != nil {
				return nil, fmt.Errorf("partial: slot %d: %w", i, err)
			}
			fixed[i] = v
		}
	}

	out := make([]reflect.Type, ft.NumOut())
	for i := range out {
		out[i] = ft.Out(i)
	}

	wrapper := reflect.FuncOf(in, out, false)
	impl := func(args []reflect.Value) []reflect.Value {
		call := make([]reflect.Value, len(slots))
		next := 0
		for i, s := range slots {
			switch s.kind {
			case holeSlot:
				call[i] = args[next]
				next++
			case fixedSlot:
				call[i] = fixed[i]
			case thunkSlot:
				v, err := coerce(s.thunk(), paramType(i))
				if err != nil {
					panic(fmt.Sprintf("partial: slot %d: %v", i, err))
				}
				call[i] = v
			}
		}
		return fv.Call(call)
	}
	return reflect.MakeFunc(wrapper, impl).Interface(), nil
}

// MustApply is like [Apply] but panics on error.
func MustApply(fn any, slots ...Slot) any {
	f, err := Apply(fn, slots...)
	if err != nil {
		panic(err)
	}
	return f
}

// coerce adapts v to the parameter type t, so that e.g. an untyped nil or a
// convertible numeric constant can be used as a fixed argument.
func coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice,
			reflect.UnsafePointer:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), t)
}
