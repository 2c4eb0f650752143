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

/*
Package partial provides partial application of functions: producing a new
function with some arguments of an original function already bound, leaving
the rest to be supplied at call time.

There are three ways to use it, from most to least dynamic.

[Apply] builds the new function at runtime from a slot list. Each slot is
either a placeholder ([Hole]), a value fixed once at construction ([Arg]), or
an expression re-evaluated on every call ([Thunk]):

	sum3 := func(a, b, c int) int { return a + b + c }
	add10 := partial.MustApply(sum3, partial.Hole(), partial.Arg(4), partial.Arg(6)).(func(int) int)
	add10(5) // 15

[Curry2], [Curry3] and friends are typed generic binders for small arities,
with no reflection involved.

[Gen] is the compile-time form. A call site such as

	bar := partial.Gen[func(int, int, int) int]("foo => _, _, 10, 42, 10, 10")

is rewritten in place by the partialgen tool into the literal closure

	bar := func(pa0, pa1, pa2 int) int { return foo(pa0, pa1, 10, 42, 10, 10) }

so the compiled program carries no indirection at all. The pattern grammar is

	pattern  := ["move"] callable ( "(" args ")" | sep args )
	sep      := "," | ";" | "=>" | <whitespace>
	callable := ident { "." ident }
	args     := [ slot { "," slot } [","] ]
	slot     := "_" | <Go expression>

Every "_" becomes a parameter of the generated closure, in order of
appearance; every other slot is a Go expression emitted verbatim into the
call, so it is re-evaluated each time the closure runs and may reference
variables in scope at the Gen call site. Prefixing the callable with "move"
snapshots the local variables those expressions mention, so later mutation of
the originals is not observed; without it the closure captures them by
reference, as Go closures ordinarily do.

If Gen is executed without having been expanded it panics; run partialgen as
part of the build (typically via go:generate) to rewrite all call sites.
*/
package partial
