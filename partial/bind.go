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

// Typed binders for small arities. They cover the common cases of fixing a
// leading or trailing argument without going through [Apply] and reflection.

// Curry2 fixes the first argument of a two-argument function.
func Curry2[T any, S any, R any](f func(T, S) R, x T) func(S) R {
	return func(s S) R { return f(x, s) }
}

// Curry3 fixes the first argument of a three-argument function.
func Curry3[T any, S any, R any, Q any](f func(T, S, R) Q, x T) func(S, R) Q {
	return func(s S, r R) Q { return f(x, s, r) }
}

// RCurry2 fixes the last argument of a two-argument function.
func RCurry2[T any, S any, R any](f func(T, S) R, y S) func(T) R {
	return func(t T) R { return f(t, y) }
}

// RCurry3 fixes the last argument of a three-argument function.
func RCurry3[T any, S any, R any, Q any](f func(T, S, R) Q, z R) func(T, S) Q {
	return func(t T, s S) Q { return f(t, s, z) }
}

// Compose (f,g) returns a function h: x -> g(f(x))
func Compose[T any, S any, R any](f func(T) S, g func(S) R) func(T) R {
	return func(x T) R { return g(f(x)) }
}
