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

import "fmt"

// Gen marks a call site for compile-time expansion by partialgen. The tool
// replaces the whole Gen call with a closure literal of type F, built from
// the pattern; see the package documentation for the grammar.
//
// Gen itself never runs in a generated program. Executing it means the
// rewrite step was skipped, so it panics rather than guess at semantics.
func Gen[F any](pattern string) F {
	panic(fmt.Sprintf("partial: Gen(%q) call site has not been expanded; run partialgen on this package", pattern))
}
