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

type slotKind uint8

const (
	fixedSlot slotKind = iota
	holeSlot
	thunkSlot
)

// A Slot is one position of a partially applied call: either a value fixed
// now, a value recomputed on every call, or a hole to be filled by a
// parameter of the resulting function. Slots are immutable.
type Slot struct {
	kind  slotKind
	value any
	thunk func() any
}

// Hole returns a placeholder slot. Each Hole in a slot list becomes its own
// parameter of the function built by [Apply]; repeated holes are independent
// and are never deduplicated.
func Hole() Slot {
	return Slot{kind: holeSlot}
}

// Arg returns a slot fixed to v. The value is captured once, when the slot is
// created, so later mutation of the variable v was read from is not observed.
func Arg(v any) Slot {
	return Slot{kind: fixedSlot, value: v}
}

// Thunk returns a slot whose value is recomputed by f on every call of the
// function built by [Apply]. This mirrors how fixed expressions behave in the
// generated-code form, where they are emitted verbatim into the call body.
func Thunk(f func() any) Slot {
	return Slot{kind: thunkSlot, thunk: f}
}

// IsHole reports whether the slot is a placeholder.
func (s Slot) IsHole() bool {
	return s.kind == holeSlot
}

func (s Slot) String() string {
	switch s.kind {
	case holeSlot:
		return "_"
	case thunkSlot:
		return "thunk"
	default:
		return "arg"
	}
}
