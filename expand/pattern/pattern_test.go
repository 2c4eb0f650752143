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

package pattern_test

import (
	"errors"
	"testing"

	"github.com/Emerentius/partial-application/expand/pattern"
)

func slots(p *pattern.Pattern) []string {
	var out []string
	for _, s := range p.Slots {
		out = append(out, s.String())
	}
	return out
}

func eq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseForms(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		move     bool
		callable string
		slots    []string
	}{
		{"arrow", "foo => _, _, 10, 42, 10, 10", false, "foo", []string{"_", "_", "10", "42", "10", "10"}},
		{"comma", "foo, _, 2", false, "foo", []string{"_", "2"}},
		{"semicolon", "foo; _, 2", false, "foo", []string{"_", "2"}},
		{"space", "foo _, 2", false, "foo", []string{"_", "2"}},
		{"parens", "foo(_, 2)", false, "foo", []string{"_", "2"}},
		{"parens after space", "foo (_, 2)", false, "foo", []string{"_", "2"}},
		{"move", "move foo => _, f", true, "foo", []string{"_", "f"}},
		{"dotted path", "strings.Contains => _, sep", false, "strings.Contains", []string{"_", "sep"}},
		{"deep path", "a.b.c => _", false, "a.b.c", []string{"_"}},
		{"trailing comma", "foo => _, 2,", false, "foo", []string{"_", "2"}},
		{"zero slots", "foo =>", false, "foo", nil},
		{"zero holes", "foo => 1, 2", false, "foo", []string{"1", "2"}},
		{"only holes", "sub => _, _", false, "sub", []string{"_", "_"}},
		{"nested call commas", "foo => g(1, 2), _", false, "foo", []string{"g(1, 2)", "_"}},
		{"composite literal", "foo => []int{1, 2}, _", false, "foo", []string{"[]int{1, 2}", "_"}},
		{"string with comma", `foo => "a, b", _`, false, "foo", []string{`"a, b"`, "_"}},
		{"blockish expr", "foo => func() int { return 2 }(), _", false, "foo",
			[]string{"func() int { return 2 }()", "_"}},
		{"move with parens", "move sub(_, f)", true, "sub", []string{"_", "f"}},
		{"underscore-prefixed ident is fixed", "foo => _x", false, "foo", []string{"_x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pattern.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %s", tt.src, err)
			}
			if p.Move != tt.move {
				t.Errorf("Parse(%q): move = %v, want %v", tt.src, p.Move, tt.move)
			}
			if p.Callable != tt.callable {
				t.Errorf("Parse(%q): callable = %q, want %q", tt.src, p.Callable, tt.callable)
			}
			if got := slots(p); !eq(got, tt.slots) {
				t.Errorf("Parse(%q): slots = %v, want %v", tt.src, got, tt.slots)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"placeholder as callable", "_ => 1, 2"},
		{"placeholder in path", "foo._ => 1"},
		{"bare callable", "foo"},
		{"bare move callable", "move foo"},
		{"no separator", "foo[0], _"},
		{"unbalanced parens", "foo(_, 2"},
		{"trailing junk after parens", "foo(_, 2) extra"},
		{"empty middle slot", "foo => 1, , 2"},
		{"bad expression", "foo => 1 ++++ , 2"},
		{"statement in slot", "foo => x := 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pattern.Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.src, p)
			}
			if !errors.Is(err, pattern.ErrBadPattern) {
				t.Errorf("Parse(%q) error %v does not wrap ErrBadPattern", tt.src, err)
			}
		})
	}
}

func TestHoles(t *testing.T) {
	p, err := pattern.Parse("foo => _, _, 10, _, 10, 10")
	if err != nil {
		t.Fatal(err)
	}
	if n := p.Holes(); n != 3 {
		t.Errorf("Holes() = %d, want 3", n)
	}
}
