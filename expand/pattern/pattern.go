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

// Package pattern parses partial-application patterns of the form
//
//	["move"] callable ( "(" args ")" | sep args )
//
// where sep is ",", ";", "=>" or plain whitespace, callable is a dotted
// identifier path and each argument is either the placeholder "_" or a Go
// expression. Trailing commas and an empty argument list are accepted.
package pattern

import (
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"regexp"
	"strings"
)

// ErrBadPattern is the single failure class of the parser: the input does not
// match any recognized invocation form. All errors returned by [Parse] wrap
// it; no partially parsed result is ever returned alongside one.
var ErrBadPattern = errors.New("no expansion rule matches pattern")

// A Slot is one entry of the argument list: the placeholder, or a fixed Go
// expression kept as source text and emitted verbatim by the expander.
type Slot struct {
	Hole bool
	Expr string
}

func (s Slot) String() string {
	if s.Hole {
		return "_"
	}
	return s.Expr
}

// A Pattern is a parsed invocation: the capture flag, the dotted callable
// path and the ordered argument slots.
type Pattern struct {
	Move     bool
	Callable string
	Slots    []Slot
}

// Holes returns the number of placeholder slots, which is the parameter
// count of the closure the expander will build.
func (p *Pattern) Holes() int {
	n := 0
	for _, s := range p.Slots {
		if s.Hole {
			n++
		}
	}
	return n
}

func (p *Pattern) String() string {
	var b strings.Builder
	if p.Move {
		b.WriteString("move ")
	}
	b.WriteString(p.Callable)
	b.WriteString(" => ")
	for i, s := range p.Slots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

var callablePath = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*`)

func badPattern(src string, reason string) error {
	return fmt.Errorf("%w: %s in %q", ErrBadPattern, reason, src)
}

// Parse parses an invocation pattern. Any input that does not match the
// grammar yields an error wrapping [ErrBadPattern]; there are no other
// failure modes.
func Parse(src string) (*Pattern, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return nil, badPattern(src, "empty pattern")
	}

	p := &Pattern{}
	if rest, ok := strings.CutPrefix(s, "move"); ok && rest != strings.TrimLeft(rest, " \t") {
		p.Move = true
		s = strings.TrimLeft(rest, " \t")
	}

	path := callablePath.FindString(s)
	if path == "" {
		return nil, badPattern(src, "missing callable reference")
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "_" {
			return nil, badPattern(src, "placeholder used as callable reference")
		}
	}
	p.Callable = path

	rest := s[len(path):]
	trimmed := strings.TrimLeft(rest, " \t")
	var argsrc string
	switch {
	case trimmed == "":
		return nil, badPattern(src, "callable without argument list")
	case strings.HasPrefix(trimmed, "=>"):
		argsrc = trimmed[2:]
	case trimmed[0] == ',' || trimmed[0] == ';':
		argsrc = trimmed[1:]
	case trimmed[0] == '(':
		inner, ok := parenBody(trimmed)
		if !ok {
			return nil, badPattern(src, "unbalanced parenthesized argument list")
		}
		argsrc = inner
	default:
		// Whitespace is a valid separator, but only if there was some.
		if len(rest) == len(trimmed) {
			return nil, badPattern(src, "missing separator after callable")
		}
		argsrc = trimmed
	}

	pieces, err := splitArgs(argsrc)
	if err != nil {
		return nil, badPattern(src, err.Error())
	}
	for i, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			if i == len(pieces)-1 {
				break // trailing comma
			}
			return nil, badPattern(src, "empty argument slot")
		}
		if piece == "_" {
			p.Slots = append(p.Slots, Slot{Hole: true})
			continue
		}
		if _, err := parser.ParseExpr(piece); err != nil {
			return nil, badPattern(src, fmt.Sprintf("argument %q is not a valid expression", piece))
		}
		p.Slots = append(p.Slots, Slot{Expr: piece})
	}
	return p, nil
}

// parenBody returns the contents of s when s is exactly one balanced
// parenthesized group, possibly followed by whitespace.
func parenBody(s string) (string, bool) {
	end, ok := matchDelim(s)
	if !ok || strings.TrimSpace(s[end+1:]) != "" {
		return "", false
	}
	return s[1:end], true
}

// matchDelim finds the offset of the delimiter closing the group opened at
// s[0], honoring nesting and string/rune/backquote literals.
func matchDelim(s string) (int, bool) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(s))
	errored := false
	var sc scanner.Scanner
	sc.Init(file, []byte(s), func(token.Position, string) { errored = true }, 0)

	depth := 0
	for {
		pos, tok, _ := sc.Scan()
		if tok == token.EOF || errored {
			return 0, false
		}
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
			if depth == 0 {
				return file.Offset(pos), true
			}
		}
	}
}

// splitArgs splits the argument list at depth-0 commas. It is token-aware,
// so commas inside nested calls, composite literals, or string literals do
// not split.
func splitArgs(argsrc string) ([]string, error) {
	if strings.TrimSpace(argsrc) == "" {
		return nil, nil
	}
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(argsrc))
	errored := false
	var sc scanner.Scanner
	sc.Init(file, []byte(argsrc), func(token.Position, string) { errored = true }, 0)

	var pieces []string
	depth := 0
	start := 0
	for {
		pos, tok, _ := sc.Scan()
		if tok == token.EOF {
			break
		}
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced argument list")
			}
		case token.COMMA:
			if depth == 0 {
				off := file.Offset(pos)
				pieces = append(pieces, argsrc[start:off])
				start = off + 1
			}
		}
	}
	if errored || depth != 0 {
		return nil, errors.New("malformed argument list")
	}
	pieces = append(pieces, argsrc[start:])
	return pieces, nil
}
