// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package pattern implements the parser for scan patterns.
//
// A pattern is a sequence of literal text and fields. A field is enclosed in
// braces and optionally names its argument and a numeric spec:
//
//	{}        next implicit argument, default spec
//	{1}       argument at index 1
//	{name}    argument named "name"
//	{:x}      next implicit argument, lower-case hexadecimal
//	{n:o}     argument "n", octal
//
// Literal braces are written {{ and }}.
//
package pattern

import (
	"strconv"
	"strings"
)

// ArgKind tells how a field refers to its argument.
//
type ArgKind uint8

// Argument reference kinds.
//
const (
	Implicit ArgKind = iota // {} consumes the next positional argument
	Index                   // {3}
	Named                   // {name}
)

// Argument is a field's reference to an argument slot.
//
type Argument struct {
	Kind  ArgKind
	Index int    // valid for Kind == Index
	Name  string // valid for Kind == Named
}

func (a Argument) String() string {
	switch a.Kind {
	case Index:
		return strconv.Itoa(a.Index)
	case Named:
		return a.Name
	}
	return ""
}

// A Piece is either a Lit or a Field.
//
type Piece interface {
	piece()
	String() string
}

// Lit is literal text to be matched exactly.
//
type Lit string

// Field is a placeholder for one decoded value.
//
type Field struct {
	Arg  Argument
	Spec Spec
	Pos  Pos // offset of the opening brace in the pattern source
}

func (Lit) piece()   {}
func (Field) piece() {}

var litEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// String returns l with braces escaped.
//
func (l Lit) String() string {
	return litEscaper.Replace(string(l))
}

func (f Field) String() string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(f.Arg.String())
	if f.Spec != Default {
		b.WriteByte(':')
		b.WriteString(f.Spec.Verb())
	}
	b.WriteByte('}')
	return b.String()
}

// Pattern is a parsed pattern. Two Lit pieces are never adjacent.
//
type Pattern []Piece

// String returns the canonical source text of p.
//
func (p Pattern) String() string {
	var b strings.Builder
	for _, pc := range p {
		b.WriteString(pc.String())
	}
	return b.String()
}

// NumFields returns the number of Field pieces in p.
//
func (p Pattern) NumFields() int {
	n := 0
	for _, pc := range p {
		if _, ok := pc.(Field); ok {
			n++
		}
	}
	return n
}

// Parse parses src into a Pattern. On failure, the returned error is a *Error.
//
func Parse(src string) (Pattern, error) {
	var (
		p    Pattern
		lit  strings.Builder
		open = Pos(-1) // position of the unclosed '{', if any
	)
	flush := func() {
		if lit.Len() > 0 {
			p = append(p, Lit(lit.String()))
			lit.Reset()
		}
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		if open.IsValid() {
			switch c {
			case '{':
				return nil, &Error{Kind: NestedField, Pos: Pos(i), Open: open}
			case '}':
				f, err := parseField(src[open+1:i], open)
				if err != nil {
					return nil, err
				}
				flush()
				p = append(p, f)
				open = -1
			}
			continue
		}
		switch c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			open = Pos(i)
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &Error{Kind: UnmatchedBrace, Pos: Pos(i), Open: -1}
		default:
			lit.WriteByte(c)
		}
	}
	if open.IsValid() {
		return nil, &Error{Kind: UnterminatedField, Pos: open, Open: open}
	}
	flush()
	return p, nil
}

// MustParse is like Parse but panics on error.
//
func MustParse(src string) Pattern {
	p, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return p
}

// parseField parses the body of a field. open is the position of the opening
// brace; the body starts at open+1.
//
func parseField(body string, open Pos) (Field, error) {
	f := Field{Pos: open}
	left, right, hasSpec := strings.Cut(body, ":")
	switch {
	case left == "":
		f.Arg.Kind = Implicit
	default:
		if n, err := strconv.ParseUint(left, 10, 0); err == nil && n <= maxIndex {
			f.Arg = Argument{Kind: Index, Index: int(n)}
		} else {
			f.Arg = Argument{Kind: Named, Name: left}
		}
	}
	if !hasSpec || right == "" {
		return f, nil
	}
	// offset of the first spec character in the pattern source
	base := int(open) + 1 + len(left) + 1
	for i, r := range right {
		if i == 0 {
			s, ok := specFromVerb(r)
			if !ok {
				return f, &Error{Kind: InvalidSpec, Pos: Pos(base), Open: open, Found: r}
			}
			f.Spec = s
			continue
		}
		return f, &Error{Kind: InvalidSpec, Pos: Pos(base + i), Open: open, Found: r}
	}
	return f, nil
}

const maxIndex = uint64(^uint(0) >> 1)
