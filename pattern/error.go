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

package pattern

import "fmt"

// ErrorKind identifies a pattern syntax error.
//
type ErrorKind uint8

// Syntax error kinds.
//
const (
	UnterminatedField ErrorKind = iota // '{' without a matching '}'
	NestedField                        // '{' inside a field
	UnmatchedBrace                     // '}' without a preceding '{'
	InvalidSpec                        // unknown character after ':'
)

var kindNames = [...]string{
	UnterminatedField: "UnterminatedField",
	NestedField:       "NestedField",
	UnmatchedBrace:    "UnmatchedBrace",
	InvalidSpec:       "InvalidSpec",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is a pattern syntax error.
//
type Error struct {
	Kind  ErrorKind
	Pos   Pos  // offset of the offending character
	Open  Pos  // offset of the enclosing field's '{', or -1
	Found rune // offending character, for InvalidSpec
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnterminatedField:
		return fmt.Sprintf("unterminated field: '{' at offset %d is never closed", e.Pos)
	case NestedField:
		return fmt.Sprintf("attempt to open a field at offset %d while the field at offset %d is not closed", e.Pos, e.Open)
	case UnmatchedBrace:
		return fmt.Sprintf("unmatched '}' with no opening brace at offset %d", e.Pos)
	case InvalidSpec:
		return fmt.Sprintf("expected one of 'o', 'x', 'X', or 'b' after ':', found %q at offset %d", e.Found, e.Pos)
	}
	return fmt.Sprintf("pattern error %s at offset %d", e.Kind, e.Pos)
}
