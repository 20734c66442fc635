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

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Pos is a byte offset within a pattern source.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// Position describes a source position as line and column.
//
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 1-based column number (byte index)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate returns the line and column of pos in src. Offsets past the end of src
// are clamped to len(src).
//
func Locate(src string, pos Pos) Position {
	off := clamp(src, pos)
	line := 1 + strings.Count(src[:off], "\n")
	start := strings.LastIndexByte(src[:off], '\n') + 1
	return Position{Offset: off, Line: line, Column: off - start + 1}
}

// Line returns the text of the line containing pos, without its line
// terminator.
//
func Line(src string, pos Pos) string {
	off := clamp(src, pos)
	start := strings.LastIndexByte(src[:off], '\n') + 1
	end := strings.IndexByte(src[off:], '\n')
	if end < 0 {
		return src[start:]
	}
	return src[start : off+end]
}

// Caret returns a two-line report: the line of src containing pos, and a line
// with a caret under the character at pos.
//
// Column alignment assumes a monospaced font and a UTF-8 locale: East Asian
// wide and full-width characters count as two cells.
//
func Caret(src string, pos Pos) string {
	l := Line(src, pos)
	p := Locate(src, pos)
	b := p.Column - 1
	if b > len(l) {
		b = len(l)
	}
	return fmt.Sprintf("%s\n%*s^", l, Width(l[:b]), "")
}

// Width computes the width in text cells of s.
//
func Width(s string) int {
	w := 0
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
		if r == '\t' {
			w++
			continue
		}
		if !unicode.IsGraphic(r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			// EastAsianAmbiguous depends on user locale. 2 if locale is CJK, 1 otherwise.
			w++
		}
	}
	return w
}

func clamp(src string, pos Pos) int {
	switch {
	case pos < 0:
		return 0
	case int(pos) > len(src):
		return len(src)
	}
	return int(pos)
}
