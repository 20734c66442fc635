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

// Package decode provides decoders for the built-in scannable types.
//
// A decoder turns the text delimited for one field into a typed value. It also
// reports, for a given spec, whether a character may start such a value. The
// scan engine uses that start predicate to find where a field ends when it is
// immediately followed by another field.
//
// All decoders in this package are stateless and safe for concurrent use. Each
// of them implements scanfmt.Decoder, and also provides a typed Parse method:
//
//	v, err := decode.Int[int32]{}.Parse(pattern.LowerHex, "7f")
//
// Decoders parse the entire given text. Any leftover or invalid content is an
// error, not a partial success.
//
package decode

import (
	"errors"
	"strconv"
	"strings"

	"github.com/db47h/scanfmt/pattern"
	"github.com/samber/lo"
)

// ErrEmpty is the cause reported when a non-text decoder is handed an empty
// string. It is wrapped in a *strconv.NumError.
//
var ErrEmpty = errors.New("cannot parse empty string")

func numError(fn, s string, err error) error {
	return &strconv.NumError{Func: fn, Num: s, Err: err}
}

// String decodes any text verbatim. Only the default spec is supported and any
// character is a valid start.
//
type String struct{}

// Supports returns true for pattern.Default only.
//
func (String) Supports(spec pattern.Spec) bool { return spec == pattern.Default }

// ValidStart always returns true.
//
func (String) ValidStart(pattern.Spec, rune) bool { return true }

// Parse returns a copy of s.
//
func (String) Parse(_ pattern.Spec, s string) (string, error) {
	return strings.Clone(s), nil
}

// Decode implements scanfmt.Decoder.
//
func (d String) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}

// Quoted decodes a double-quoted or back-quoted Go string literal.
//
type Quoted struct{}

// Supports returns true for pattern.Default only.
//
func (Quoted) Supports(spec pattern.Spec) bool { return spec == pattern.Default }

// ValidStart returns true for '"' and '`'.
//
func (Quoted) ValidStart(_ pattern.Spec, r rune) bool { return r == '"' || r == '`' }

// Parse unquotes s.
//
func (Quoted) Parse(_ pattern.Spec, s string) (string, error) {
	if s == "" {
		return "", numError("Unquote", s, ErrEmpty)
	}
	if s[0] == '\'' {
		// strconv.Unquote would return a single character string.
		return "", numError("Unquote", s, strconv.ErrSyntax)
	}
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", numError("Unquote", s, err)
	}
	return v, nil
}

// Decode implements scanfmt.Decoder.
//
func (d Quoted) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}

// Func is a decoder for type T built from functions.
//
// If Specs is empty, only pattern.Default is supported. A nil Start accepts any
// character.
//
type Func[T any] struct {
	Specs []pattern.Spec
	Start func(spec pattern.Spec, r rune) bool
	Scan  func(spec pattern.Spec, s string) (T, error)
}

// Supports implements scanfmt.Decoder.
//
func (f Func[T]) Supports(spec pattern.Spec) bool {
	if len(f.Specs) == 0 {
		return spec == pattern.Default
	}
	return lo.Contains(f.Specs, spec)
}

// ValidStart implements scanfmt.Decoder.
//
func (f Func[T]) ValidStart(spec pattern.Spec, r rune) bool {
	if f.Start == nil {
		return true
	}
	return f.Start(spec, r)
}

// Parse calls f.Scan.
//
func (f Func[T]) Parse(spec pattern.Spec, s string) (T, error) {
	return f.Scan(spec, s)
}

// Decode implements scanfmt.Decoder.
//
func (f Func[T]) Decode(spec pattern.Spec, s string) (any, error) {
	return f.Scan(spec, s)
}
