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

package decode

import (
	"errors"
	"math/big"
	"strconv"
	"unsafe"

	"github.com/db47h/scanfmt/pattern"
	"golang.org/x/exp/constraints"
)

// digitVal returns the value of r as a digit in bases up to 36, or 36 if r is
// not a digit in any base.
//
func digitVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'z':
		return int(r - 'a' + 10)
	case r >= 'A' && r <= 'Z':
		return int(r - 'A' + 10)
	}
	return 36
}

// renum replaces the text in a *strconv.NumError with s, the text as given to
// the decoder.
//
func renum(fn, s string, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return numError(fn, s, ne.Err)
	}
	return err
}

func isDigit(r rune, base int) bool {
	return digitVal(r) < base
}

// startsNumber reports whether r may start an integer written with the given
// spec. Signs are always accepted: '+' for all integers, '-' only if signed.
//
func startsNumber(spec pattern.Spec, r rune, signed bool) bool {
	if r == '+' || signed && r == '-' {
		return true
	}
	switch spec {
	case pattern.Default:
		return isDigit(r, 10)
	case pattern.Octal:
		return isDigit(r, 8)
	case pattern.Binary:
		return r == '0' || r == '1'
	case pattern.LowerHex:
		return isDigit(r, 16)
	case pattern.UpperHex:
		return isDigit(r, 10) || r >= 'A' && r <= 'F'
	}
	return false
}

// toLowerASCII lower-cases the ASCII letters in s.
//
func toLowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if c := b[j]; c >= 'A' && c <= 'Z' {
					b[j] = c + 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// digits returns the text to hand over to strconv for the given spec.
//
func digits(spec pattern.Spec, s string) string {
	if spec == pattern.UpperHex {
		return toLowerASCII(s)
	}
	return s
}

func bitSize[T constraints.Integer | constraints.Float]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// Int decodes signed integers of type T. All specs are supported.
//
type Int[T constraints.Signed] struct{}

// Supports returns true for all valid specs.
//
func (Int[T]) Supports(spec pattern.Spec) bool { return spec.IsValid() }

// ValidStart returns true for a digit of the spec's base or a sign.
//
func (Int[T]) ValidStart(spec pattern.Spec, r rune) bool {
	return startsNumber(spec, r, true)
}

// Parse parses s in the spec's base. No base prefix is allowed.
//
func (Int[T]) Parse(spec pattern.Spec, s string) (T, error) {
	if s == "" {
		return 0, numError("ParseInt", s, ErrEmpty)
	}
	v, err := strconv.ParseInt(digits(spec, s), spec.Base(), bitSize[T]())
	if err != nil {
		return 0, renum("ParseInt", s, err)
	}
	return T(v), nil
}

// Decode implements scanfmt.Decoder.
//
func (d Int[T]) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}

// Uint decodes unsigned integers of type T. All specs are supported.
//
type Uint[T constraints.Unsigned] struct{}

// Supports returns true for all valid specs.
//
func (Uint[T]) Supports(spec pattern.Spec) bool { return spec.IsValid() }

// ValidStart returns true for a digit of the spec's base or '+'.
//
func (Uint[T]) ValidStart(spec pattern.Spec, r rune) bool {
	return startsNumber(spec, r, false)
}

// Parse parses s in the spec's base. A single leading '+' is allowed.
//
func (Uint[T]) Parse(spec pattern.Spec, s string) (T, error) {
	if s == "" {
		return 0, numError("ParseUint", s, ErrEmpty)
	}
	num := s
	if s[0] == '+' {
		num = s[1:]
		if num == "" || num[0] == '+' {
			return 0, numError("ParseUint", s, strconv.ErrSyntax)
		}
	}
	v, err := strconv.ParseUint(digits(spec, num), spec.Base(), bitSize[T]())
	if err != nil {
		return 0, renum("ParseUint", s, err)
	}
	return T(v), nil
}

// Decode implements scanfmt.Decoder.
//
func (d Uint[T]) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}

// Float decodes floating-point numbers of type T. Only the default spec is
// supported.
//
// The accepted syntax is that of strconv.ParseFloat, including "inf" and "NaN".
//
type Float[T constraints.Float] struct{}

// Supports returns true for pattern.Default only.
//
func (Float[T]) Supports(spec pattern.Spec) bool { return spec == pattern.Default }

// ValidStart returns true for a digit, a sign, 'i' (inf) or 'N' (NaN).
//
func (Float[T]) ValidStart(_ pattern.Spec, r rune) bool {
	switch r {
	case 'i', 'N', '-', '+':
		return true
	}
	return isDigit(r, 10)
}

// Parse parses s as a floating-point number.
//
func (Float[T]) Parse(_ pattern.Spec, s string) (T, error) {
	if s == "" {
		return 0, numError("ParseFloat", s, ErrEmpty)
	}
	v, err := strconv.ParseFloat(s, bitSize[T]())
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// Decode implements scanfmt.Decoder.
//
func (d Float[T]) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}

// BigInt decodes arbitrary precision signed integers as *big.Int. All specs are
// supported.
//
type BigInt struct{}

// Supports returns true for all valid specs.
//
func (BigInt) Supports(spec pattern.Spec) bool { return spec.IsValid() }

// ValidStart returns true for a digit of the spec's base or a sign.
//
func (BigInt) ValidStart(spec pattern.Spec, r rune) bool {
	return startsNumber(spec, r, true)
}

// Parse parses s in the spec's base.
//
func (BigInt) Parse(spec pattern.Spec, s string) (*big.Int, error) {
	if s == "" {
		return nil, numError("SetString", s, ErrEmpty)
	}
	// big.Int.SetString accepts underscores with base 0 only, and no prefix
	// with an explicit base.
	z, ok := new(big.Int).SetString(digits(spec, s), spec.Base())
	if !ok {
		return nil, numError("SetString", s, strconv.ErrSyntax)
	}
	return z, nil
}

// Decode implements scanfmt.Decoder.
//
func (d BigInt) Decode(spec pattern.Spec, s string) (any, error) {
	return d.Parse(spec, s)
}
