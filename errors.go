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

package scanfmt

import (
	"errors"
	"fmt"

	"github.com/db47h/scanfmt/pattern"
)

// Scan errors.
//
var (
	ErrEOF             = errors.New("reached end of input while scanning")
	ErrLiteralMismatch = errors.New("literal mismatch")
	ErrLiteralNotFound = errors.New("literal was not found")
)

// ErrDecoderCount is returned by NewScanner when the number of decoders does
// not match the number of arguments of the plan.
//
var ErrDecoderCount = errors.New("wrong number of decoders")

// ErrUnsupportedType is returned by Sscan for a destination of an unsupported
// type.
//
var ErrUnsupportedType = errors.New("unsupported destination type")

// ScanErrorKind is the kind of a ScanError.
//
type ScanErrorKind uint8

// Scan error kinds.
//
const (
	EOF             ScanErrorKind = iota // no boundary found before end of input
	LiteralMismatch                      // input does not match the expected literal
	LiteralNotFound                      // not enough input left for the expected literal
	Decode                               // the decoder rejected the field's text
)

var scanKindNames = [...]string{
	EOF:             "EOF",
	LiteralMismatch: "LiteralMismatch",
	LiteralNotFound: "LiteralNotFound",
	Decode:          "Decode",
}

func (k ScanErrorKind) String() string {
	if int(k) < len(scanKindNames) {
		return scanKindNames[k]
	}
	return fmt.Sprintf("ScanErrorKind(%d)", k)
}

// ScanError is returned by Scanner.Scan when the input does not match the plan.
//
// For Kind == Decode, Err is the error returned by the decoder. For other
// kinds, Err is one of ErrEOF, ErrLiteralMismatch or ErrLiteralNotFound.
//
type ScanError struct {
	Kind   ScanErrorKind
	Offset int    // byte offset in the input of the failing step
	Piece  int    // index of the failing piece in the pattern
	Slot   int    // argument slot of the failing field, -1 for literals
	Text   string // expected literal, or the text delimited for the field
	Err    error
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case Decode:
		return fmt.Sprintf("offset %d: argument %d: %v", e.Offset, e.Slot, e.Err)
	case LiteralMismatch, LiteralNotFound:
		return fmt.Sprintf("offset %d: %v: expected %q", e.Offset, e.Err, e.Text)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ArgErrorKind is the kind of an ArgError.
//
type ArgErrorKind uint8

// Argument error kinds.
//
const (
	UnknownArgumentName   ArgErrorKind = iota // {name} with no such argument
	DuplicateArgumentName                     // the same name declared twice
	IndexOutOfBounds                          // implicit or specified index >= argument count
	SlotReferencedTwice                       // two fields resolve to the same argument
	UnusedArgument                            // an argument no field refers to
	MissingDecoder                            // nil decoder bound to an argument
	UnsupportedSpec                           // the decoder does not support the field's spec
)

var argKindNames = [...]string{
	UnknownArgumentName:   "UnknownArgumentName",
	DuplicateArgumentName: "DuplicateArgumentName",
	IndexOutOfBounds:      "IndexOutOfBounds",
	SlotReferencedTwice:   "SlotReferencedTwice",
	UnusedArgument:        "UnusedArgument",
	MissingDecoder:        "MissingDecoder",
	UnsupportedSpec:       "UnsupportedSpec",
}

func (k ArgErrorKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return fmt.Sprintf("ArgErrorKind(%d)", k)
}

// ArgError reports a field that cannot be bound to an argument, or an invalid
// argument list.
//
type ArgError struct {
	Kind     ArgErrorKind
	Pos      pattern.Pos  // field position in the pattern, -1 if not related to a field
	Slot     int          // argument index, -1 if unknown
	Name     string       // argument name
	Prev     int          // previous declaration of a duplicate name
	Implicit bool         // for IndexOutOfBounds: true if the index was implicit
	Spec     pattern.Spec // for UnsupportedSpec
}

func (e *ArgError) Error() string {
	switch e.Kind {
	case UnknownArgumentName:
		return fmt.Sprintf("offset %d: there is no argument named %s", e.Pos, e.Name)
	case DuplicateArgumentName:
		return fmt.Sprintf("duplicate argument %s at index %d: argument previously defined at index %d", e.Name, e.Slot, e.Prev)
	case IndexOutOfBounds:
		s := "specified"
		if e.Implicit {
			s = "implicit"
		}
		return fmt.Sprintf("offset %d: %s index %d is out of bounds", e.Pos, s, e.Slot)
	case SlotReferencedTwice:
		return fmt.Sprintf("offset %d: %s is referenced multiple times", e.Pos, e.Name)
	case UnusedArgument:
		return fmt.Sprintf("%s is never referenced", e.Name)
	case MissingDecoder:
		return fmt.Sprintf("no decoder for %s", e.Name)
	case UnsupportedSpec:
		return fmt.Sprintf("offset %d: decoder for %s does not support spec %s", e.Pos, e.Name, e.Spec)
	}
	return fmt.Sprintf("argument error %s", e.Kind)
}
