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

import "strconv"

// Spec selects the numeric base used to decode a field and to test whether a
// character may start a value.
//
type Spec uint8

// Format specs.
//
const (
	Default  Spec = iota // {}
	Octal                // {:o}
	LowerHex             // {:x}
	UpperHex             // {:X}
	Binary               // {:b}
)

var specs = [...]struct {
	name string
	verb string
	base int
}{
	Default:  {"Default", "", 10},
	Octal:    {"Octal", "o", 8},
	LowerHex: {"LowerHex", "x", 16},
	UpperHex: {"UpperHex", "X", 16},
	Binary:   {"Binary", "b", 2},
}

// IsValid returns true if s is one of the defined specs.
//
func (s Spec) IsValid() bool {
	return int(s) < len(specs)
}

func (s Spec) String() string {
	if !s.IsValid() {
		return "Spec(" + strconv.Itoa(int(s)) + ")"
	}
	return specs[s].name
}

// Verb returns the spec letter as written after the colon in a field, or an
// empty string for Default.
//
func (s Spec) Verb() string {
	if !s.IsValid() {
		return ""
	}
	return specs[s].verb
}

// Base returns the numeric base associated with s.
//
func (s Spec) Base() int {
	if !s.IsValid() {
		return 0
	}
	return specs[s].base
}

// specFromVerb maps a spec letter to a Spec.
//
func specFromVerb(r rune) (Spec, bool) {
	switch r {
	case 'o':
		return Octal, true
	case 'x':
		return LowerHex, true
	case 'X':
		return UpperHex, true
	case 'b':
		return Binary, true
	}
	return Default, false
}
