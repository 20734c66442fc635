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

/*
Package scanfmt scans text into typed values according to a format pattern. It
is the inverse of a printf-style formatter: given the pattern "{}x{}" and the
input "42x100", it extracts the values 42 and 100.

Patterns

A pattern alternates literal text and fields. A field is enclosed in braces and
refers to one argument:

	{}         the next argument, counting from 0
	{2}        argument 2
	{name}     the argument with the given name
	{:x}       the next argument, with a spec

A spec selects a numeric base: o (octal), x (lower case hexadecimal), X (upper
case hexadecimal) or b (binary). Without a spec, numbers are decimal. Literal
braces are written {{ and }}. The pattern sub-package implements the syntax.

Compiling

Compile parses a pattern and binds each field to an argument slot. Arguments
are declared by name, in order. An empty name declares an anonymous argument:

	p, err := scanfmt.Compile("{y}-{m}-{d}", "y", "m", "d")

Each argument must be referenced by exactly one field. All binding mistakes
found in a pattern are reported together; use errors.As to get at each
*ArgError, or multierr.Errors to list them.

Scanning

A Scanner binds a decoder to each argument of a plan. The decode sub-package
provides decoders for integers, floats, big integers and strings:

	s, err := scanfmt.NewScanner(p, []scanfmt.Decoder{
		decode.Int[int]{}, decode.Uint[uint8]{}, decode.Uint[uint8]{},
	})
	vals, err := s.Scan("2024-02-29")

Literals must match the input exactly. The extent of a field is found without
backtracking, from the piece that follows it:

	- the last field takes the remaining input;
	- a field followed by a literal ends before the first occurrence of the
	  literal's first character;
	- a field followed by another field ends before the first character that
	  may start a value of the next field, as reported by its decoder's
	  ValidStart method.

The last rule does not look at the field's own content. A field whose
successor accepts any character as a valid start, such as a string, is always
empty.

Scan returns the values in argument order, or a *ScanError for the first step
that failed. No partial results are returned.

For simple cases, Sscan and SscanNamed derive the decoders from the types of
the destination pointers:

	var w, h int
	err := scanfmt.Sscan("640x480", "{}x{}", &w, &h)

*/
package scanfmt
