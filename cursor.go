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

import "unicode/utf8"

// eof is the return value from cursor.Next when the end of the input is
// reached.
//
const eof rune = -1

// cursor walks the input one rune at a time.
//
// Invalid UTF-8 bytes are returned as utf8.RuneError with a width of one byte.
//
type cursor struct {
	src  string
	offs int // offset of the next rune
	last int // width of the last rune returned by Next, 0 after Backup or Seek
}

// Next returns the next rune in the input, or eof.
//
func (c *cursor) Next() rune {
	if c.offs >= len(c.src) {
		c.last = 0
		return eof
	}
	// Common case: ASCII
	if b := c.src[c.offs]; b < utf8.RuneSelf {
		c.offs++
		c.last = 1
		return rune(b)
	}
	r, w := utf8.DecodeRuneInString(c.src[c.offs:])
	c.offs += w
	c.last = w
	return r
}

// Backup reverts the last call to Next. It can be called only once in a row;
// further calls are no-ops.
//
func (c *cursor) Backup() {
	c.offs -= c.last
	c.last = 0
}

// Offset returns the byte offset of the next rune.
//
func (c *cursor) Offset() int {
	return c.offs
}

// Seek moves the cursor to offset offs.
//
func (c *cursor) Seek(offs int) {
	c.offs = offs
	c.last = 0
}
