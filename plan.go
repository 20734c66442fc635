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
	"strconv"

	"github.com/db47h/scanfmt/pattern"
	"go.uber.org/multierr"
)

// A Plan is a compiled pattern: a parsed pattern where each field has been
// resolved to an argument slot.
//
// A Plan is immutable and safe for concurrent use.
//
type Plan struct {
	src   string
	pat   pattern.Pattern
	slots []int // per piece, -1 for literals
	names []string
}

// Compile parses a pattern and resolves its fields against the given argument
// names. The number of names is the number of arguments. An empty name
// declares an anonymous argument that fields can only refer to by position or
// index.
//
// Syntax errors are reported as a *pattern.Error. Resolution errors are
// reported as one or more *ArgError combined in a single error; use errors.As
// to inspect them, or multierr.Errors to list them.
//
func Compile(src string, names ...string) (*Plan, error) {
	pat, err := pattern.Parse(src)
	if err != nil {
		return nil, err
	}
	return compile(src, pat, names)
}

// CompilePattern is like Compile for an already parsed pattern. Empty
// literals are dropped and adjacent literals merged, as Parse would do for the
// same source.
//
func CompilePattern(pat pattern.Pattern, names ...string) (*Plan, error) {
	pat = normalize(pat)
	return compile(pat.String(), pat, names)
}

// normalize returns a copy of pat with nil pieces and empty literals removed
// and adjacent literals merged.
//
func normalize(pat pattern.Pattern) pattern.Pattern {
	res := make(pattern.Pattern, 0, len(pat))
	for _, pc := range pat {
		switch pc := pc.(type) {
		case pattern.Lit:
			if pc == "" {
				continue
			}
			if n := len(res); n > 0 {
				if prev, ok := res[n-1].(pattern.Lit); ok {
					res[n-1] = prev + pc
					continue
				}
			}
			res = append(res, pc)
		case pattern.Field:
			res = append(res, pc)
		}
	}
	return res
}

// MustCompile is like Compile but panics on error.
//
func MustCompile(src string, names ...string) *Plan {
	p, err := Compile(src, names...)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(src string, pat pattern.Pattern, names []string) (*Plan, error) {
	names = append([]string(nil), names...)
	slots, err := resolve(pat, names)
	if err != nil {
		return nil, err
	}
	return &Plan{
		src:   src,
		pat:   append(pattern.Pattern(nil), pat...),
		slots: slots,
		names: names,
	}, nil
}

// resolve maps each field of pat to an argument slot.
//
func resolve(pat pattern.Pattern, names []string) ([]int, error) {
	var errs error

	idents := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			continue
		}
		if prev, ok := idents[n]; ok {
			errs = multierr.Append(errs, &ArgError{Kind: DuplicateArgumentName, Pos: -1, Slot: i, Name: n, Prev: prev})
			continue
		}
		idents[n] = i
	}
	if errs != nil {
		return nil, errs
	}

	var (
		cnt   int
		used  = make([]bool, len(names))
		slots = make([]int, len(pat))
	)
	for i, pc := range pat {
		slots[i] = -1
		f, ok := pc.(pattern.Field)
		if !ok {
			continue
		}
		var (
			slot     int
			implicit bool
		)
		switch f.Arg.Kind {
		case pattern.Implicit:
			slot, implicit = cnt, true
			cnt++
		case pattern.Index:
			slot = f.Arg.Index
		case pattern.Named:
			n, ok := idents[f.Arg.Name]
			if !ok {
				errs = multierr.Append(errs, &ArgError{Kind: UnknownArgumentName, Pos: f.Pos, Slot: -1, Name: f.Arg.Name})
				continue
			}
			slot = n
		}
		if slot < 0 || slot >= len(names) {
			errs = multierr.Append(errs, &ArgError{Kind: IndexOutOfBounds, Pos: f.Pos, Slot: slot, Implicit: implicit})
			continue
		}
		if used[slot] {
			errs = multierr.Append(errs, &ArgError{Kind: SlotReferencedTwice, Pos: f.Pos, Slot: slot, Name: argName(names, slot)})
			continue
		}
		used[slot] = true
		slots[i] = slot
	}
	if errs != nil {
		return nil, errs
	}
	for i, u := range used {
		if !u {
			errs = multierr.Append(errs, &ArgError{Kind: UnusedArgument, Pos: -1, Slot: i, Name: argName(names, i)})
		}
	}
	if errs != nil {
		return nil, errs
	}
	return slots, nil
}

// argName returns a printable name for argument i.
//
func argName(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "#" + strconv.Itoa(i)
}

// String returns the pattern source the plan was compiled from.
//
func (p *Plan) String() string {
	return p.src
}

// Pattern returns the parsed pattern.
//
func (p *Plan) Pattern() pattern.Pattern {
	return append(pattern.Pattern(nil), p.pat...)
}

// NumArgs returns the number of arguments.
//
func (p *Plan) NumArgs() int {
	return len(p.names)
}

// Names returns the argument names, in declaration order.
//
func (p *Plan) Names() []string {
	return append([]string(nil), p.names...)
}

// ArgName returns the name of argument i, or "#i" for anonymous arguments.
//
func (p *Plan) ArgName(i int) string {
	return argName(p.names, i)
}

// Slot returns the argument slot of the piece at index i in the pattern, or -1
// if the piece is a literal.
//
func (p *Plan) Slot(i int) int {
	return p.slots[i]
}
