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
	"fmt"
	"unicode/utf8"

	"github.com/db47h/scanfmt/pattern"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// A Decoder decodes the text of one field into a value of its type.
//
// Decode must parse the whole of s; any leftover or invalid content is an
// error. ValidStart reports whether r could begin a value written with the
// given spec. It is used to delimit a field that is immediately followed by
// another field. ValidStart and Decode are only called with specs for which
// Supports returns true.
//
// The decode sub-package provides decoders for the built-in types.
//
type Decoder interface {
	Supports(spec pattern.Spec) bool
	ValidStart(spec pattern.Spec, r rune) bool
	Decode(spec pattern.Spec, s string) (any, error)
}

// delimiter kinds.
//
const (
	delimEnd   = iota // last field: take everything
	delimRune         // stop at the first rune of the following literal
	delimStart        // stop at a valid start for the following field
)

type step struct {
	lit   string // literal text, for literal steps
	field bool
	slot  int
	spec  pattern.Spec
	dec   Decoder

	delim    int
	stopRune rune
	next     Decoder
	nextSpec pattern.Spec
}

// stop reports whether r ends the text of field s.
//
func (s *step) stop(r rune) bool {
	if s.delim == delimRune {
		return r == s.stopRune
	}
	return s.next.ValidStart(s.nextSpec, r)
}

// A Scanner executes a Plan with a decoder bound to each argument.
//
// A Scanner is safe for concurrent use.
//
type Scanner struct {
	plan  *Plan
	steps []step
	log   *zap.Logger
}

// NewScanner binds decoders to the arguments of a plan. There must be exactly
// one decoder per argument, in declaration order.
//
// Errors are reported as *ArgError, combined if more than one.
//
func NewScanner(p *Plan, decoders []Decoder, opts ...Option) (*Scanner, error) {
	if len(decoders) != p.NumArgs() {
		return nil, fmt.Errorf("%w: got %d decoders for %d arguments", ErrDecoderCount, len(decoders), p.NumArgs())
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	for i, d := range decoders {
		if d == nil {
			errs = append(errs, &ArgError{Kind: MissingDecoder, Pos: -1, Slot: i, Name: p.ArgName(i)})
		}
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	steps := make([]step, len(p.pat))
	for i, pc := range p.pat {
		switch pc := pc.(type) {
		case pattern.Lit:
			steps[i] = step{lit: string(pc), slot: -1}
		case pattern.Field:
			slot := p.slots[i]
			if !decoders[slot].Supports(pc.Spec) {
				errs = append(errs, &ArgError{Kind: UnsupportedSpec, Pos: pc.Pos, Slot: slot, Name: p.ArgName(slot), Spec: pc.Spec})
			}
			steps[i] = step{field: true, slot: slot, spec: pc.Spec, dec: decoders[slot]}
		}
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	// delimiters are fixed by the following piece
	for i := range steps {
		s := &steps[i]
		if !s.field {
			continue
		}
		switch {
		case i+1 == len(steps):
			s.delim = delimEnd
		case !steps[i+1].field:
			s.delim = delimRune
			s.stopRune, _ = utf8.DecodeRuneInString(steps[i+1].lit)
		default:
			s.delim = delimStart
			s.next, s.nextSpec = steps[i+1].dec, steps[i+1].spec
		}
	}

	return &Scanner{plan: p, steps: steps, log: o.log}, nil
}

// Plan returns the plan executed by s.
//
func (s *Scanner) Plan() *Plan {
	return s.plan
}

// Scan scans input and returns the decoded values ordered by argument slot.
//
// On failure, the returned error is a *ScanError and no values are returned.
//
func (s *Scanner) Scan(input string) ([]any, error) {
	st := &state{
		sc:    s,
		input: input,
		cur:   cursor{src: input},
		vals:  make([]any, s.plan.NumArgs()),
	}
	for fn := stateNext; fn != nil; {
		fn = fn(st)
	}
	if st.err != nil {
		if ce := s.log.Check(zap.DebugLevel, "scan failed"); ce != nil {
			ce.Write(zap.String("pattern", s.plan.src), zap.Error(st.err))
		}
		return nil, st.err
	}
	return st.vals, nil
}

// Scan is a shorthand for NewScanner(p, decoders) followed by Scan(input).
//
func Scan(p *Plan, input string, decoders ...Decoder) ([]any, error) {
	s, err := NewScanner(p, decoders)
	if err != nil {
		return nil, err
	}
	return s.Scan(input)
}

// A stateFn is a state function of the scan engine. A nil return value ends
// the scan.
//
type stateFn func(s *state) stateFn

// state holds the state of a single scan.
//
type state struct {
	sc    *Scanner
	input string
	cur   cursor
	i     int // index of the current step
	vals  []any
	err   error
}

func (s *state) fail(kind ScanErrorKind, off int, text string, err error) stateFn {
	s.err = &ScanError{
		Kind:   kind,
		Offset: off,
		Piece:  s.i,
		Slot:   s.sc.steps[s.i].slot,
		Text:   text,
		Err:    err,
	}
	return nil
}

// stateNext dispatches to the state function for the current step.
//
func stateNext(s *state) stateFn {
	if s.i == len(s.sc.steps) {
		return nil
	}
	if s.sc.steps[s.i].field {
		return stateField
	}
	return stateLiteral
}

// stateLiteral matches the current literal exactly.
//
func stateLiteral(s *state) stateFn {
	lit := s.sc.steps[s.i].lit
	off := s.cur.Offset()
	rest := s.input[off:]
	if len(rest) < len(lit) {
		return s.fail(LiteralNotFound, off, lit, ErrLiteralNotFound)
	}
	// byte equality implies that the split is on a rune boundary.
	if rest[:len(lit)] != lit {
		return s.fail(LiteralMismatch, off, lit, ErrLiteralMismatch)
	}
	s.cur.Seek(off + len(lit))
	if ce := s.sc.log.Check(zap.DebugLevel, "literal"); ce != nil {
		ce.Write(zap.Int("piece", s.i), zap.Int("offset", off), zap.String("text", lit))
	}
	s.i++
	return stateNext
}

// stateField delimits and decodes the current field.
//
func stateField(s *state) stateFn {
	st := &s.sc.steps[s.i]
	start := s.cur.Offset()
	if st.delim == delimEnd {
		s.cur.Seek(len(s.input))
	} else {
		for {
			r := s.cur.Next()
			if r == eof {
				return s.fail(EOF, start, s.input[start:], ErrEOF)
			}
			if st.stop(r) {
				s.cur.Backup()
				break
			}
		}
	}
	text := s.input[start:s.cur.Offset()]
	v, err := st.dec.Decode(st.spec, text)
	if err != nil {
		return s.fail(Decode, start, text, err)
	}
	if ce := s.sc.log.Check(zap.DebugLevel, "field"); ce != nil {
		ce.Write(zap.Int("piece", s.i), zap.Int("offset", start), zap.Int("slot", st.slot),
			zap.Stringer("spec", st.spec), zap.String("text", text))
	}
	s.vals[st.slot] = v
	s.i++
	return stateNext
}
