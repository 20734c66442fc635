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
	"math/big"

	"github.com/db47h/scanfmt/decode"
)

// binding is a decoder for a destination pointer together with the function
// that stores a decoded value through it.
//
type binding struct {
	dec   Decoder
	store func(v any)
}

func bind(dst any) (binding, error) {
	switch p := dst.(type) {
	case *int:
		return binding{decode.Int[int]{}, func(v any) { *p = v.(int) }}, nil
	case *int8:
		return binding{decode.Int[int8]{}, func(v any) { *p = v.(int8) }}, nil
	case *int16:
		return binding{decode.Int[int16]{}, func(v any) { *p = v.(int16) }}, nil
	case *int32:
		return binding{decode.Int[int32]{}, func(v any) { *p = v.(int32) }}, nil
	case *int64:
		return binding{decode.Int[int64]{}, func(v any) { *p = v.(int64) }}, nil
	case *uint:
		return binding{decode.Uint[uint]{}, func(v any) { *p = v.(uint) }}, nil
	case *uint8:
		return binding{decode.Uint[uint8]{}, func(v any) { *p = v.(uint8) }}, nil
	case *uint16:
		return binding{decode.Uint[uint16]{}, func(v any) { *p = v.(uint16) }}, nil
	case *uint32:
		return binding{decode.Uint[uint32]{}, func(v any) { *p = v.(uint32) }}, nil
	case *uint64:
		return binding{decode.Uint[uint64]{}, func(v any) { *p = v.(uint64) }}, nil
	case *float32:
		return binding{decode.Float[float32]{}, func(v any) { *p = v.(float32) }}, nil
	case *float64:
		return binding{decode.Float[float64]{}, func(v any) { *p = v.(float64) }}, nil
	case *string:
		return binding{decode.String{}, func(v any) { *p = v.(string) }}, nil
	case *big.Int:
		if p == nil {
			break
		}
		return binding{decode.BigInt{}, func(v any) { p.Set(v.(*big.Int)) }}, nil
	}
	return binding{}, fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
}

// Sscan scans input according to format and stores the values in the
// successive arguments of dst, which must be pointers to one of the supported
// types: int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
// float32, float64, string or big.Int.
//
// Fields refer to the arguments by position or index. Compiled formats are
// cached. The arguments are only written to if the whole scan succeeds.
//
func Sscan(input, format string, dst ...any) error {
	return SscanNamed(input, format, make([]string, len(dst)), dst...)
}

// SscanNamed is like Sscan, but the arguments are also given names that fields
// can refer to. names and dst must have the same length.
//
func SscanNamed(input, format string, names []string, dst ...any) error {
	if len(names) != len(dst) {
		return fmt.Errorf("%w: got %d names for %d arguments", ErrDecoderCount, len(names), len(dst))
	}
	p, err := defaultCache.Compile(format, names...)
	if err != nil {
		return err
	}
	bs := make([]binding, len(dst))
	decs := make([]Decoder, len(dst))
	for i, d := range dst {
		b, err := bind(d)
		if err != nil {
			return fmt.Errorf("argument %s: %w", p.ArgName(i), err)
		}
		bs[i], decs[i] = b, b.dec
	}
	vals, err := Scan(p, input, decs...)
	if err != nil {
		return err
	}
	for i, v := range vals {
		bs[i].store(v)
	}
	return nil
}
