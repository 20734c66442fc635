package scanfmt_test

import (
	"errors"
	"math/big"
	"strconv"
	"sync"
	"testing"

	"github.com/db47h/scanfmt"
	"github.com/db47h/scanfmt/decode"
	"github.com/db47h/scanfmt/pattern"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type (
	i32 = decode.Int[int32]
	u32 = decode.Uint[uint32]
	u8  = decode.Uint[uint8]
	str = decode.String
)

func TestScan(t *testing.T) {
	td := []struct {
		name  string
		pat   string
		names []string
		decs  []scanfmt.Decoder
		input string
		want  []any
	}{
		{"literal between ints", "{}x{}", []string{"", ""}, []scanfmt.Decoder{i32{}, i32{}}, "42x100", []any{int32(42), int32(100)}},
		{"octal", "xX_{:o}_Xx", []string{""}, []scanfmt.Decoder{decode.Uint[uint64]{}}, "xX_1234567654321_Xx", []any{uint64(0o1234567654321)}},
		{"text then int", "{}{}", []string{"", ""}, []scanfmt.Decoder{str{}, i32{}}, "The ultimate answer is: 42", []any{"The ultimate answer is: ", int32(42)}},
		{"escapes", "{{literal}}", nil, nil, "{literal}", []any{}},
		{"named out of order", "{m}/{d}/{y}", []string{"y", "m", "d"}, []scanfmt.Decoder{i32{}, i32{}, i32{}}, "12/25/2023", []any{int32(2023), int32(12), int32(25)}},
		{"indexed", "{1} {0}", []string{"", ""}, []scanfmt.Decoder{str{}, i32{}}, "7 seven", []any{"seven", int32(7)}},
		{"trailing input ignored", "{}!", []string{""}, []scanfmt.Decoder{str{}}, "hi!!", []any{"hi"}},
		{"last field empty", "a{}", []string{""}, []scanfmt.Decoder{str{}}, "a", []any{""}},
		{"unicode literal", "{}→{}", []string{"", ""}, []scanfmt.Decoder{str{}, str{}}, "héllo→wörld", []any{"héllo", "wörld"}},
		{"binary", "{:b}", []string{""}, []scanfmt.Decoder{decode.Int[int8]{}}, "-101", []any{int8(-5)}},
		{"float", "{} {}", []string{"", ""}, []scanfmt.Decoder{decode.Float[float64]{}, str{}}, "2.5e3 m", []any{2500.0, "m"}},
		{"quoted", "{}={}", []string{"", ""}, []scanfmt.Decoder{str{}, decode.Quoted{}}, `key="a\tb"`, []any{"key", "a\tb"}},
	}
	for _, tt := range td {
		t.Run(tt.name, func(t *testing.T) {
			p, err := scanfmt.Compile(tt.pat, tt.names...)
			require.NoError(t, err)
			got, err := scanfmt.Scan(p, tt.input, tt.decs...)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestScan_starvation(t *testing.T) {
	p := scanfmt.MustCompile("{}{}", "", "")

	// An integer followed by a string: the string accepts any start, so the
	// integer field is cut at offset 0.
	_, err := scanfmt.Scan(p, "42 is the answer", decode.Int[int32]{}, decode.String{})
	var se *scanfmt.ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, scanfmt.Decode, se.Kind)
	assert.Equal(t, 0, se.Offset)
	assert.Equal(t, 0, se.Slot)
	assert.Equal(t, "", se.Text)
	assert.ErrorIs(t, err, decode.ErrEmpty)

	// A string followed by an integer: the string is empty and the integer
	// decoder gets the whole input.
	_, err = scanfmt.Scan(p, "42 is the answer", decode.String{}, decode.Int[int32]{})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, scanfmt.Decode, se.Kind)
	assert.Equal(t, 1, se.Slot)
	assert.Equal(t, "42 is the answer", se.Text)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestScan_adjacentHex(t *testing.T) {
	// Any hex digit may start a lower case hex field, so the first field gets
	// nothing.
	p := scanfmt.MustCompile("#{:X}{:x}", "", "")
	_, err := scanfmt.Scan(p, "#FF", u32{}, u8{})
	assert.ErrorIs(t, err, decode.ErrEmpty)

	// Lower case letters cannot start an upper case hex field.
	p = scanfmt.MustCompile("#{:x}{:X}", "", "")
	vals, err := scanfmt.Scan(p, "#ff1", u8{}, u32{})
	require.NoError(t, err)
	assert.Equal(t, []any{uint8(255), uint32(1)}, vals)
}

func TestScan_errors(t *testing.T) {
	td := []struct {
		name   string
		pat    string
		decs   []scanfmt.Decoder
		input  string
		kind   scanfmt.ScanErrorKind
		offset int
		cause  error
	}{
		{"literal not found", "abc", nil, "ab", scanfmt.LiteralNotFound, 0, scanfmt.ErrLiteralNotFound},
		{"literal mismatch", "abc", nil, "abx", scanfmt.LiteralMismatch, 0, scanfmt.ErrLiteralMismatch},
		{"mismatch after field", "{}-x", []scanfmt.Decoder{i32{}}, "12-y", scanfmt.LiteralMismatch, 2, scanfmt.ErrLiteralMismatch},
		{"delimiter not found", "{}x", []scanfmt.Decoder{i32{}}, "42", scanfmt.EOF, 0, scanfmt.ErrEOF},
		{"next start not found", "{}{}", []scanfmt.Decoder{str{}, i32{}}, "abc", scanfmt.EOF, 0, scanfmt.ErrEOF},
		{"bad digit", "{:o}", []scanfmt.Decoder{u32{}}, "78", scanfmt.Decode, 0, strconv.ErrSyntax},
		{"range", "<{}>", []scanfmt.Decoder{decode.Int[int8]{}}, "<300>", scanfmt.Decode, 1, strconv.ErrRange},
		{"trailing input", "{}", []scanfmt.Decoder{i32{}}, "42 ", scanfmt.Decode, 0, strconv.ErrSyntax},
		{"non boundary split", "é", nil, "\xc3\xa8", scanfmt.LiteralMismatch, 0, scanfmt.ErrLiteralMismatch},
	}
	for _, tt := range td {
		t.Run(tt.name, func(t *testing.T) {
			p, err := scanfmt.Compile(tt.pat, make([]string, len(tt.decs))...)
			require.NoError(t, err)
			vals, err := scanfmt.Scan(p, tt.input, tt.decs...)
			assert.Nil(t, vals)
			var se *scanfmt.ScanError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, tt.offset, se.Offset)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestNewScanner(t *testing.T) {
	p := scanfmt.MustCompile("{a:x} {b}", "a", "b")

	_, err := scanfmt.NewScanner(p, []scanfmt.Decoder{i32{}})
	assert.ErrorIs(t, err, scanfmt.ErrDecoderCount)

	_, err = scanfmt.NewScanner(p, []scanfmt.Decoder{nil, i32{}})
	var ae *scanfmt.ArgError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, scanfmt.MissingDecoder, ae.Kind)
	assert.Equal(t, "a", ae.Name)

	_, err = scanfmt.NewScanner(p, []scanfmt.Decoder{decode.Float[float64]{}, decode.String{}})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, scanfmt.UnsupportedSpec, ae.Kind)
	assert.Equal(t, pattern.LowerHex, ae.Spec)
	assert.Equal(t, pattern.Pos(0), ae.Pos)

	s, err := scanfmt.NewScanner(p, []scanfmt.Decoder{i32{}, str{}})
	require.NoError(t, err)
	assert.Same(t, p, s.Plan())
	vals, err := s.Scan("ff cafe")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(255), "cafe"}, vals)
}

func TestScanner_logger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := scanfmt.MustCompile("{}x{}", "", "")
	s, err := scanfmt.NewScanner(p, []scanfmt.Decoder{i32{}, i32{}}, scanfmt.WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = s.Scan("4x2")
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("field").Len())
	assert.Equal(t, 1, logs.FilterMessage("literal").Len())
	f := logs.FilterMessage("field").All()[1]
	assert.Equal(t, "2", f.ContextMap()["text"])
	assert.Equal(t, int64(2), f.ContextMap()["offset"])

	_, err = s.Scan("4y2")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("scan failed").Len())

	// nil logger means no logging
	s, err = scanfmt.NewScanner(p, []scanfmt.Decoder{i32{}, i32{}}, scanfmt.WithLogger(nil))
	require.NoError(t, err)
	_, err = s.Scan("4x2")
	assert.NoError(t, err)
}

func TestScanner_concurrent(t *testing.T) {
	p := scanfmt.MustCompile("{}:{:x}", "", "")
	s, err := scanfmt.NewScanner(p, []scanfmt.Decoder{str{}, decode.Uint[uint64]{}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 64)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := "k" + strconv.Itoa(i) + ":" + strconv.FormatUint(uint64(i), 16)
			vals, err := s.Scan(in)
			if err != nil {
				errs[i] = err
				return
			}
			if vals[1].(uint64) != uint64(i) {
				errs[i] = errors.New("wrong value for " + in)
			}
		}(i)
	}
	wg.Wait()
	assert.NoError(t, multierr.Combine(errs...))
}

func TestSscan(t *testing.T) {
	var (
		w, h int
		name string
		r    float32
		n    big.Int
		b    uint8
	)
	require.NoError(t, scanfmt.Sscan("640x480", "{}x{}", &w, &h))
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	require.NoError(t, scanfmt.Sscan("pi=3.14 #ff 123456789012345678901234567890", "{}={} #{:x} {}", &name, &r, &b, &n))
	assert.Equal(t, "pi", name)
	assert.Equal(t, float32(3.14), r)
	assert.Equal(t, uint8(255), b)
	assert.Equal(t, "123456789012345678901234567890", n.String())

	// destinations are untouched on failure
	w, h = 1, 2
	err := scanfmt.Sscan("640x", "{}x{}", &w, &h)
	assert.ErrorIs(t, err, decode.ErrEmpty)
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, h)

	err = scanfmt.Sscan("1", "{}", w)
	assert.ErrorIs(t, err, scanfmt.ErrUnsupportedType)

	err = scanfmt.Sscan("1", "{}{}", &w)
	var ae *scanfmt.ArgError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, scanfmt.IndexOutOfBounds, ae.Kind)
}

func TestSscanNamed(t *testing.T) {
	var y, m, d int
	err := scanfmt.SscanNamed("25.12.2023", "{day}.{month}.{year}", []string{"year", "month", "day"}, &y, &m, &d)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 12, 25}, []int{y, m, d})

	err = scanfmt.SscanNamed("", "", []string{"a"})
	assert.ErrorIs(t, err, scanfmt.ErrDecoderCount)
}
