package pattern_test

import (
	"errors"
	"testing"

	"github.com/db47h/scanfmt/pattern"
	"github.com/google/go-cmp/cmp"
)

func field(pos int, arg pattern.Argument, spec pattern.Spec) pattern.Field {
	return pattern.Field{Arg: arg, Spec: spec, Pos: pattern.Pos(pos)}
}

var (
	implicit = pattern.Argument{Kind: pattern.Implicit}
	index    = func(n int) pattern.Argument { return pattern.Argument{Kind: pattern.Index, Index: n} }
	named    = func(s string) pattern.Argument { return pattern.Argument{Kind: pattern.Named, Name: s} }
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want pattern.Pattern
	}{
		{"empty", "", nil},
		{"literal", "hello", pattern.Pattern{pattern.Lit("hello")}},
		{"implicit", "{}x{}", pattern.Pattern{
			field(0, implicit, pattern.Default),
			pattern.Lit("x"),
			field(3, implicit, pattern.Default),
		}},
		{"octal", "xX_{:o}_Xx", pattern.Pattern{
			pattern.Lit("xX_"),
			field(3, implicit, pattern.Octal),
			pattern.Lit("_Xx"),
		}},
		{"specs", "{:x}{:X}{:b}{:}", pattern.Pattern{
			field(0, implicit, pattern.LowerHex),
			field(4, implicit, pattern.UpperHex),
			field(8, implicit, pattern.Binary),
			field(12, implicit, pattern.Default),
		}},
		{"index", "{1}-{0:X}", pattern.Pattern{
			field(0, index(1), pattern.Default),
			pattern.Lit("-"),
			field(4, index(0), pattern.UpperHex),
		}},
		{"named", "{x}, {y:b}", pattern.Pattern{
			field(0, named("x"), pattern.Default),
			pattern.Lit(", "),
			field(5, named("y"), pattern.Binary),
		}},
		{"escapes", "{{literal}}", pattern.Pattern{pattern.Lit("{literal}")}},
		{"escapes merged", "a{{b}}c{}", pattern.Pattern{
			pattern.Lit("a{b}c"),
			field(7, implicit, pattern.Default),
		}},
		{"utf8", "é{}世界", pattern.Pattern{
			pattern.Lit("é"),
			field(2, implicit, pattern.Default),
			pattern.Lit("世界"),
		}},
		{"signed index is a name", "{+1}", pattern.Pattern{field(0, named("+1"), pattern.Default)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pattern.Parse(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		kind  pattern.ErrorKind
		pos   pattern.Pos
		found rune
	}{
		{"unterminated", "abc{", pattern.UnterminatedField, 3, 0},
		{"unterminated body", "{0:x", pattern.UnterminatedField, 0, 0},
		{"nested", "{a{}", pattern.NestedField, 2, 0},
		{"nested escape", "{{{", pattern.UnterminatedField, 2, 0},
		{"unmatched", "a}b", pattern.UnmatchedBrace, 1, 0},
		{"unmatched after field", "{}}", pattern.UnmatchedBrace, 2, 0},
		{"bad spec", "x{:d}", pattern.InvalidSpec, 3, 'd'},
		{"long spec", "{a:xy}", pattern.InvalidSpec, 4, 'y'},
		{"utf8 spec", "{:é}", pattern.InvalidSpec, 2, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pattern.Parse(tt.in)
			var pe *pattern.Error
			if !errors.As(err, &pe) {
				t.Fatalf("expected *pattern.Error, got %v", err)
			}
			if pe.Kind != tt.kind || pe.Pos != tt.pos || pe.Found != tt.found {
				t.Errorf("Got: %s @%d %q, expected: %s @%d %q", pe.Kind, pe.Pos, pe.Found, tt.kind, tt.pos, tt.found)
			}
			if pe.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestPattern_String(t *testing.T) {
	for _, in := range []string{
		"",
		"{}x{}",
		"xX_{:o}_Xx",
		"{{literal}}",
		"{1}{0:X} {name:b}",
		"a{{{}}}b",
	} {
		p := pattern.MustParse(in)
		s := p.String()
		if s != in {
			t.Errorf("String() = %q, expected %q", s, in)
		}
		if diff := cmp.Diff(p, pattern.MustParse(s)); diff != "" {
			t.Errorf("round trip of %q (-want +got):\n%s", in, diff)
		}
	}
	if got := pattern.MustParse("{:}").String(); got != "{}" {
		t.Errorf("canonical form of {:}: got %q", got)
	}
}

func TestPattern_NumFields(t *testing.T) {
	if n := pattern.MustParse("a{}b{x}{{c}}{1:o}").NumFields(); n != 3 {
		t.Errorf("expected 3 fields, got %d", n)
	}
}

func TestSpec(t *testing.T) {
	tests := []struct {
		s    pattern.Spec
		name string
		verb string
		base int
	}{
		{pattern.Default, "Default", "", 10},
		{pattern.Octal, "Octal", "o", 8},
		{pattern.LowerHex, "LowerHex", "x", 16},
		{pattern.UpperHex, "UpperHex", "X", 16},
		{pattern.Binary, "Binary", "b", 2},
		{pattern.Spec(42), "Spec(42)", "", 0},
	}
	for _, tt := range tests {
		if tt.s.String() != tt.name || tt.s.Verb() != tt.verb || tt.s.Base() != tt.base {
			t.Errorf("Got: %s %q %d, expected: %s %q %d", tt.s, tt.s.Verb(), tt.s.Base(), tt.name, tt.verb, tt.base)
		}
	}
}
