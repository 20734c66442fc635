package scanfmt_test

import (
	"testing"

	"github.com/db47h/scanfmt"
	"github.com/db47h/scanfmt/decode"
)

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := scanfmt.Compile("{y}-{m}-{d}T{h}:{min}:{s}", "y", "m", "d", "h", "min", "s"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner_Scan(b *testing.B) {
	p := scanfmt.MustCompile("{}-{}-{}T{}:{}:{}", "", "", "", "", "", "")
	d := decode.Uint[uint16]{}
	s, err := scanfmt.NewScanner(p, []scanfmt.Decoder{d, d, d, d, d, d})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Scan("2020-04-01T13:37:42"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSscan(b *testing.B) {
	var w, h int
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := scanfmt.Sscan("640x480", "{}x{}", &w, &h); err != nil {
			b.Fatal(err)
		}
	}
}
