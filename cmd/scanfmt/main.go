// Command scanfmt extracts typed values from lines of text according to a
// pattern.
//
// Usage:
//
//	scanfmt -p PATTERN -t TYPES [-n NAMES] [-o table|jsonl|yaml] [FILE...]
//
// For example:
//
//	$ echo "640x480" | scanfmt -p '{w}x{h}' -t int,int -n w,h -o jsonl
//	{"source":"-","line":1,"w":640,"h":480}
//
package main

import (
	"os"

	"github.com/db47h/scanfmt/internal/cli"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs()))
}
