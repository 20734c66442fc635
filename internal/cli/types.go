package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/db47h/scanfmt"
	"github.com/db47h/scanfmt/decode"
	"github.com/db47h/scanfmt/pattern"
	"github.com/samber/lo"
)

var boolDecoder = decode.Func[bool]{
	Start: func(_ pattern.Spec, r rune) bool {
		return strings.ContainsRune("01tTfF", r)
	},
	Scan: func(_ pattern.Spec, s string) (bool, error) {
		return strconv.ParseBool(s)
	},
}

// decoders maps type names accepted by --types to decoders.
//
var decoders = map[string]scanfmt.Decoder{
	"int":     decode.Int[int]{},
	"int8":    decode.Int[int8]{},
	"int16":   decode.Int[int16]{},
	"int32":   decode.Int[int32]{},
	"int64":   decode.Int[int64]{},
	"uint":    decode.Uint[uint]{},
	"uint8":   decode.Uint[uint8]{},
	"uint16":  decode.Uint[uint16]{},
	"uint32":  decode.Uint[uint32]{},
	"uint64":  decode.Uint[uint64]{},
	"float32": decode.Float[float32]{},
	"float64": decode.Float[float64]{},
	"bigint":  decode.BigInt{},
	"string":  decode.String{},
	"quoted":  decode.Quoted{},
	"bool":    boolDecoder,
}

func typeNames() []string {
	names := lo.Keys(decoders)
	slices.Sort(names)
	return names
}

// splitList splits a comma separated list. Items are trimmed and an empty list
// yields no items.
//
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

// parseTypes returns the decoders for a comma separated list of type names.
//
func parseTypes(s string) ([]scanfmt.Decoder, error) {
	types := splitList(s)
	if bad, ok := lo.Find(types, func(t string) bool { _, ok := decoders[t]; return !ok }); ok {
		return nil, fmt.Errorf("unknown type %q (valid types are %s)", bad, strings.Join(typeNames(), ", "))
	}
	return lo.Map(types, func(t string, _ int) scanfmt.Decoder { return decoders[t] }), nil
}
