package flow

import (
	"fmt"
	"strconv"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/shopspring/decimal"
)

func UInt64(v uint64) cadence.Value {
	return cadence.NewUInt64(v)
}

func Address(addr string) cadence.Value {
	return cadence.BytesToAddress(sdk.HexToAddress(addr).Bytes())
}

// Decode converts a Cadence value into plain Go values. Numbers become
// strings so UFix64 and UInt256 keep their precision; composites become
// map[string]any keyed by field name.
func Decode(v cadence.Value) any {
	switch t := v.(type) {
	case nil, cadence.Void:
		return nil
	case cadence.Optional:
		if t.Value == nil {
			return nil
		}
		return Decode(t.Value)
	case cadence.Bool:
		return bool(t)
	case cadence.String:
		return string(t)
	case cadence.Character:
		return string(t)
	case cadence.Array:
		out := make([]any, 0, len(t.Values))
		for _, it := range t.Values {
			out = append(out, Decode(it))
		}
		return out
	case cadence.Dictionary:
		out := make(map[string]any, len(t.Pairs))
		for _, p := range t.Pairs {
			out[AsString(Decode(p.Key))] = Decode(p.Value)
		}
		return out
	case cadence.Composite:
		fields := cadence.FieldsMappedByName(t)
		out := make(map[string]any, len(fields))
		for name, f := range fields {
			out[name] = Decode(f)
		}
		return out
	default:
		// numbers, addresses, paths
		return t.String()
	}
}

// DecodeValue decodes JSON-Cadence, as returned by the access API.
func DecodeValue(raw []byte) (any, error) {
	v, err := jsoncdc.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("json-cadence: %w", err)
	}
	return Decode(v), nil
}

// Accessors used when mapping decoded values into API records.

func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func AsFloat(v any, def float64) float64 {
	s := AsString(v)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func AsInt(v any, def int) int {
	s := AsString(v)
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// UFix64 style "20.00000000"
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

func AsDecimal(v any) decimal.Decimal {
	d, err := decimal.NewFromString(AsString(v))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func AsBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	}
	return def
}

func AsStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, AsString(it))
	}
	return out
}

func AsUint64s(v any) []uint64 {
	out := []uint64{}
	for _, s := range AsStrings(v) {
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
