package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is one answer in a form payload. Numbers keep their JSON literal so
// a decoded payload encodes back to the same bytes.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	obj  map[string]Value
	list []Value
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Number(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'f', -1, 64))}
}

// NumberLiteral keeps n exactly as written. It fails when n is not a valid JSON number.
func NumberLiteral(n json.Number) (Value, error) {
	if _, err := n.Float64(); err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", n, err)
	}
	return Value{kind: KindNumber, num: n}, nil
}

func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsEmpty reports a missing answer: null or the empty string. false is an answer.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) Fields() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

func (v Value) Items() ([]Value, bool) { return v.list, v.kind == KindList }

func (v Value) Literal() (json.Number, bool) { return v.num, v.kind == KindNumber }

// String renders the value the way a browser would stringify it.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		f, err := v.num.Float64()
		if err != nil {
			return v.num.String()
		}
		return formatFloat(f)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindObject:
		return "[object Object]"
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			if !item.IsNull() {
				parts[i] = item.String()
			}
		}
		return strings.Join(parts, ",")
	default:
		return "null"
	}
}

// Float coerces the value to a number. Blank strings and null become 0;
// anything unparseable is NaN.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		f, err := v.num.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindNull:
		return 0
	default:
		return math.NaN()
	}
}

// Numeric returns the number held by v, also for non-blank numeric strings.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindNumber:
		f := v.Float()
		return f, !math.IsNaN(f)
	case KindString:
		if strings.TrimSpace(v.str) == "" {
			return 0, false
		}
		f := v.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.Float() == other.Float()
	case KindBool:
		return v.b == other.b
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, item := range v.obj {
			o, ok := other.obj[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		return marshalObject(v.obj)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return err
	}

	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// EncodeMsgpack stores the JSON form of the value so number literals
// survive a trip through a binary cache.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(data)
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	data, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return v.UnmarshalJSON(data)
}

// FromAny converts decoded JSON (decoded with UseNumber or not) into a Value.
func FromAny(raw any) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case json.Number:
		return NumberLiteral(val)
	case float64:
		return Number(val), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case map[string]any:
		fields := make(map[string]Value, len(val))
		for k, item := range val {
			parsed, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("field %s: %w", k, err)
			}
			fields[k] = parsed
		}
		return Object(fields), nil
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			parsed, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = parsed
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Values maps a field id to its current answer.
type Values map[string]Value

func (vs Values) Get(id string) (Value, bool) {
	v, ok := vs[id]
	return v, ok
}

func (vs Values) Clone() Values {
	clone := make(Values, len(vs))
	for k, v := range vs {
		clone[k] = v
	}
	return clone
}

func (vs Values) MarshalJSON() ([]byte, error) {
	if vs == nil {
		return []byte("{}"), nil
	}
	return marshalObject(vs)
}

// DecodeValues parses a JSON object into Values. Anything but an object is rejected.
func DecodeValues(data []byte) (Values, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	fields, ok := v.Fields()
	if !ok {
		return nil, ErrNotAnObject
	}
	return Values(fields), nil
}

func marshalObject(fields map[string]Value) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		item, err := fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(item)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
