package value

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// ParseJSON decodes a single JSON value, keeping object fields in source
// order. Numbers become float64. Extended forms such as {"$date": 0} are
// turned into their leaf kinds; see [MarshalJSON] for the list.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("value: parse JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("value: parse JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := NewDocument()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				d.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return fromExtended(d)
		case '[':
			a := NewArray()
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				a.Append(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return a, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case float64:
		return t, nil
	case string, bool, nil:
		return t, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// fromExtended recognizes the extended forms written by MarshalJSON and
// MarshalYAML. Documents that do not match one are returned unchanged.
func fromExtended(d *Document) (any, error) {
	switch d.Len() {
	case 1:
		k := d.keys[0]
		v := d.m[k]
		switch k {
		case "$date":
			switch t := v.(type) {
			case string:
				ts, err := time.Parse(time.RFC3339Nano, t)
				if err != nil {
					return nil, fmt.Errorf("invalid $date: %w", err)
				}
				return ts, nil
			default:
				ms, ok := ToFloat(v)
				if !ok {
					return nil, fmt.Errorf("invalid $date: %v", v)
				}
				return time.UnixMilli(int64(ms)).UTC(), nil
			}
		case "$binary":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("invalid $binary: %v", v)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("invalid $binary: %w", err)
			}
			return Binary(b), nil
		case "$code":
			if s, ok := v.(string); ok {
				return Code(s), nil
			}
		case "$InfNaN":
			n, ok := ToFloat(v)
			if !ok {
				return nil, fmt.Errorf("invalid $InfNaN: %v", v)
			}
			switch {
			case n > 0:
				return math.Inf(1), nil
			case n < 0:
				return math.Inf(-1), nil
			}
			return math.NaN(), nil
		case "$regexp":
			if s, ok := v.(string); ok {
				return &Regex{Pattern: s}, nil
			}
		}
	case 2:
		if t, ok := d.m["$type"]; ok && t == "oid" {
			s, ok := d.m["$value"].(string)
			if !ok {
				return nil, fmt.Errorf("invalid oid: %v", d.m["$value"])
			}
			return ObjectIDFromHex(s)
		}
		if p, ok := d.m["$regexp"].(string); ok {
			if f, ok := d.m["$flags"].(string); ok {
				return &Regex{Pattern: p, Options: f}, nil
			}
		}
	}
	return d, nil
}

// MarshalJSON writes the document as a JSON object with fields in order.
//
// Leaf kinds JSON cannot express use extended forms:
//
//	Date      {"$date": <milliseconds since epoch>}
//	Binary    {"$binary": "<base64>"}
//	ObjectID  {"$type": "oid", "$value": "<hex>"}
//	Regex     {"$regexp": "<pattern>", "$flags": "<options>"}
//	Code      {"$code": "<source>"}
//	Inf, NaN  {"$InfNaN": 1 | -1 | 0}
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON writes the array as a JSON array.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON writes any model value as JSON, using the same extended forms
// as [Document.MarshalJSON].
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent is like [MarshalJSON] but indents the output.
func MarshalJSONIndent(v any, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case *Document:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSONValue(buf, val.m[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case *Array:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i, e := range val.s {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case time.Time:
		fmt.Fprintf(buf, `{"$date":%d}`, val.UnixMilli())
		return nil
	case Binary:
		fmt.Fprintf(buf, `{"$binary":%q}`, base64.StdEncoding.EncodeToString(val))
		return nil
	case []byte:
		return writeJSONValue(buf, Binary(val))
	case ObjectID:
		fmt.Fprintf(buf, `{"$type":"oid","$value":%q}`, val.Hex())
		return nil
	case *Regex:
		buf.WriteString(`{"$regexp":`)
		if err := writeJSON(buf, val.Pattern); err != nil {
			return err
		}
		buf.WriteString(`,"$flags":`)
		if err := writeJSON(buf, val.Options); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	case Code:
		buf.WriteString(`{"$code":`)
		if err := writeJSON(buf, string(val)); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	case UndefinedType:
		buf.WriteString("null")
		return nil
	}

	if f, ok := ToFloat(v); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		sign := 0
		switch {
		case math.IsInf(f, 1):
			sign = 1
		case math.IsInf(f, -1):
			sign = -1
		}
		fmt.Fprintf(buf, `{"$InfNaN":%d}`, sign)
		return nil
	}
	switch c := canonical(v); c.(type) {
	case *Document, *Array:
		return writeJSONValue(buf, c)
	}
	return writeJSON(buf, v)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
