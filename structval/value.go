package structval

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind discriminates the variants of a parsed structured value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

// Member is one key/value pair of a mapping, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed tree of mappings, sequences and scalars. Audit
// descriptions are persisted as opaque text and only parsed into a Value when
// a filter or renderer needs structure.
type Value struct {
	Kind    Kind
	Text    string   // literal form of string/number/bool scalars
	Items   []Value  // sequence elements
	Members []Member // mapping members, document order preserved
}

// Parse attempts to read raw as a JSON document. The second return is false
// when raw is not valid JSON, in which case callers fall back to treating the
// description as plain text.
func Parse(raw string) (Value, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, false
	}
	return v, true
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return Value{Kind: KindString, Text: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Text: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Text: strconv.FormatBool(t)}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindMapping}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("mapping key is not a string: %v", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Members = append(v.Members, Member{Key: key, Value: val})
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindSequence}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}

	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// String renders the value for display and substring matching. Scalars render
// as their literal text; containers render as compact JSON.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindString, KindNumber, KindBool:
		return v.Text
	default:
		var b strings.Builder
		v.appendJSON(&b)
		return b.String()
	}
}

func (v Value) appendJSON(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindString:
		b.WriteString(strconv.Quote(v.Text))
	case KindNumber, KindBool:
		b.WriteString(v.Text)
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.appendJSON(b)
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(m.Key))
			b.WriteByte(':')
			m.Value.appendJSON(b)
		}
		b.WriteByte('}')
	}
}
