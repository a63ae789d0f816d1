package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ParseJSON decodes a JSON document into a Value. Object key order is
// preserved and numbers without a fraction or exponent decode as Int.
func ParseJSON(data []byte) (Value, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON document")
	}
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "reading JSON value")
	}
	return decodeRaw(raw, typ)
}

// ParseJSONObject decodes a JSON document that must be an object.
func ParseJSONObject(data []byte) (*Object, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, errors.WithHint(
			errors.Newf("expected a JSON object, got %s", TagOf(v)),
			`wrap the fields in braces, e.g. {"user_id": 1}`,
		)
	}
	return obj, nil
}

func decodeRaw(raw []byte, typ jsonparser.ValueType) (Value, error) {
	switch typ {
	case jsonparser.Null:
		return Null{}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing boolean")
		}
		return Bool(b), nil
	case jsonparser.Number:
		return decodeNumber(string(raw))
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing string")
		}
		return String(s), nil
	case jsonparser.Array:
		arr := Array{}
		var inner error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			v, err := decodeRaw(value, dataType)
			if err != nil {
				inner = err
				return
			}
			arr = append(arr, v)
		})
		if err != nil {
			return nil, errors.Wrap(err, "parsing array")
		}
		if inner != nil {
			return nil, inner
		}
		return arr, nil
	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
			v, err := decodeRaw(value, dataType)
			if err != nil {
				return err
			}
			obj.Set(string(key), v)
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "parsing object")
		}
		return obj, nil
	default:
		return nil, errors.Newf("unsupported JSON value %q", raw)
	}
}

func decodeNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing number %q", s)
	}
	return Float(f), nil
}
