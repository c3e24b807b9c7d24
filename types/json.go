package types

import (
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ParseJSON parses a JSON document into a value tree.
// Integers that fit in an int64 become IntegerValues, larger positive
// integers become UnsignedValues and every other number is a DoubleValue.
func ParseJSON(data []byte) (Value, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid json")
	}

	return parseJSONValue(dataType, value)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return NewNullValue(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBooleanValue(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err == nil {
			return NewIntegerValue(i), nil
		}

		if errors.Is(err, jsonparser.OverflowIntegerError) {
			u, err := strconv.ParseUint(string(data), 10, 64)
			if err == nil {
				return NewUnsignedValue(u), nil
			}
		}

		// not an integer or too big to fit in 64 bits, let's try parsing this as a floating point number
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, err
		}

		return NewDoubleValue(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return NewTextValue(s), nil
	case jsonparser.Array:
		arr := NewArrayValue()
		var perr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if perr != nil {
				return
			}
			if err != nil {
				perr = err
				return
			}

			v, err := parseJSONValue(dataType, value)
			if err != nil {
				perr = err
				return
			}
			arr.Append(v)
		})
		if err != nil {
			return nil, err
		}
		if perr != nil {
			return nil, perr
		}

		return arr, nil
	case jsonparser.Object:
		obj := NewObjectValue()
		err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}

			v, err := parseJSONValue(dataType, value)
			if err != nil {
				return err
			}

			obj.Add(k, v)
			return nil
		})
		if err != nil {
			return nil, err
		}

		return obj, nil
	}

	return nil, errors.Errorf("unexpected json value type %s", dataType)
}
