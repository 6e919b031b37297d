package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Type is the declared logical type of a setting value. The stored
// form is always text; Coerce and Decode convert between the stored
// form and the typed value.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeJSON    Type = "json"
	TypeString  Type = "string"
)

var ErrInvalidValue = errors.New("invalid value")

// ParseType maps a stored type tag to a Type, defaulting to string.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeBoolean, TypeNumber, TypeJSON:
		return Type(s)
	default:
		return TypeString
	}
}

// Coerce converts a raw (JSON-decoded) input into the stored string
// form and the decoded typed value. Only number coercion can fail.
func Coerce(t Type, raw interface{}) (stored string, decoded interface{}, err error) {
	switch t {
	case TypeBoolean:
		b := truthy(raw)
		return strconv.FormatBool(b), b, nil
	case TypeNumber:
		n, ok := toNumber(raw)
		if !ok {
			return "", nil, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, raw)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), n, nil
	case TypeJSON:
		if s, ok := raw.(string); ok {
			// Assumed pre-serialized by the caller.
			return s, Decode(TypeJSON, s), nil
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return string(b), raw, nil
	default:
		s := stringify(raw)
		return s, s, nil
	}
}

// Decode converts the stored string form back into the typed value.
// It never fails: a value that does not parse degrades to the raw
// string so read paths stay fail-open.
func Decode(t Type, stored string) interface{} {
	switch t {
	case TypeBoolean:
		return stored == "true" || stored == "1"
	case TypeNumber:
		if n, err := strconv.ParseFloat(stored, 64); err == nil {
			return n
		}
		return stored
	case TypeJSON:
		var v interface{}
		if err := json.Unmarshal([]byte(stored), &v); err == nil {
			return v
		}
		return stored
	default:
		return stored
	}
}

// truthy implements the accepted boolean input forms: boolean true,
// string "true"/"1", numeric 1. Everything else is false.
func truthy(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v == 1
	case int:
		return v == 1
	case int64:
		return v == 1
	default:
		return false
	}
}

func toNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return float64(i), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func stringify(raw interface{}) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", raw)
}
