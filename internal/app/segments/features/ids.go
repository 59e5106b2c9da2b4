package features

import (
	"encoding/json"
	"strconv"
)

// IDSet is a set of segment identifiers. Strings and numbers never compare
// equal to each other, numbers compare by value.
type IDSet map[string]any

func NewIDSet(values ...any) IDSet {
	s := IDSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s IDSet) Add(v any) bool {
	k, ok := KeyOf(v)
	if !ok {
		return false
	}
	if _, exists := s[k]; !exists {
		s[k] = v
	}
	return true
}

func (s IDSet) Contains(v any) bool {
	k, ok := KeyOf(v)
	if !ok {
		return false
	}
	_, exists := s[k]
	return exists
}

func (s IDSet) Values() []any {
	values := make([]any, 0, len(s))
	for _, v := range s {
		values = append(values, v)
	}
	return values
}

// KeyOf returns the identity key of a JSON value. Arrays and objects have no
// identity and are reported as not ok.
func KeyOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "null", true
	case string:
		return "s:" + x, true
	case bool:
		return "b:" + strconv.FormatBool(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return "n:" + x.String(), true
		}
		return numberKey(f), true
	case float64:
		return numberKey(x), true
	case float32:
		return numberKey(float64(x)), true
	case int:
		return numberKey(float64(x)), true
	case int64:
		return numberKey(float64(x)), true
	default:
		return "", false
	}
}

func numberKey(f float64) string {
	if f == 0 {
		f = 0 // -0
	}
	return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
}
