package segments

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/paulmach/orb"
)

type ConditionFunc func(map[string]any) map[string]any

func WithStreet(street string) ConditionFunc {
	return func(m map[string]any) map[string]any {
		m["street"] = street
		return m
	}
}

// WithIDs matches segments by id. Ids that look like numbers also match
// numeric segment ids.
func WithIDs(ids []string) ConditionFunc {
	set := features.NewIDSet()
	for _, id := range ids {
		set.Add(id)
		if _, err := strconv.ParseFloat(id, 64); err == nil {
			set.Add(json.Number(id))
		}
	}

	return func(m map[string]any) map[string]any {
		m["ids"] = set
		return m
	}
}

// WithBBox matches segments whose geometry intersects bbox. An invalid bbox
// matches nothing.
func WithBBox(bbox string) ConditionFunc {
	b, err := features.ParseBBox(bbox)

	return func(m map[string]any) map[string]any {
		if err != nil {
			m["bbox"] = err
			return m
		}
		m["bbox"] = b
		return m
	}
}

func WithParams(query map[string][]string) []ConditionFunc {
	conditions := make([]ConditionFunc, 0)

	params := map[string][]string{}
	for k, v := range query {
		key := strings.ReplaceAll(strings.ToLower(k), "_", "")
		if key == "logradouro" {
			key = "street"
		}
		params[key] = v
	}

	if street, ok := params["street"]; ok {
		conditions = append(conditions, WithStreet(street[0]))
	}

	if ids, ok := params["id"]; ok {
		conditions = append(conditions, WithIDs(ids))
	}

	if bbox, ok := params["bbox"]; ok {
		conditions = append(conditions, WithBBox(bbox[0]))
	}

	return conditions
}

func newConditions(conditions ...ConditionFunc) map[string]any {
	m := make(map[string]any)

	for _, f := range conditions {
		m = f(m)
	}

	return m
}

func matches(c map[string]any) func(f features.Feature) bool {
	return func(f features.Feature) bool {
		if street, ok := c["street"]; ok && f.Street() != street {
			return false
		}

		if ids, ok := c["ids"].(features.IDSet); ok {
			id, found := f.SegmentID()
			if !found || !ids.Contains(id) {
				return false
			}
		}

		if v, ok := c["bbox"]; ok {
			bbox, valid := v.(orb.Bound)
			if !valid {
				return false
			}
			b, found := f.Bound()
			if !found || !bbox.Intersects(b) {
				return false
			}
		}

		return true
	}
}
