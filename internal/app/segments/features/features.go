package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	SegmentIDProperty = "id_trecho_qualidade"
	StreetProperty    = "logradouro"
)

var ErrMalformed = errors.New("malformed feature collection")

// FeatureCollection is a GeoJSON feature collection. Members holds every
// top level member that is not lifted into a field and is written back as is.
type FeatureCollection struct {
	Type     string
	Features []Feature
	Members  map[string]json.RawMessage
}

// Feature is a single road segment. Geometry is kept as raw JSON and never
// interpreted when the collection is modified.
type Feature struct {
	Type       string
	Geometry   json.RawMessage
	Properties map[string]any
	Members    map[string]json.RawMessage
}

func Decode(r io.Reader) (FeatureCollection, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return FeatureCollection{}, err
	}

	fc := FeatureCollection{}
	err = json.Unmarshal(b, &fc)
	if err != nil {
		return FeatureCollection{}, fmt.Errorf("%w: %s", ErrMalformed, err.Error())
	}

	return fc, nil
}

// Encode writes fc as two space indented JSON followed by a newline.
// Characters are written as is, without HTML escaping.
func (fc FeatureCollection) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

// UpdateAttribute sets properties[name] = value on every feature whose
// segment id is in ids and returns the number of features changed.
func (fc FeatureCollection) UpdateAttribute(ids IDSet, name string, value any) int {
	updated := 0

	for i := range fc.Features {
		id, ok := fc.Features[i].SegmentID()
		if !ok || !ids.Contains(id) {
			continue
		}

		fc.Features[i].Properties[name] = value
		updated++
	}

	return updated
}

func (fc FeatureCollection) Filter(keep func(f Feature) bool) FeatureCollection {
	result := FeatureCollection{
		Type:     fc.Type,
		Features: make([]Feature, 0),
		Members:  fc.Members,
	}

	for _, f := range fc.Features {
		if keep(f) {
			result.Features = append(result.Features, f)
		}
	}

	return result
}

func (fc FeatureCollection) IDs() []any {
	ids := make([]any, 0, len(fc.Features))
	for _, f := range fc.Features {
		if id, ok := f.SegmentID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f Feature) SegmentID() (any, bool) {
	if f.Properties == nil {
		return nil, false
	}
	id, ok := f.Properties[SegmentIDProperty]
	return id, ok
}

func (f Feature) Street() string {
	if f.Properties == nil {
		return ""
	}
	if s, ok := f.Properties[StreetProperty].(string); ok {
		return s
	}
	return ""
}

func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(fc.Members)+2)
	for k, v := range fc.Members {
		m[k] = v
	}

	if fc.Type != "" {
		m["type"] = fc.Type
	}

	if fc.Features == nil {
		m["features"] = []Feature{}
	} else {
		m["features"] = fc.Features
	}

	return marshal(m)
}

func (fc *FeatureCollection) UnmarshalJSON(b []byte) error {
	members := map[string]json.RawMessage{}
	err := json.Unmarshal(b, &members)
	if err != nil {
		return err
	}
	if members == nil {
		return errors.New("document is not an object")
	}

	*fc = FeatureCollection{}

	if t, ok := members["type"]; ok {
		if s, ok := asString(t); ok && s != "" {
			fc.Type = s
			delete(members, "type")
		}
	}

	fc.Features = make([]Feature, 0)

	if raw, ok := members["features"]; ok {
		var features []json.RawMessage
		err = json.Unmarshal(raw, &features)
		if err != nil || features == nil {
			return errors.New("features is not an array")
		}

		for i, r := range features {
			f := Feature{}
			err = f.UnmarshalJSON(r)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			fc.Features = append(fc.Features, f)
		}

		delete(members, "features")
	}

	if len(members) > 0 {
		fc.Members = members
	}

	return nil
}

func (f Feature) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(f.Members)+3)
	for k, v := range f.Members {
		m[k] = v
	}

	if f.Type != "" {
		m["type"] = f.Type
	}
	if f.Geometry != nil {
		m["geometry"] = f.Geometry
	}
	if f.Properties != nil {
		m["properties"] = f.Properties
	}

	return marshal(m)
}

func (f *Feature) UnmarshalJSON(b []byte) error {
	members := map[string]json.RawMessage{}
	err := json.Unmarshal(b, &members)
	if err != nil {
		return err
	}
	if members == nil {
		return errors.New("feature is not an object")
	}

	*f = Feature{}

	if t, ok := members["type"]; ok {
		if s, ok := asString(t); ok && s != "" {
			f.Type = s
			delete(members, "type")
		}
	}

	if g, ok := members["geometry"]; ok {
		f.Geometry = g
		delete(members, "geometry")
	}

	if p, ok := members["properties"]; ok {
		props := map[string]any{}
		if err := decodeNumbers(p, &props); err == nil && props != nil {
			f.Properties = props
			delete(members, "properties")
		}
	}

	if len(members) > 0 {
		f.Members = members
	}

	return nil
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decodeNumbers(b []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	return d.Decode(v)
}
