package features

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestDecodeKeepsMembers(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(osmJSON))
	is.NoErr(err)

	is.Equal(fc.Type, "FeatureCollection")
	is.Equal(len(fc.Features), 3)
	is.Equal(string(fc.Members["name"]), `"osm"`)
	is.True(fc.Members["crs"] != nil)

	f := fc.Features[0]
	is.Equal(f.Type, "Feature")
	is.Equal(f.Street(), "Rua A")
	id, ok := f.SegmentID()
	is.True(ok)
	is.Equal(id, "t1")
	is.Equal(f.Properties["largura"], json.Number("7.50"))
	is.Equal(string(f.Members["id"]), `"way/1"`)
}

func TestEncodeRoundTrip(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(osmJSON))
	is.NoErr(err)

	buf := &bytes.Buffer{}
	is.NoErr(fc.Encode(buf))
	is.True(strings.HasSuffix(buf.String(), "}\n"))
	is.True(strings.Contains(buf.String(), `"largura": 7.50`))

	var before, after any
	is.NoErr(json.Unmarshal([]byte(osmJSON), &before))
	is.NoErr(json.Unmarshal(buf.Bytes(), &after))
	is.Equal(before, after)
}

func TestDecodeMalformed(t *testing.T) {
	is := is.New(t)

	for _, doc := range []string{``, `{`, `[]`, `null`, `{"features": {}}`, `{"features": [1]}`} {
		_, err := Decode(strings.NewReader(doc))
		is.True(err != nil)
	}
}

func TestDecodeNullProperties(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(`{"features":[{"type":"Feature","geometry":null,"properties":null}]}`))
	is.NoErr(err)

	_, ok := fc.Features[0].SegmentID()
	is.True(!ok)
	is.Equal(fc.UpdateAttribute(NewIDSet("t1"), "paviment", "asfalto"), 0)

	b, err := json.Marshal(fc)
	is.NoErr(err)
	is.Equal(string(b), `{"features":[{"geometry":null,"properties":null,"type":"Feature"}]}`)
}

func TestUpdateAttribute(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(osmJSON))
	is.NoErr(err)

	n := fc.UpdateAttribute(NewIDSet("t1", "t3", "t1", "does-not-exist"), "paviment", "asfalto")
	is.Equal(n, 2)

	is.Equal(fc.Features[0].Properties["paviment"], "asfalto")
	_, touched := fc.Features[1].Properties["paviment"]
	is.True(!touched)
	is.Equal(fc.Features[2].Properties["paviment"], "asfalto")
	is.Equal(fc.Features[2].Properties["logradouro"], "Rua B")
}

func TestUpdateAttributeDuplicateSegmentIDs(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(`{"features":[
		{"properties":{"id_trecho_qualidade":"t1"}},
		{"properties":{"id_trecho_qualidade":"t1"}}]}`))
	is.NoErr(err)

	is.Equal(fc.UpdateAttribute(NewIDSet("t1"), "paviment", "terra"), 2)
}

func TestEmptyTypeIsKept(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(`{"type":"","features":[
		{"type":"","properties":{"id_trecho_qualidade":"t1"}},
		{"type":"Feature","properties":{"id_trecho_qualidade":"t2"}}]}`))
	is.NoErr(err)

	is.Equal(fc.UpdateAttribute(NewIDSet("t2"), "paviment", "asfalto"), 1)

	buf := &bytes.Buffer{}
	is.NoErr(fc.Encode(buf))

	doc := map[string]any{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &doc))

	typ, ok := doc["type"]
	is.True(ok)
	is.Equal(typ, "")

	first := doc["features"].([]any)[0].(map[string]any)
	typ, ok = first["type"]
	is.True(ok)
	is.Equal(typ, "")
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(`{"type":"FeatureCollection","name":"a & b","features":[
		{"type":"Feature","properties":{"id_trecho_qualidade":"t1","logradouro":"Rua <A> & B"}}]}`))
	is.NoErr(err)

	buf := &bytes.Buffer{}
	is.NoErr(fc.Encode(buf))

	is.True(strings.Contains(buf.String(), `"logradouro": "Rua <A> & B"`))
	is.True(strings.Contains(buf.String(), `"name": "a & b"`))
	is.True(!strings.Contains(buf.String(), `\u00`))
}

func TestIDSet(t *testing.T) {
	is := is.New(t)

	s := NewIDSet("1", json.Number("2"), true, nil)

	is.True(s.Contains("1"))
	is.True(!s.Contains(json.Number("1")))
	is.True(s.Contains(2.0))
	is.True(s.Contains(json.Number("2.0")))
	is.True(!s.Contains("2"))
	is.True(s.Contains(true))
	is.True(s.Contains(nil))
	is.True(!s.Contains([]any{"1"}))

	is.True(!s.Add(map[string]any{}))
	is.Equal(len(s.Values()), 4)
}

func TestFilter(t *testing.T) {
	is := is.New(t)

	fc, err := Decode(strings.NewReader(osmJSON))
	is.NoErr(err)

	ruaA := fc.Filter(func(f Feature) bool { return f.Street() == "Rua A" })
	is.Equal(len(ruaA.Features), 2)
	is.Equal(ruaA.Type, fc.Type)
	is.Equal(len(fc.Features), 3)
	is.Equal(len(fc.IDs()), 3)
}

const osmJSON string = `{
  "type": "FeatureCollection",
  "name": "osm",
  "crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:OGC:1.3:CRS84"}},
  "features": [
    {"type": "Feature", "id": "way/1", "properties": {"id_trecho_qualidade": "t1", "logradouro": "Rua A", "largura": 7.50}, "geometry": {"type": "LineString", "coordinates": [[-51.23, -30.03], [-51.22, -30.02]]}},
    {"type": "Feature", "properties": {"id_trecho_qualidade": "t2", "logradouro": "Rua A"}, "geometry": {"type": "LineString", "coordinates": [[-51.22, -30.02], [-51.21, -30.01]]}},
    {"type": "Feature", "properties": {"id_trecho_qualidade": "t3", "logradouro": "Rua B"}, "geometry": {"type": "LineString", "coordinates": [[-51.10, -29.90], [-51.09, -29.89]]}}
  ]
}`
