package segments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/diwise/road-segments/pkg/types"
	"github.com/matryer/is"
)

func TestUpdateAttributeRequiresIdentifiers(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	w := writerMock(0, nil)
	app := New(ctx, readerMock(), w, nil)

	_, err := app.UpdateAttribute(ctx, []any{}, "paviment", "asfalto")
	is.Equal(err, ErrNoIdentifiers)
	is.Equal(err.Error(), "at least one identifier required")

	_, err = app.UpdateAttribute(ctx, nil, "", "asfalto")
	is.Equal(err, ErrNoIdentifiers)

	is.Equal(len(w.UpdateAttributeCalls()), 0)
}

func TestUpdateAttributeRequiresAttributeName(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	w := writerMock(0, nil)
	app := New(ctx, readerMock(), w, nil)

	_, err := app.UpdateAttribute(ctx, []any{"t1"}, "", "asfalto")
	is.Equal(err, ErrNoAttributeName)

	var verr *ValidationError
	is.True(errors.As(err, &verr))
	is.Equal(len(w.UpdateAttributeCalls()), 0)
}

func TestUpdateAttributePublishesChange(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	w := writerMock(2, nil)
	m := msgCtxMock(nil)
	app := New(ctx, readerMock(), w, m)

	n, err := app.UpdateAttribute(ctx, []any{"t1", "t3", "t1"}, "paviment", "asfalto")
	is.NoErr(err)
	is.Equal(n, 2)

	calls := w.UpdateAttributeCalls()
	is.Equal(len(calls), 1)
	is.Equal(len(calls[0].Ids), 2)
	is.True(calls[0].Ids.Contains("t1"))
	is.True(calls[0].Ids.Contains("t3"))
	is.Equal(calls[0].AttributeName, "paviment")
	is.Equal(calls[0].AttributeValue, "asfalto")

	published := m.PublishOnTopicCalls()
	is.Equal(len(published), 1)
	is.Equal(published[0].Message.TopicName(), "segments.updated")

	msg := published[0].Message.(*types.SegmentsUpdated)
	is.Equal(msg.UpdatedCount, 2)
	is.Equal(msg.AttributeName, "paviment")
	is.True(msg.ID != "")
}

func TestUpdateAttributeWithoutMatchesDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	m := msgCtxMock(nil)
	app := New(ctx, readerMock(), writerMock(0, nil), m)

	n, err := app.UpdateAttribute(ctx, []any{"does-not-exist"}, "paviment", "asfalto")
	is.NoErr(err)
	is.Equal(n, 0)
	is.Equal(len(m.PublishOnTopicCalls()), 0)
}

func TestUpdateAttributeIgnoresPublishFailure(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	app := New(ctx, readerMock(), writerMock(1, nil), msgCtxMock(errors.New("connection closed")))

	n, err := app.UpdateAttribute(ctx, []any{"t1"}, "paviment", "asfalto")
	is.NoErr(err)
	is.Equal(n, 1)
}

func TestUpdateAttributeStorageFailure(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	w := writerMock(0, fmt.Errorf("%w: disk full", ErrStorageWriteFailure))
	m := msgCtxMock(nil)
	app := New(ctx, readerMock(), w, m)

	_, err := app.UpdateAttribute(ctx, []any{"t1"}, "paviment", "asfalto")
	is.True(errors.Is(err, ErrStorageWriteFailure))

	var verr *ValidationError
	is.True(!errors.As(err, &verr))
	is.Equal(len(m.PublishOnTopicCalls()), 0)
}

func TestQuerySegments(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	app := New(ctx, readerMock(), writerMock(0, nil), nil)

	fc, err := app.QuerySegments(ctx, WithStreet("Rua A"))
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)
	is.Equal(fc.Type, "FeatureCollection")

	fc, err = app.QuerySegments(ctx, WithIDs([]string{"t3", "42"}))
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)

	fc, err = app.QuerySegments(ctx, WithBBox("-51.3,-30.1,-51.2,-30.0"))
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)

	fc, err = app.QuerySegments(ctx, WithParams(map[string][]string{"logradouro": {"Rua A"}, "id": {"t2"}})...)
	is.NoErr(err)
	is.Equal(len(fc.Features), 1)

	fc, err = app.QuerySegments(ctx)
	is.NoErr(err)
	is.Equal(len(fc.Features), 4)
}

func TestQuerySegmentsWithInvalidBBoxMatchesNothing(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	app := New(ctx, readerMock(), writerMock(0, nil), nil)

	for _, bbox := range []string{"1,2", "a,b,c,d", "-51.2,-30.0,-51.3,-30.1"} {
		fc, err := app.QuerySegments(ctx, WithBBox(bbox))
		is.NoErr(err)
		is.Equal(len(fc.Features), 0)
	}

	fc, err := app.QuerySegments(ctx, WithParams(map[string][]string{"bbox": {"1,2"}})...)
	is.NoErr(err)
	is.Equal(len(fc.Features), 0)
}

func TestQuerySegmentsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	r := &SegmentsReaderMock{
		LoadAllFunc: func(ctx context.Context) (features.FeatureCollection, error) {
			return features.FeatureCollection{}, ErrStorageUnavailable
		},
	}
	app := New(ctx, r, writerMock(0, nil), nil)

	_, err := app.QuerySegments(ctx, WithStreet("Rua A"))
	is.True(errors.Is(err, ErrStorageUnavailable))

	_, err = app.Streets(ctx)
	is.True(errors.Is(err, ErrStorageUnavailable))
}

func TestStreets(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	app := New(ctx, readerMock(), writerMock(0, nil), nil)

	streets, err := app.Streets(ctx)
	is.NoErr(err)
	is.Equal(len(streets), 3)

	is.Equal(streets[0].Name, "Avenida C")
	is.Equal(streets[0].BBox, []float64(nil))
	is.Equal(streets[1].Name, "Rua A")
	is.Equal(streets[1].Count, 2)
	is.Equal(streets[1].BBox, []float64{-51.23, -30.03, -51.21, -30.01})
	is.Equal(streets[2].Name, "Rua B")
	is.Equal(streets[2].Count, 1)
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	is := is.New(t)

	app := New(ctx, readerMock(), writerMock(0, nil), nil)

	attributes, err := app.GetAttributes(ctx)
	is.NoErr(err)
	is.Equal(len(attributes), 0)

	yamlConfig := `
attributes:
  - name: "paviment"
    description: "tipo de pavimento"
    values:
      - "asfalto"
      - "paralelepipedo"
      - "terra"
  - name: "condicao"
`

	err = app.LoadConfig(ctx, strings.NewReader(yamlConfig))
	is.NoErr(err)

	attributes, err = app.GetAttributes(ctx)
	is.NoErr(err)
	is.Equal(len(attributes), 2)
	is.Equal(attributes[0].Name, "paviment")
	is.Equal(attributes[0].Values, []string{"asfalto", "paralelepipedo", "terra"})
	is.Equal(attributes[1].Name, "condicao")
}

func readerMock() *SegmentsReaderMock {
	return &SegmentsReaderMock{
		LoadAllFunc: func(ctx context.Context) (features.FeatureCollection, error) {
			return features.Decode(strings.NewReader(osmJSON))
		},
	}
}

func writerMock(updated int, err error) *SegmentsWriterMock {
	return &SegmentsWriterMock{
		UpdateAttributeFunc: func(ctx context.Context, ids features.IDSet, attributeName string, attributeValue any) (int, error) {
			return updated, err
		},
	}
}

func msgCtxMock(err error) *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return err
		},
	}
}

const osmJSON string = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id_trecho_qualidade": "t1", "logradouro": "Rua A"}, "geometry": {"type": "LineString", "coordinates": [[-51.23, -30.03], [-51.22, -30.02]]}},
    {"type": "Feature", "properties": {"id_trecho_qualidade": "t2", "logradouro": "Rua A"}, "geometry": {"type": "LineString", "coordinates": [[-51.22, -30.02], [-51.21, -30.01]]}},
    {"type": "Feature", "properties": {"id_trecho_qualidade": "t3", "logradouro": "Rua B"}, "geometry": {"type": "LineString", "coordinates": [[-51.10, -29.90], [-51.09, -29.89]]}},
    {"type": "Feature", "properties": {"id_trecho_qualidade": 42, "logradouro": "Avenida C"}, "geometry": null}
  ]
}`
