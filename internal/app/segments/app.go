package segments

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/diwise/road-segments/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gopkg.in/yaml.v2"
)

//go:generate moq -rm -out app_mock.go . SegmentsApp
type SegmentsApp interface {
	LoadAll(ctx context.Context) (features.FeatureCollection, error)
	UpdateAttribute(ctx context.Context, ids []any, attributeName string, attributeValue any) (int, error)
	QuerySegments(ctx context.Context, conditions ...ConditionFunc) (features.FeatureCollection, error)
	Streets(ctx context.Context) ([]Street, error)

	LoadConfig(ctx context.Context, r io.Reader) error
	GetAttributes(ctx context.Context) ([]Attribute, error)
}

//go:generate moq -rm -out reader_mock.go . SegmentsReader
type SegmentsReader interface {
	LoadAll(ctx context.Context) (features.FeatureCollection, error)
}

//go:generate moq -rm -out writer_mock.go . SegmentsWriter
type SegmentsWriter interface {
	UpdateAttribute(ctx context.Context, ids features.IDSet, attributeName string, attributeValue any) (int, error)
}

type Publisher interface {
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
}

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

var (
	ErrNoIdentifiers   = &ValidationError{msg: "at least one identifier required"}
	ErrNoAttributeName = &ValidationError{msg: "attributeName is required"}
)

var (
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrStorageWriteFailure = errors.New("storage write failure")
)

type Street struct {
	Name  string    `json:"name"`
	Count int       `json:"count"`
	BBox  []float64 `json:"bbox,omitempty"`
}

type Attribute struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Values      []string `json:"values,omitempty" yaml:"values"`
}

type config struct {
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

type app struct {
	reader    SegmentsReader
	writer    SegmentsWriter
	publisher Publisher
	cfg       *config

	updated  metric.Int64Counter
	requests metric.Int64Counter
}

var meter = otel.Meter("road-segments/segments")

// New creates the application layer. The publisher is optional, no change
// notifications are sent when it is nil.
func New(ctx context.Context, r SegmentsReader, w SegmentsWriter, p Publisher) SegmentsApp {
	log := logging.GetFromContext(ctx)

	a := &app{
		reader:    r,
		writer:    w,
		publisher: p,
	}

	var err error

	a.updated, err = meter.Int64Counter(
		"segments.updated",
		metric.WithDescription("number of segments changed by attribute updates"),
		metric.WithUnit("{segment}"),
	)
	if err != nil {
		log.Error("could not create counter", "err", err.Error())
	}

	a.requests, err = meter.Int64Counter(
		"segments.update.requests",
		metric.WithDescription("number of attribute update requests by outcome"),
	)
	if err != nil {
		log.Error("could not create counter", "err", err.Error())
	}

	return a
}

func (a *app) LoadConfig(ctx context.Context, r io.Reader) error {
	c := config{}
	err := yaml.NewDecoder(r).Decode(&c)
	if err != nil {
		return err
	}

	a.cfg = &c

	return nil
}

func (a *app) GetAttributes(ctx context.Context) ([]Attribute, error) {
	attributes := make([]Attribute, 0)
	if a.cfg == nil {
		return attributes, nil
	}

	return append(attributes, a.cfg.Attributes...), nil
}

func (a *app) LoadAll(ctx context.Context) (features.FeatureCollection, error) {
	return a.reader.LoadAll(ctx)
}

func (a *app) UpdateAttribute(ctx context.Context, ids []any, attributeName string, attributeValue any) (int, error) {
	log := logging.GetFromContext(ctx)

	if len(ids) == 0 {
		a.countRequest(ctx, "invalid")
		return 0, ErrNoIdentifiers
	}
	if attributeName == "" {
		a.countRequest(ctx, "invalid")
		return 0, ErrNoAttributeName
	}

	set := features.NewIDSet(ids...)

	n, err := a.writer.UpdateAttribute(ctx, set, attributeName, attributeValue)
	if err != nil {
		a.countRequest(ctx, "failed")
		return 0, err
	}

	a.countRequest(ctx, "ok")
	if a.updated != nil {
		a.updated.Add(ctx, int64(n), metric.WithAttributes(attribute.String("attribute", attributeName)))
	}

	log.Info("attribute updated", "attribute", attributeName, "requested", len(set), "updated", n)

	if n > 0 && a.publisher != nil {
		msg := &types.SegmentsUpdated{
			ID:             uuid.NewString(),
			AttributeName:  attributeName,
			AttributeValue: attributeValue,
			IDs:            set.Values(),
			UpdatedCount:   n,
			Timestamp:      time.Now().UTC(),
		}

		err = a.publisher.PublishOnTopic(ctx, msg)
		if err != nil {
			log.Error("could not publish segments updated", "err", err.Error())
		}
	}

	return n, nil
}

func (a *app) QuerySegments(ctx context.Context, conditions ...ConditionFunc) (features.FeatureCollection, error) {
	fc, err := a.reader.LoadAll(ctx)
	if err != nil {
		return features.FeatureCollection{}, err
	}

	return fc.Filter(matches(newConditions(conditions...))), nil
}

func (a *app) Streets(ctx context.Context) ([]Street, error) {
	fc, err := a.reader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	byName := map[string]features.FeatureCollection{}
	for _, f := range fc.Features {
		name := f.Street()
		if name == "" {
			continue
		}
		c := byName[name]
		c.Features = append(c.Features, f)
		byName[name] = c
	}

	streets := make([]Street, 0, len(byName))
	for name, c := range byName {
		s := Street{
			Name:  name,
			Count: len(c.Features),
		}
		if b, ok := c.Bound(); ok {
			s.BBox = features.BBox(b)
		}
		streets = append(streets, s)
	}

	slices.SortFunc(streets, func(a, b Street) int {
		return strings.Compare(a.Name, b.Name)
	})

	return streets, nil
}

func (a *app) countRequest(ctx context.Context, outcome string) {
	if a.requests == nil {
		return
	}
	a.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
