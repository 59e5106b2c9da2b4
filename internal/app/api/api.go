package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/diwise/road-segments/internal/app/segments"
	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("road-segments/api")

const (
	errInvalidBody   = "invalid request body"
	errBodyTooLarge  = "request body too large"
	errLoadStorage   = "could not load storage"
	errUpdateStorage = "could not update storage"
)

const maxRequestBodySize int64 = 1 << 20

// Register creates the router. policies and public are optional: without
// policies every request is allowed, without public no static files are served.
func Register(ctx context.Context, app segments.SegmentsApp, policies io.Reader, public string) (*chi.Mux, error) {
	log := logging.GetFromContext(ctx)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	var authorizer func(http.Handler) http.Handler
	if policies != nil {
		var err error
		authorizer, err = NewAuthorizer(ctx, log, policies)
		if err != nil {
			return nil, fmt.Errorf("failed to create api authorizer: %w", err)
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if authorizer != nil {
				r.Use(authorizer)
			}

			r.Get("/geojson", getGeoJSONHandler(log, app))
			r.Post("/update-attributes", updateAttributesHandler(log, app))
			r.Get("/segments", querySegmentsHandler(log, app))
			r.Get("/streets", getStreetsHandler(log, app))
			r.Get("/attributes", getAttributesHandler(log, app))
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if public != "" {
		r.Get("/*", http.FileServer(http.Dir(public)).ServeHTTP)
	}

	return r, nil
}

func getGeoJSONHandler(log *slog.Logger, a segments.SegmentsApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-geojson")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		fc, err := a.LoadAll(ctx)
		if err != nil {
			logger.Error("could not load feature collection", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errLoadStorage)
			return
		}

		buf := &bytes.Buffer{}
		err = fc.Encode(buf)
		if err != nil {
			logger.Error("could not encode feature collection", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errLoadStorage)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func updateAttributesHandler(log *slog.Logger, a segments.SegmentsApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-attributes")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Debug("request body too large", "limit", tooLarge.Limit)
				writeError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
				return
			}

			logger.Error("could not read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		req, err := newUpdateAttributesRequest(b)
		if err != nil {
			logger.Debug("could not unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		ids, _ := req.IDs.([]any)
		attributeName, _ := req.AttributeName.(string)

		updatedCount, err := a.UpdateAttribute(ctx, ids, attributeName, req.AttributeValue)
		if err != nil {
			var verr *segments.ValidationError
			if errors.As(err, &verr) {
				logger.Debug("invalid update request", "err", verr.Error())
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}

			logger.Error("could not update attribute", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errUpdateStorage)
			return
		}

		writeJSON(w, http.StatusOK, UpdateAttributesResponse{UpdatedCount: updatedCount})
	}
}

func querySegmentsHandler(log *slog.Logger, a segments.SegmentsApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "query-segments")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		q := r.URL.Query()
		if q.Has("bbox") {
			if _, err = features.ParseBBox(q.Get("bbox")); err != nil {
				logger.Debug("invalid bbox parameter", "err", err.Error())
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		fc, err := a.QuerySegments(ctx, segments.WithParams(q)...)
		if err != nil {
			logger.Error("could not query segments", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errLoadStorage)
			return
		}

		buf := &bytes.Buffer{}
		err = fc.Encode(buf)
		if err != nil {
			logger.Error("could not encode segments", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errLoadStorage)
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func getStreetsHandler(log *slog.Logger, a segments.SegmentsApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-streets")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		streets, err := a.Streets(ctx)
		if err != nil {
			logger.Error("could not get streets", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errLoadStorage)
			return
		}

		response := NewApiResponse(streets, uint64(len(streets)))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(response.Byte())
	}
}

func getAttributesHandler(log *slog.Logger, a segments.SegmentsApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-attributes")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		attributes, err := a.GetAttributes(ctx)
		if err != nil {
			logger.Error("could not get attributes", "err", err.Error())
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		response := NewApiResponse(attributes, uint64(len(attributes)))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(response.Byte())
	}
}

func newUpdateAttributesRequest(b []byte) (UpdateAttributesRequest, error) {
	req := UpdateAttributesRequest{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return req, nil
	}

	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()

	err := d.Decode(&req)
	if err != nil {
		return UpdateAttributesRequest{}, err
	}

	if d.More() {
		return UpdateAttributesRequest{}, errors.New("body contains more than one document")
	}

	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
