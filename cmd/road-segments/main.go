package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/road-segments/internal/app/api"
	"github.com/diwise/road-segments/internal/app/segments"
	"github.com/diwise/road-segments/internal/pkg/storage"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

const serviceName string = "road-segments"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx, log, cleanup := o11y.Init(ctx, serviceName, serviceVersion)
	defer cleanup()

	var geojson, attributes, opa, public, backend string

	flag.StringVar(&geojson, "geojson", "/opt/diwise/data/osm.json", "A GeoJSON file with road segments")
	flag.StringVar(&attributes, "attributes", "/opt/diwise/config/attributes.yaml", "A file with known segment attributes")
	flag.StringVar(&opa, "policies", "", "An authorization policy file")
	flag.StringVar(&public, "public", "", "A directory with static files to serve")
	flag.StringVar(&backend, "storage", "file", "Storage backend, file or postgres")
	flag.Parse()

	fileStore := storage.NewFileStore(geojson)

	var reader segments.SegmentsReader = fileStore
	var writer segments.SegmentsWriter = fileStore

	if backend == "postgres" {
		db, err := storage.New(ctx, storage.LoadConfiguration(ctx))
		if err != nil {
			log.Error("could not configure storage", "err", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		err = seed(ctx, fileStore, db)
		if err != nil {
			log.Error("file with segments found but could not seed data", "err", err.Error())
			os.Exit(1)
		}

		reader, writer = db, db
	} else if backend != "file" {
		log.Error("unknown storage backend", "storage", backend)
		os.Exit(1)
	}

	var publisher segments.Publisher
	if env.GetVariableOrDefault(ctx, "SEGMENTS_NOTIFY", "false") == "true" {
		config := messaging.LoadConfiguration(ctx, serviceName, log)
		messenger, err := messaging.Initialize(ctx, config)
		if err != nil {
			log.Error("failed to init messenger", "err", err.Error())
			os.Exit(1)
		}
		messenger.Start()
		defer messenger.Close()

		publisher = messenger
	}

	a := segments.New(ctx, reader, writer, publisher)

	err := loadAttributes(ctx, attributes, a)
	if err != nil {
		log.Error("file with attributes found but could not be loaded", "err", err.Error())
		os.Exit(1)
	}

	r, err := newRouter(ctx, opa, public, a)
	if err != nil {
		log.Error("could not setup router", "err", err.Error())
		os.Exit(1)
	}

	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080")
	webServer := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Info("starting to listen for connections", "port", port, "geojson", geojson, "storage", backend)
		if err := webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("could not listen and serve", "err", err.Error())
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	webServer.Shutdown(ctx)
}

func newRouter(ctx context.Context, opa, public string, a segments.SegmentsApp) (*chi.Mux, error) {
	var policies io.Reader

	if opa != "" {
		f, err := os.Open(opa)
		if err != nil {
			return nil, fmt.Errorf("unable to open opa policy file: %s", err.Error())
		}
		defer f.Close()
		policies = f
	}

	return api.Register(ctx, a, policies, public)
}

// seed fills an empty database with the segments from the GeoJSON file.
func seed(ctx context.Context, s storage.FileStore, db storage.Db) error {
	log := logging.GetFromContext(ctx)

	count, err := db.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("database already contains segments, will not seed", "count", count)
		return nil
	}

	fc, err := s.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no file with segments found", "path", s.Path())
			return nil
		}
		return err
	}

	return db.Seed(ctx, fc)
}

func loadAttributes(ctx context.Context, fp string, a segments.SegmentsApp) error {
	log := logging.GetFromContext(ctx)

	f, err := os.Open(fp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no file with attributes found", "path", fp)
			return nil
		}
		return err
	}
	defer f.Close()

	return a.LoadConfig(ctx, f)
}
