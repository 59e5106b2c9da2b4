package storage

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/diwise/road-segments/internal/app/segments"
	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var renameFile = os.Rename

// FileStore keeps the whole feature collection in a single GeoJSON file.
// The file is read on every call and replaced atomically on update.
type FileStore struct {
	path string
	mu   *sync.RWMutex
}

func NewFileStore(path string) FileStore {
	return FileStore{
		path: path,
		mu:   &sync.RWMutex{},
	}
}

func (s FileStore) Path() string {
	return s.path
}

func (s FileStore) LoadAll(ctx context.Context) (features.FeatureCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(ctx)
}

func (s FileStore) UpdateAttribute(ctx context.Context, ids features.IDSet, attributeName string, attributeValue any) (int, error) {
	log := logging.GetFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	fc, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	updated := fc.UpdateAttribute(ids, attributeName, attributeValue)
	if updated == 0 {
		log.Debug("no segments matched, file left untouched", "path", s.path)
		return 0, nil
	}

	if err = ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s", segments.ErrStorageWriteFailure, err.Error())
	}

	err = s.persist(ctx, fc)
	if err != nil {
		log.Error("could not persist feature collection", "path", s.path, "err", err.Error())
		return 0, fmt.Errorf("%w: %s", segments.ErrStorageWriteFailure, err.Error())
	}

	return updated, nil
}

func (s FileStore) load(ctx context.Context) (features.FeatureCollection, error) {
	log := logging.GetFromContext(ctx)

	f, err := os.Open(s.path)
	if err != nil {
		log.Error("could not open feature collection", "path", s.path, "err", err.Error())
		return features.FeatureCollection{}, fmt.Errorf("%w: %w", segments.ErrStorageUnavailable, err)
	}
	defer f.Close()

	fc, err := features.Decode(f)
	if err != nil {
		log.Error("could not decode feature collection", "path", s.path, "err", err.Error())
		return features.FeatureCollection{}, fmt.Errorf("%w: %s", segments.ErrStorageUnavailable, err.Error())
	}

	return fc, nil
}

// persist encodes fc in memory, writes it to a temporary file next to the
// target, syncs it and renames it over the target.
func (s FileStore) persist(ctx context.Context, fc features.FeatureCollection) error {
	buf := &bytes.Buffer{}
	err := fc.Encode(buf)
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return cleanup(err)
	}
	if err = tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = renameFile(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = syncDir(dir); err != nil {
		logging.GetFromContext(ctx).Debug("could not sync directory", "dir", dir, "err", err.Error())
	}

	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Sync()
}
