// Package store provides the on-device Record Store drivers. The persisted
// layout is a single JSON document with one fixed key per collection; a
// missing, empty or malformed key loads as an empty collection so that an
// unreadable history never blocks further logging.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akhillingutla-us/EcoTracker/internal/domain"
)

const (
	activitiesKey = "activities"
	photosKey     = "photos"
)

// FileStore persists both collections in a JSON document on local disk.
// Writes go through a temp file plus rename, so a reader sees either the
// old document or the new one, never a partial write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFile constructs a FileStore rooted at path. The file is created on
// first append.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadActivities returns the activity collection in insertion order.
func (f *FileStore) LoadActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.ActivityRecord](doc[activitiesKey]), nil
}

// AppendActivity adds one record to the end of the activity collection.
func (f *FileStore) AppendActivity(ctx context.Context, record domain.ActivityRecord) error {
	return f.append(activitiesKey, record)
}

// LoadPhotos returns the photo collection in insertion order.
func (f *FileStore) LoadPhotos(ctx context.Context) ([]domain.PhotoRecord, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.PhotoRecord](doc[photosKey]), nil
}

// AppendPhoto adds one record to the end of the photo collection.
func (f *FileStore) AppendPhoto(ctx context.Context, record domain.PhotoRecord) error {
	return f.append(photosKey, record)
}

// ClearAll replaces the document with an empty one. The rename makes both
// collections disappear in a single step, and the store stays usable for
// subsequent appends.
func (f *FileStore) ClearAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(map[string]json.RawMessage{})
}

func (f *FileStore) append(key string, record any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}

	existing := decodeCollection[json.RawMessage](doc[key])

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", key, err)
	}
	existing = append(existing, encoded)

	updated, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", key, err)
	}
	doc[key] = updated
	return f.write(doc)
}

// read loads the persisted document. A missing file or unparsable payload
// yields an empty document; only genuine medium failures surface as errors.
func (f *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return doc, nil
}

func (f *FileStore) write(doc map[string]json.RawMessage) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// decodeCollection fails closed: a key that is absent, null, or not a
// parsable list of records loads as an empty collection.
func decodeCollection[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}
