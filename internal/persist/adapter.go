package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

const (
	// DefaultKey is the blob key the document is stored under.
	DefaultKey = "zenith-app-data"

	// DefaultAppName prefixes backup file names.
	DefaultAppName = "zenith"
)

// Adapter moves the document between a BlobStore and the AppStore.
//
// Storage failures never surface: a failed load falls back to the default
// document and a failed save is logged while the in-memory state stays as
// it is.
type Adapter struct {
	blobs   BlobStore
	key     string
	appName string
	logger  *slog.Logger
	now     func() time.Time
}

var _ state.Observer = (*Adapter)(nil)

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithKey sets the blob key. Default: DefaultKey.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithAppName sets the backup file name prefix. Default: DefaultAppName.
func WithAppName(name string) AdapterOption {
	return func(a *Adapter) {
		a.appName = name
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = l
	}
}

// WithNow sets the wall clock used for default data and backup names.
// Default: time.Now.
func WithNow(now func() time.Time) AdapterOption {
	return func(a *Adapter) {
		a.now = now
	}
}

// NewAdapter creates an adapter over blobs.
func NewAdapter(blobs BlobStore, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		blobs:   blobs,
		key:     DefaultKey,
		appName: DefaultAppName,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the blob key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored document, or the default document when nothing is
// stored or the stored blob cannot be read. Load never fails.
func (a *Adapter) Load(ctx context.Context) model.AppData {
	raw, err := a.blobs.Get(ctx, a.key)
	if errors.Is(err, ErrBlobNotFound) {
		a.logger.Info("no saved data, starting from defaults", "key", a.key)
		return model.DefaultData(a.now())
	}
	if err != nil {
		a.logger.Warn("failed to read saved data, starting from defaults", "key", a.key, "error", err)
		return model.DefaultData(a.now())
	}

	data, err := decode(raw, a.key, ImportLenient)
	if err != nil {
		a.logger.Warn("saved data is corrupt, starting from defaults", "key", a.key, "error", err)
		return model.DefaultData(a.now())
	}
	return data
}

// Save writes data as compact JSON under the adapter's key.
func (a *Adapter) Save(ctx context.Context, data model.AppData) error {
	raw, err := json.Marshal(data.Normalize())
	if err != nil {
		return err
	}
	return a.blobs.Put(ctx, a.key, raw)
}

// Changed saves every new snapshot. A failed save is logged and otherwise
// ignored; memory stays ahead of storage until the next successful save.
func (a *Adapter) Changed(revision int64, data model.AppData) {
	if err := a.Save(context.Background(), data); err != nil {
		a.logger.Error("failed to save data", "key", a.key, "revision", revision, "error", err)
		return
	}
	a.logger.Debug("data saved", "key", a.key, "revision", revision)
}
