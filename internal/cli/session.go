package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/config"
	"github.com/roach88/zenith/internal/inspire"
	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/persist"
	"github.com/roach88/zenith/internal/state"
)

// Session is everything a command needs: the loaded document behind a
// Store, saved through the Adapter after every change.
//
// A one-shot command opens a Session and closes it when done. The shell
// opens one Session and shares it across lines, so undo and redo work there.
type Session struct {
	Config  config.Config
	Adapter *persist.Adapter
	Store   *state.Store
	Inspire *inspire.Service

	logger      *slog.Logger
	now         func() time.Time
	unsubscribe func()
	closers     []io.Closer
}

// OpenSession loads the document and wires persistence.
func OpenSession(ctx context.Context, opts *RootOptions) (*Session, error) {
	cfg := opts.config
	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{Config: cfg, logger: logger, now: now}

	var blobs persist.BlobStore
	if opts.Ephemeral {
		blobs = persist.NewMemoryStore()
		logger.Debug("using in-memory storage")
	} else {
		path := cfg.Storage.Database
		if opts.Database != "" {
			path = opts.Database
		}
		logger.Debug("opening database", "path", path)
		db, err := persist.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", path, err)
		}
		s.closers = append(s.closers, db)
		blobs = db
	}

	adapterOpts := []persist.AdapterOption{
		persist.WithLogger(logger),
		persist.WithNow(now),
	}
	if cfg.Storage.Key != "" {
		adapterOpts = append(adapterOpts, persist.WithKey(cfg.Storage.Key))
	}
	if cfg.AppName != "" {
		adapterOpts = append(adapterOpts, persist.WithAppName(cfg.AppName))
	}
	s.Adapter = persist.NewAdapter(blobs, adapterOpts...)

	storeOpts := []state.Option{
		state.WithLogger(logger),
		state.WithHistoryLimit(cfg.History.Limit),
	}
	if opts.IDs != nil {
		storeOpts = append(storeOpts, state.WithIDGenerator(opts.IDs))
	}
	s.Store = state.New(s.Adapter.Load(ctx), storeOpts...)
	s.unsubscribe = s.Store.Subscribe(s.Adapter)

	provider := inspire.NewGenerativeProvider(inspire.GenerativeConfig{
		Endpoint: cfg.Inspiration.Endpoint,
		Model:    cfg.Inspiration.Model,
		APIKey:   cfg.APIKey(),
		Timeout:  cfg.Inspiration.Timeout,
	})
	s.Inspire = inspire.NewService(provider,
		inspire.WithLimiter(inspire.PerMinute(cfg.Inspiration.RatePerMinute)),
		inspire.WithLogger(logger),
	)

	return s, nil
}

// Close stops persistence and releases the database.
func (s *Session) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Data returns the current document.
func (s *Session) Data() model.AppData {
	return s.Store.Snapshot()
}

// Now returns the session's wall clock reading.
func (s *Session) Now() time.Time {
	return s.now()
}

// Dispatch applies act. A refused payload becomes an ExitFailure error.
func (s *Session) Dispatch(act state.Action) (state.Result, error) {
	res, err := s.Store.Dispatch(act)
	if err != nil {
		return res, WrapExitError(ExitFailure, "action refused", err)
	}
	return res, nil
}

// withSession runs fn with the shell's session, or with a fresh one that
// is closed afterwards.
func (o *RootOptions) withSession(cmd *cobra.Command, fn func(*Session) error) error {
	if o.session != nil {
		return fn(o.session)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := OpenSession(ctx, o)
	if err != nil {
		return WrapExitError(ExitCommandError, "open session", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			s.logger.Error("error closing database", "error", closeErr)
		}
	}()
	return fn(s)
}

// notFound reports a reference to an entity that does not exist.
func notFound(kind, id string) error {
	return NewExitError(ExitFailure, fmt.Sprintf("no %s with id %q", kind, id))
}
