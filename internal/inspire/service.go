package inspire

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Service turns a Provider into text that is always displayable.
type Service struct {
	provider Provider
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLimiter bounds how often the provider is called. Default: unlimited.
func WithLimiter(l *rate.Limiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// PerMinute returns a limiter allowing n calls a minute with a burst of one.
// n <= 0 means unlimited.
func PerMinute(n int) *rate.Limiter {
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
}

// NewService creates a service over p. A nil p always yields the fallback.
func NewService(p Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: p,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Content returns provider text for kind, or the fallback on any failure.
func (s *Service) Content(ctx context.Context, kind Kind) string {
	if s.provider == nil {
		return Fallback(kind)
	}
	if !s.limiter.Allow() {
		s.logger.Warn("inspiration rate limited, using fallback", "kind", kind)
		return Fallback(kind)
	}

	text, err := s.provider.Content(ctx, kind)
	switch {
	case errors.Is(err, ErrNoCredential):
		s.logger.Warn("inspiration provider has no API key, using fallback", "kind", kind)
		return Fallback(kind)
	case err != nil:
		s.logger.Error("inspiration fetch failed, using fallback", "kind", kind, "error", err)
		return Fallback(kind)
	case text == "":
		return Fallback(kind)
	}
	return text
}

// Request is an inspiration fetch running on its own goroutine.
type Request struct {
	kind   Kind
	done   chan struct{}
	result string
	cancel context.CancelFunc
}

// Request starts fetching content for kind. The returned Request always
// resolves: a cancelled or failed fetch resolves to the fallback.
func (s *Service) Request(ctx context.Context, kind Kind) *Request {
	ctx, cancel := context.WithCancel(ctx)
	r := &Request{kind: kind, done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(r.done)
		defer cancel()
		r.result = s.Content(ctx, kind)
	}()
	return r
}

// Kind returns the kind being fetched.
func (r *Request) Kind() Kind { return r.kind }

// Done is closed once Result is available.
func (r *Request) Done() <-chan struct{} { return r.done }

// Result blocks until the fetch resolves and returns its text.
func (r *Request) Result() string {
	<-r.done
	return r.result
}

// Cancel abandons the fetch. The Request still resolves, to the fallback
// unless the provider had already answered.
func (r *Request) Cancel() { r.cancel() }
