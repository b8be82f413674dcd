package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var errNotListening = errors.New("server is not listening")

// BindError is returned when the listen address cannot be reserved.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Server owns a single listener and the HTTP server accepting on it.
type Server struct {
	addr       string
	announcer  Announcer
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener

	closeOnce sync.Once
	closeErr  error
}

type Option func(*Server)

func WithAnnouncer(a Announcer) Option {
	return func(s *Server) {
		s.announcer = a
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New returns a Server that will listen on addr and hand requests to handler.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		addr:       addr,
		logger:     slog.Default(),
		httpServer: &http.Server{Handler: handler},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.httpServer.ErrorLog = slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn)

	return s
}

// Listen binds the address. It fails with *BindError when the address is
// already in use or not permitted.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return &BindError{Addr: s.addr, Err: err}
	}

	s.listener = ln
	s.logger.Info("listening", slog.String("addr", ln.Addr().String()))

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// URL returns the address as an http URL, using localhost for wildcard binds.
func (s *Server) URL() string {
	addr, ok := s.Addr().(*net.TCPAddr)
	if !ok {
		return ""
	}

	host := lo.Ternary(addr.IP == nil || addr.IP.IsUnspecified(), "localhost", addr.IP.String())

	return "http://" + net.JoinHostPort(host, strconv.Itoa(addr.Port))
}

// Serve accepts connections until ctx is cancelled or the server fails.
// In-flight requests are not drained. A cancelled context is not an error.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errNotListening
	}

	if s.announcer != nil {
		s.announcer.Listening(s.URL())
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	err := g.Wait()

	s.logger.Info("server stopped")
	if s.announcer != nil {
		s.announcer.Stopped()
	}

	return err
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Close closes the listener and every open connection. Only the first call
// has any effect.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.httpServer.Close()
		if s.listener == nil {
			return
		}
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) && s.closeErr == nil {
			s.closeErr = err
		}
	})

	return s.closeErr
}
