// Package server exposes editing sessions over HTTP.
//
// Each session is an editor.Editor keyed by station id and held in memory.
// Persistence belongs to the caller: clients fetch the export document and
// store it wherever they keep layouts.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/railyard/stationlayout/internal/config"
	"github.com/railyard/stationlayout/internal/logging"
	"github.com/railyard/stationlayout/pkg/editor"
)

// Deps holds the dependencies for a Server.
type Deps struct {
	Config  *config.Config
	Logger  *logging.Logger
	Version string
}

// Server is the HTTP surface over editing sessions.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	version  string
	sessions *sessionStore
	server   *http.Server
}

// New creates a server. A nil config selects defaults.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		cfg:     cfg,
		logger:  deps.Logger.With("component", "server"),
		version: deps.Version,
	}
	s.sessions = newSessionStore(func() *editor.Editor {
		return editor.New(editor.Options{
			Settings: cfg.EditorSettings(),
			Logger:   s.logger.Logger,
		})
	})
	return s, nil
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start listens in the background until ctx is cancelled or Close is
// called.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Close()
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}
}

// Close flushes every session and shuts the listener down.
func (s *Server) Close() error {
	s.sessions.flushAll()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout())
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// sessionStore maps station ids to editors.
type sessionStore struct {
	mu      sync.RWMutex
	editors map[string]*editor.Editor
	factory func() *editor.Editor
}

func newSessionStore(factory func() *editor.Editor) *sessionStore {
	return &sessionStore{
		editors: make(map[string]*editor.Editor),
		factory: factory,
	}
}

func (st *sessionStore) get(id string) (*editor.Editor, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	e, ok := st.editors[id]
	return e, ok
}

// put stores e under id and reports whether it replaced a session.
func (st *sessionStore) put(id string, e *editor.Editor) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, existed := st.editors[id]
	st.editors[id] = e
	return existed
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.editors[id]
	if ok {
		e.Flush()
		delete(st.editors, id)
	}
	return ok
}

func (st *sessionStore) ids() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.editors))
	for id := range st.editors {
		out = append(out, id)
	}
	return out
}

func (st *sessionStore) flushAll() {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, e := range st.editors {
		e.Flush()
	}
}
