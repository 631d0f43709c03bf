// Package server owns the listening HTTP server and routes every request
// through the dispatcher.
package server

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"staticserver/accesslog"
	"staticserver/config"
	"staticserver/dispatch"
)

// Server is a start/stop-able resource: it binds its own listener so
// multiple instances can run side by side (port 0 picks a free port).
type Server struct {
	cfg        config.Config
	dispatcher *dispatch.Dispatcher
	recorder   accesslog.Recorder
	httpServer *http.Server
	listener   net.Listener
}

func New(cfg config.Config, recorder accesslog.Recorder) *Server {
	s := &Server{
		cfg:        cfg,
		dispatcher: dispatch.New(cfg.StaticRoot, cfg.AssetPrefix),
		recorder:   recorder,
	}

	router := mux.NewRouter()
	router.Use(requestID, s.logRequests)
	// The dispatcher owns the full routing policy, so the router gets a
	// single method-agnostic catch-all.
	router.PathPrefix("/").HandlerFunc(s.serve)

	s.httpServer = &http.Server{Handler: router}
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	res := s.dispatcher.Handle(r.URL.Path)
	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(res.Status)
	if _, err := w.Write(res.Body); err != nil {
		log.Printf("write response: %v", err)
	}
}

// Start binds the configured address and serves in the background.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr())
	}
	s.listener = l

	go func() {
		if err := s.httpServer.Serve(l); err != nil && err != http.ErrServerClosed {
			log.Printf("serve: %v", err)
		}
	}()
	return nil
}

// Addr reports the bound address. Empty until Start succeeds.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing stack for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
