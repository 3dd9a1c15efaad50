package main

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"
)

type serverConfig struct {
	ListenAddr string
	MaxReports int
}

type server struct {
	cfg serverConfig

	httpServer *http.Server
	store      *reportStore
	tmpl       *template.Template
}

func newServer(cfg serverConfig) (*server, error) {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	tmpl, err := template.New("reports").Parse(reportsHTML)
	if err != nil {
		return nil, fmt.Errorf("parse reports template: %w", err)
	}
	mux := http.NewServeMux()

	s := &server{
		cfg:   cfg,
		store: newReportStore(cfg.MaxReports),
		tmpl:  tmpl,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	s.routes(mux)
	return s, nil
}

func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()
	return s.httpServer.Serve(ln)
}

func (s *server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
