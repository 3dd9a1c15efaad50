package main

import (
	"net/http"
)

func (s *server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/api/reports", s.handleReports)
	mux.HandleFunc("/health", s.handleHealth)
}
