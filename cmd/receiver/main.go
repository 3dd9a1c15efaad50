package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

func main() {
	var (
		listenAddr string
		maxReports int
	)
	flag.StringVar(&listenAddr, "listen", envString("RECEIVER_LISTEN", ":8080"), "Serve the receiver at this address (e.g. :8080)")
	flag.IntVar(&maxReports, "max-reports", envInt("RECEIVER_MAX_REPORTS", 100), "Number of reports to retain before evicting the oldest")
	flag.Parse()

	if strings.TrimSpace(listenAddr) == "" {
		fmt.Fprintln(os.Stderr, "Error: --listen is required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv, err := newServer(serverConfig{
		ListenAddr: listenAddr,
		MaxReports: maxReports,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Serving report receiver on http://%s\n", listenAddr)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
		return
	case err := <-errCh:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
