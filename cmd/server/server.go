package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"
)

// main is the entry point for the render server.
// Every request is rendered by its own pool of goroutines.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Getenv, os.Stderr); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, output io.Writer) error {
	cfg, err := parseConfig(args, getenv, output)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.addr,
		Handler:           newWebServer(cfg).routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("http listening on: %s", cfg.addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
