package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "github.com/corekv/corekv/internal/api/http"
	ilog "github.com/corekv/corekv/internal/log"
	"github.com/corekv/corekv/internal/store"
)

func main() {
	logger := ilog.New()
	addr := getEnv("COREKV_HTTP_ADDR", ":8080")

	st := store.New()
	st.SetExpiredEntryReleaser(func(key []byte, typeName string) {
		logger.Debug("store.expired", "key", string(key), "type", typeName)
	})

	router := apphttp.NewRouter(st, logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server.starting", "addr", addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("server.shutdown_signal")
	case err := <-errCh:
		logger.Error("server.error", "error", err)
	}

	apphttp.SetDraining(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown_error", "error", err)
	} else {
		logger.Info("server.stopped")
	}

	st.Close()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
