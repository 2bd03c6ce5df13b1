package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mediadirect/mediadirect/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the task worker HTTP server until the process is stopped.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	migration, moderation, err := r.buildEngines(config, db)
	if err != nil {
		return err
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewTaskHandler(migration, moderation, r.logger))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}))

	port := config.Server.Port
	if p := cmd.Int("port"); p != 0 {
		port = int(p)
	}
	addr := fmt.Sprintf("%s:%d", config.Server.Host, port)

	httpServer := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	r.logger.Info("task worker listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
