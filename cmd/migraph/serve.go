package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"migraph/internal/api"
)

var (
	serveHost string
	servePort int
	serveAuth bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the HTTP server exposing analysis runs over a JSON API.

Endpoints include /health, /ready, /status, /analyze and /runs. With
--auth, requests must carry a bearer token created with "migraph token
create".`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default: config server.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to bind (default: config server.port)")
	serveCmd.Flags().BoolVar(&serveAuth, "auth", false, "Require API token authentication")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, store := mustSetup()
	defer store.Close()

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = strconv.Itoa(servePort)
	}
	authRequired := cfg.Server.AuthRequired || serveAuth

	addr := net.JoinHostPort(host, port)
	eng := newEngine(cfg, logger, store)
	server := api.NewServer(addr, eng, store, logger, api.Options{
		AuthRequired: authRequired,
		ProjectRoot:  projectRootFlag,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("server listening", map[string]interface{}{
		"addr": addr,
		"auth": authRequired,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
