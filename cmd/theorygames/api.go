package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/theory-games/internal/api"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve read-only stats over HTTP",
	Long: `Start an HTTP server with JSON views of categories, profiles and history.

Endpoints:
  GET /healthz
  GET /categories
  GET /profiles
  GET /profiles/{id}
  GET /leaderboard?limit=N
  GET /history?limit=N

Examples:
  theorygames api
  theorygames api --http :9090`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	a, err := setup(os.Stderr, true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	addr := a.cfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}
	server := api.New(addr, a.catalog, a.profiles, a.logger.WithPrefix("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving stats on http://%s\n", displayAddr(addr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		a.Close()
		exitf("server: %v", err)
	}
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
