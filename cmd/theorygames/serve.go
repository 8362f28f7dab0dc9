package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/theory-games/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own hot-seat game. Profiles and history are
shared by all sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from config
    (auto-generated at ~/.theorygames/ssh_host_ed25519)

Examples:
  theorygames serve                           # Listen on the configured address
  theorygames serve --ssh :2222               # Listen on port 2222
  theorygames serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (0 = config value)")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := setup(os.Stderr, true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	srv := a.cfg.Server
	cfg := tui.SSHServerConfig{
		Address:     srv.SSHAddr,
		HostKeyPath: srv.HostKeyPath,
		IdleTimeout: srv.IdleTimeout,
		MaxTimeout:  srv.MaxTimeout,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg, tui.Deps{
		Catalog:  a.catalog,
		Profiles: a.profiles,
		Config:   a.cfg,
		Logger:   a.logger.WithPrefix("ssh"),
	})
	if err != nil {
		a.Close()
		exitf("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Theory Games SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		a.Close()
		exitf("server: %v", err)
	}
}
