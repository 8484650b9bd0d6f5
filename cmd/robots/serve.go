package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-survival/internal/config"
	"github.com/vovakirdan/robot-survival/internal/games/robots"
	"github.com/vovakirdan/robot-survival/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Robot Survival SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the title menu.
Runs are stored per-server (all users share the same run log) and
recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config (~/.robots/host_key),
    generating it on first start

Examples:
  robots serve                           # Listen on :2222
  robots serve --ssh :23234              # Listen on port 23234
  robots serve --host-key ./my_host_key  # Use specific host key
  robots serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	srvCfg := settings.Server
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		srvCfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		srvCfg.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		srvCfg.IdleTimeoutMinutes = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     srvCfg.Address,
		HostKeyPath: config.ExpandHome(srvCfg.HostKey),
		DBPath:      settings.DBPath,
		IdleTimeout: srvCfg.IdleTimeout(),
		GameID:      robots.GameID,
		TickRate:    settings.TickRate,
		HoldTicks:   settings.Input.HoldTicks,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Connect with: ssh localhost -p <port> (listening on %s)\n", srvCfg.Address)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
