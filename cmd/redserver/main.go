// Command redserver starts the key-value data server.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"redserver/internal/config"
	"redserver/internal/logging"
	"redserver/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var replicaof string

	cmd := &cobra.Command{
		Use:   "redserver",
		Short: "An in-memory key-value data server speaking RESP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if replicaof != "" {
				host, port, err := config.ParseReplicaOf(replicaof)
				if err != nil {
					return err
				}
				cfg.MasterHost = host
				cfg.MasterPort = port
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Port, "port", cfg.Port, "TCP port to listen on")
	flags.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding the snapshot file")
	flags.StringVar(&cfg.DBFilename, "dbfilename", cfg.DBFilename, "snapshot filename")
	flags.StringVar(&replicaof, "replicaof", "", `"<host> <port>" of a master to replicate from`)

	return cmd
}

func run(cfg *config.Config) error {
	if server.LoadSnapshot(cfg.SnapshotPath()) {
		logging.Infof("found snapshot file at %s", cfg.SnapshotPath())
	}

	srv := server.New(cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		srv.Shutdown()
	}()

	return srv.Run()
}
