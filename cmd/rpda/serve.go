package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <machine>",
	Short: "Start the HTTP server",
	Long:  `Exposes the machine over a JSON API with stepping sessions and Prometheus metrics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		storeDir, _ := cmd.Flags().GetString("store-dir")
		ttl, _ := cmd.Flags().GetDuration("session-ttl")

		reg, metrics := cli.NewRegistry()
		m, err := cli.LoadMachine(machineOptions(cmd, args[0]), rpda.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return err
		}

		server, err := cli.NewServer(cmd.Context(), m, metrics, reg, cli.ServeOptions{
			Port:       port,
			RedisAddr:  redisAddr,
			StoreDir:   storeDir,
			SessionTTL: ttl,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting rpda server on %s\n", srv.Addr)
			fmt.Printf("Serving machine: %s\n", args[0])
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("rpda server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Store sessions in redis at host:port (default: in memory)")
	serveCmd.Flags().String("store-dir", "", "Store sessions as JSON files in this directory")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Expire idle redis sessions after this long")
}
