package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ledgerdesk/internal/api/mockapi"
	"ledgerdesk/internal/logging"
)

var (
	mockAddr     string
	mockUser     string
	mockPassword string
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve a seeded in-memory book over the backend API",
	Long: `Run an in-memory accounting backend with sample data.

Examples:
  ledgerdesk mock-server --addr 127.0.0.1:8080
  LEDGERDESK_API_URL=http://127.0.0.1:8080 ledgerdesk login -u admin`,
	Args: cobra.NoArgs,
	RunE: runMockServer,
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", "127.0.0.1:8080", "listen address")
	mockServerCmd.Flags().StringVar(&mockUser, "user", mockapi.DefaultUsername, "accepted user name")
	mockServerCmd.Flags().StringVar(&mockPassword, "password", mockapi.DefaultPassword, "accepted password")
}

func runMockServer(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel("info")
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), level))

	start := time.Now().AddDate(0, 0, -30).Truncate(24 * time.Hour)
	srv := mockapi.New(mockapi.SeedBook(start), mockapi.WithCredentials(mockUser, mockPassword))
	httpSrv := &http.Server{
		Addr:              mockAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("mock backend listening", "addr", mockAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("shutting down mock backend")
	return httpSrv.Shutdown(shutdownCtx)
}
