// Command gitfiend-core runs the local backend daemon: it starts the
// loopback HTTP dispatcher, wires the query engine, store, patch
// cache, watcher and search controller together, and serves requests
// until told to exit.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/gitfiend/gitfiend-core/internal/actions"
	"gitlab.com/gitfiend/gitfiend-core/internal/dispatch"
	"gitlab.com/gitfiend/gitfiend-core/internal/replshell"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
	"gitlab.com/gitfiend/gitfiend-core/internal/search"
	"gitlab.com/gitfiend/gitfiend-core/internal/store"
	"gitlab.com/gitfiend/gitfiend-core/internal/watch"
)

var (
	port         int
	debugPort    int
	resourceDir  string
	logLevel     string
	askpassPath  string
	debugShell   bool
)

var rootCmd = &cobra.Command{
	Use:   "gitfiend-core",
	Short: "Local backend daemon for the GitFiend front-end",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 0, "fixed loopback port (0 picks an ephemeral port)")
	rootCmd.Flags().IntVar(&debugPort, "debug-port", 0, "fixed debug port, overrides --port when set")
	rootCmd.Flags().StringVar(&resourceDir, "resource-dir", "", "directory served under /r/")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")
	rootCmd.Flags().StringVar(&askpassPath, "askpass", "", "path to the gitfiend-askpass helper binary")
	rootCmd.Flags().BoolVar(&debugShell, "debug-shell", false, "run an interactive console alongside the HTTP server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		logger.SetLevel(level)
	}

	env := runner.NewEnv(askpassPath)
	st := store.New()
	watcher := watch.NewRegistry()
	searchController := search.NewController(env)
	actionRegistry := actions.NewRegistry()

	table := buildTable(env, st, watcher, searchController, actionRegistry)

	listenPort := port
	if debugPort != 0 {
		listenPort = debugPort
	}
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", listenPort))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	actual := listener.Addr().(*net.TCPAddr).Port
	fmt.Printf("PORT:%-8d\n", actual)
	logger.WithField("port", actual).Info("listening")

	if debugShell {
		go replshell.Run(st, watcher, searchController)
	}

	ctx, cancel := context.WithCancel(context.Background())
	router := dispatch.NewRouter(table, resourceDir, cancel)

	srv := &http.Server{Handler: router}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
