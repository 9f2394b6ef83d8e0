package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/bi-tools/weekly-pulse/pkg/server"
	"github.com/bi-tools/weekly-pulse/pkg/services/config"
	"github.com/bi-tools/weekly-pulse/pkg/services/insights"
	"github.com/bi-tools/weekly-pulse/pkg/services/report"
	"github.com/bi-tools/weekly-pulse/pkg/store/history"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Weekly Pulse",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	ctrl := report.NewController(insights.DefaultSettings(), report.WithHistory(store))

	host := cfg.Server.Host
	port := cfg.Server.Port
	if env := os.Getenv("SERVER_HOST"); env != "" {
		host = env
	}
	if env := os.Getenv("SERVER_PORT"); env != "" {
		port = env
	}
	addr := net.JoinHostPort(host, port)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Generator: ctrl,
			History:   store,
			Logger:    logger,
		},
	})

	logger.Info().Str("addr", addr).Msg("history store ready, starting server")
	return api.Start()
}
