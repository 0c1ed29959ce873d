package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/report"
	"github.com/danielhkuo/quickly-survey/router"
	"github.com/danielhkuo/quickly-survey/store"
)

func main() {
	// A missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "quickly-survey",
		Short:              "Single-respondent survey server with an admin report",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args)
		},
	}

	root.AddCommand(serveCmd(), exportCmd(), hashPasswordCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "serve [flags]",
		Short:              "Run the HTTP server (default)",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args)
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "export [-format csv|json] [-o file]",
		Short:              "Write every stored response to a file or stdout",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for app_config.password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// loadConfig parses flags and installs the slog default at the chosen level
func loadConfig(args []string) (cliparse.Config, error) {
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return cliparse.Config{}, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg, nil
}

func runServe(args []string) error {
	// Parse configuration
	cfg, err := loadConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return err
	}

	cat := catalog.Load(cfg.ConfigFile)
	slog.Info("Survey loaded", "title", cat.Settings.Title, "questions", cat.Len())
	if cat.Settings.Password == catalog.DefaultPassword {
		slog.Warn("admin password is the built-in default; set app_config.password")
	}

	// Open the response store (creates the table or file)
	st, err := store.Open(context.Background(), cfg, cat.Questions)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		return err
	}
	defer st.Close()
	slog.Info("Response store ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(st, cat, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux, cfg.AllowedOrigins),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}

func runExport(args []string) error {
	cfg, err := loadConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return err
	}

	ctx := context.Background()
	cat := catalog.Load(cfg.ConfigFile)

	st, err := store.Open(ctx, cfg, cat.Questions)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		return err
	}
	defer st.Close()

	responses, err := st.LoadAll(ctx)
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		return err
	}

	var out io.Writer = os.Stdout
	if cfg.ExportOutput != "" {
		f, err := os.Create(cfg.ExportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.ExportOutput, err)
		}
		defer f.Close()
		out = f
	}

	counter := &countingWriter{w: out}
	if err := report.Write(counter, cfg.ExportFormat, cat.Questions, responses); err != nil {
		slog.Error("export failed", "error", err)
		return err
	}

	slog.Info("responses exported",
		"format", cfg.ExportFormat,
		"rows", len(responses),
		"size", humanize.Bytes(uint64(counter.n)),
		"output", cfg.ExportOutput,
	)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
